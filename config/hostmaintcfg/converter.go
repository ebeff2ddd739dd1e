package hostmaintcfg

import (
	"fmt"
	"net/netip"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/hostmaint/hostmaint/domain/resolving"
	"github.com/hostmaint/hostmaint/domain/termination"
	"github.com/hostmaint/hostmaint/domain/zonefix"
	"github.com/hostmaint/hostmaint/internal/naming"
)

// Apex returns the configured apex derivation mode.
func (r *Root) Apex() naming.ApexMode {
	if r.Resolver.ApexMode == "" {
		return naming.ApexLabels
	}
	return naming.ApexMode(r.Resolver.ApexMode)
}

// NSRanges parses server.nsIPRanges.
func (r *Root) NSRanges() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(r.Server.NSIPRanges))
	for i, c := range r.Server.NSIPRanges {
		p, err := netip.ParsePrefix(strings.TrimSpace(c))
		if err != nil {
			return nil, fmt.Errorf("server.nsIPRanges[%d]: %w", i, err)
		}
		out = append(out, p.Masked())
	}
	return out, nil
}

// Classifier builds the locrem classifier settings.
func (r *Root) Classifier() (resolving.Classifier, error) {
	ranges, err := r.NSRanges()
	if err != nil {
		return resolving.Classifier{}, err
	}
	return resolving.Classifier{
		IgnoredDomains:     naming.NewApexSet(r.Apex(), r.LocRem.IgnoreDomains...),
		IgnoredNameServers: naming.NewApexSet(r.Apex(), r.LocRem.IgnoreNameServers...),
		NSRanges:           ranges,
	}, nil
}

// Policy builds the termination policy.
func (r *Root) Policy() (termination.Policy, error) {
	ranges, err := r.NSRanges()
	if err != nil {
		return termination.Policy{}, err
	}
	return termination.Policy{
		PeriodMoved:    ptr.Deref(r.Terminate.PeriodMoved, DefaultPeriodMoved),
		PeriodExpired:  ptr.Deref(r.Terminate.PeriodExpired, DefaultPeriodExpired),
		Owners:         append([]string(nil), r.Terminate.Owners...),
		IgnoredDomains: naming.NewApexSet(r.Apex(), r.Terminate.IgnoreDomains...),
		NSRanges:       ranges,
	}, nil
}

// Planner builds the zone fix planner.
func (r *Root) Planner() zonefix.Planner {
	return zonefix.Planner{SPFInclude: strings.TrimSpace(r.DNSFix.SPFInclude)}
}

// DNSFixIgnored returns the apexes excluded from zone fixing.
func (r *Root) DNSFixIgnored() naming.ApexSet {
	return naming.NewApexSet(r.Apex(), r.DNSFix.IgnoreDomains...)
}
