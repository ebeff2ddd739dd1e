// Package resolving decides whether the live DNS of a domain agrees with where
// the domain is hosted. Everything here is a pure function of its inputs.
package resolving

import (
	"fmt"
	"net/netip"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/naming"
)

// Classifier holds the run-scoped settings of the domain resolution check.
type Classifier struct {
	IgnoredDomains     naming.ApexSet
	IgnoredNameServers naming.ApexSet
	// NSRanges enables the Delegated verdict for remote domains whose name
	// servers are ours. Leave empty to get plain Remote verdicts.
	NSRanges []netip.Prefix
}

// Ignored reports whether the domain apex is excluded from checking.
func (c Classifier) Ignored(domain string) bool {
	return c.IgnoredDomains.Contains(domain)
}

// Classify returns the verdict for one domain. The second result is false when
// the domain apex is ignored, in which case no verdict is produced.
func (c Classifier) Classify(rs model.DomainRecordSet, localIP string) (model.Verdict, bool) {
	if c.Ignored(rs.Domain) {
		return model.Verdict{}, false
	}

	if rs.NS.Present() {
		for _, ns := range rs.NS.Values {
			if c.IgnoredNameServers.Contains(ns.Host) {
				return model.AmbiguousVerdict(rs, fmt.Sprintf("domain delegates to an ignored name-server provider, check skipped: %s", rs.NS)), true
			}
		}
	}

	v := classifyAddresses(rs, localIP)
	if v.Kind == model.VerdictRemote && len(c.NSRanges) > 0 && Ownership(rs.NS, c.NSRanges) == model.NSMatch {
		return model.DelegatedVerdict(rs, v.Reason+"; name servers are ours"), true
	}
	return v, true
}

func classifyAddresses(rs model.DomainRecordSet, localIP string) model.Verdict {
	if rs.MX.Present() {
		ips := rs.MXIPs()
		if !contains(ips, localIP) {
			return model.RemoteVerdict(rs, "MX does not resolve to this server")
		}
		for _, ip := range ips {
			if ip != localIP {
				return model.AmbiguousVerdict(rs, fmt.Sprintf("multiple MX targets, one points here: %s", rs.MX))
			}
		}
		return model.LocalVerdict(rs, "MX resolves to this server")
	}
	if rs.A.Present() {
		if contains(rs.A.Values, localIP) {
			return model.LocalVerdict(rs, "no MX, A resolves to this server")
		}
		return model.RemoteVerdict(rs, "no MX, A does not resolve to this server")
	}
	return model.RemoteVerdict(rs, "not resolving to this server")
}

// Ownership matches the NS addresses of a domain against the cluster name
// server ranges.
func Ownership(ns model.Lookup[model.HostAddr], ranges []netip.Prefix) model.NSOwnership {
	if !ns.Present() {
		return model.NSNoData
	}
	for _, rec := range ns.Values {
		addr, err := netip.ParseAddr(rec.IP)
		if err != nil {
			continue
		}
		for _, p := range ranges {
			if p.Contains(addr) {
				return model.NSMatch
			}
		}
	}
	return model.NSNoMatch
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
