// Package termination decides what happens to suspended hosting accounts.
package termination

import (
	"fmt"
	"net/netip"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/domain/resolving"
	"github.com/hostmaint/hostmaint/internal/naming"
)

// Disposition is the terminal state of one suspended account for a run.
type Disposition int

const (
	DispositionSkip Disposition = iota + 1
	DispositionBandwidthAdjusted
	DispositionTerminate
	DispositionTerminateKeepDNS
)

func (d Disposition) String() string {
	switch d {
	case DispositionSkip:
		return "SKIP"
	case DispositionBandwidthAdjusted:
		return "BANDWIDTH"
	case DispositionTerminate:
		return "TERMINATE"
	case DispositionTerminateKeepDNS:
		return "TERMINATE_KEEP_DNS"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether the disposition removes the account.
func (d Disposition) Terminal() bool {
	return d == DispositionTerminate || d == DispositionTerminateKeepDNS
}

// Policy holds the thresholds and scopes of the suspension policy. Periods are
// in days and compared with strict greater-than.
type Policy struct {
	PeriodMoved    int
	PeriodExpired  int
	Owners         []string
	IgnoredDomains naming.ApexSet
	NSRanges       []netip.Prefix
}

// Decision is the outcome of the policy for one account.
type Decision struct {
	User        string
	Disposition Disposition
	Threshold   int
	// KeepDNSDomain names the first domain found on our name servers.
	KeepDNSDomain string
	Reason        string
}

// Eligible reports whether the account owner is in the terminate allow-list.
// Accounts of other owners are not evaluated at all.
func (p Policy) Eligible(rec model.SuspensionRecord) bool {
	for _, o := range p.Owners {
		if o == rec.Owner {
			return true
		}
	}
	return false
}

// Threshold returns the grace period that applies to the suspension reason.
func (p Policy) Threshold(rec model.SuspensionRecord) int {
	if rec.IsUnexplained() {
		return p.PeriodExpired
	}
	return p.PeriodMoved
}

// Decide evaluates one suspended account against the records of its domains.
// Bandwidth suspensions return DispositionBandwidthAdjusted; the caller applies
// the ceiling computed by BandwidthCeiling.
func (p Policy) Decide(rec model.SuspensionRecord, domains []model.DomainRecordSet) Decision {
	d := Decision{User: rec.User}
	if rec.IsBandwidth() {
		d.Disposition = DispositionBandwidthAdjusted
		d.Reason = "suspended for bandwidth, limit will be raised"
		return d
	}

	d.Threshold = p.Threshold(rec)
	if rec.SuspendedSinceDays <= d.Threshold {
		d.Disposition = DispositionSkip
		d.Reason = fmt.Sprintf("not terminated, suspended %d days ago", rec.SuspendedSinceDays)
		return d
	}

	d.Disposition = DispositionTerminate
	d.Reason = fmt.Sprintf("suspended %d days ago, over %d days", rec.SuspendedSinceDays, d.Threshold)
	if name, ok := p.usesOurNameServers(domains); ok {
		d.Disposition = DispositionTerminateKeepDNS
		d.KeepDNSDomain = name
		d.Reason += fmt.Sprintf("; %s uses our name servers", name)
	}
	return d
}

func (p Policy) usesOurNameServers(domains []model.DomainRecordSet) (string, bool) {
	if len(p.NSRanges) == 0 {
		return "", false
	}
	for _, rs := range domains {
		if p.IgnoredDomains.Contains(rs.Domain) {
			continue
		}
		if resolving.Ownership(rs.NS, p.NSRanges) == model.NSMatch {
			return rs.Domain, true
		}
	}
	return "", false
}

// BandwidthCeiling projects the monthly transfer from the usage so far and
// returns the new limit in MB: floor(MB used * 40 / day of month).
func BandwidthCeiling(totalBytes int64, dayOfMonth int) int64 {
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	mb := float64(totalBytes) / 1024 / 1024
	return int64(mb * 40 / float64(dayOfMonth))
}
