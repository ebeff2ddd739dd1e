package termination

import (
	"net/netip"
	"testing"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/naming"
)

func testPolicy() Policy {
	return Policy{
		PeriodMoved:    30,
		PeriodExpired:  60,
		Owners:         []string{"root", "resellerA"},
		IgnoredDomains: naming.NewApexSet(naming.ApexLabels, "ignored.tld"),
		NSRanges:       []netip.Prefix{netip.MustParsePrefix("178.218.172.160/27")},
	}
}

func nsSet(domain string, ips ...string) model.DomainRecordSet {
	var hs []model.HostAddr
	for i, ip := range ips {
		hs = append(hs, model.HostAddr{Host: "ns" + string(rune('1'+i)) + ".example.net", IP: ip})
	}
	return model.DomainRecordSet{Domain: domain, NS: model.Found(hs...)}
}

func TestDecide_Thresholds(t *testing.T) {
	p := testPolicy()
	cases := []struct {
		name   string
		reason string
		days   int
		want   Disposition
	}{
		{name: "unknown over expired", reason: model.ReasonUnknown, days: 61, want: DispositionTerminate},
		{name: "unknown at expired", reason: model.ReasonUnknown, days: 60, want: DispositionSkip},
		{name: "unknown over moved only", reason: model.ReasonUnknown, days: 45, want: DispositionSkip},
		{name: "intentional over moved", reason: "Moved to new host", days: 31, want: DispositionTerminate},
		{name: "intentional at moved", reason: "Moved to new host", days: 30, want: DispositionSkip},
		{name: "empty reason is intentional", reason: "", days: 31, want: DispositionTerminate},
		{name: "bandwidth never terminates", reason: "Bandwidth Limit Exceeded (auto)", days: 400, want: DispositionBandwidthAdjusted},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := model.SuspensionRecord{User: "u1", Owner: "root", Reason: tc.reason, SuspendedSinceDays: tc.days}
			got := p.Decide(rec, []model.DomainRecordSet{nsSet("a.tld", "203.0.113.1")})
			if got.Disposition != tc.want {
				t.Errorf("Decide() = %s, want %s (%s)", got.Disposition, tc.want, got.Reason)
			}
			if got.User != "u1" {
				t.Errorf("decision user = %q", got.User)
			}
		})
	}
}

func TestDecide_KeepDNS(t *testing.T) {
	p := testPolicy()
	rec := model.SuspensionRecord{User: "u1", Owner: "root", Reason: model.ReasonUnknown, SuspendedSinceDays: 61}

	cases := []struct {
		name    string
		domains []model.DomainRecordSet
		want    Disposition
		keepFor string
	}{
		{
			name:    "one domain on our ranges",
			domains: []model.DomainRecordSet{nsSet("a.tld", "203.0.113.1"), nsSet("b.tld", "203.0.113.2", "178.218.172.170")},
			want:    DispositionTerminateKeepDNS,
			keepFor: "b.tld",
		},
		{
			name:    "ignored domain on our ranges",
			domains: []model.DomainRecordSet{nsSet("shop.ignored.tld", "178.218.172.170")},
			want:    DispositionTerminate,
		},
		{
			name:    "no NS data",
			domains: []model.DomainRecordSet{{Domain: "a.tld", NS: model.Failed[model.HostAddr](nil)}},
			want:    DispositionTerminate,
		},
		{
			name: "no domains",
			want: DispositionTerminate,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Decide(rec, tc.domains)
			if got.Disposition != tc.want {
				t.Fatalf("Decide() = %s, want %s", got.Disposition, tc.want)
			}
			if got.KeepDNSDomain != tc.keepFor {
				t.Errorf("KeepDNSDomain = %q, want %q", got.KeepDNSDomain, tc.keepFor)
			}
			if !got.Disposition.Terminal() {
				t.Errorf("expected terminal disposition")
			}
		})
	}
}

func TestEligible(t *testing.T) {
	p := testPolicy()
	if p.Eligible(model.SuspensionRecord{User: "user1", Owner: "resellerX"}) {
		t.Errorf("owner outside the allow-list must not be eligible")
	}
	if !p.Eligible(model.SuspensionRecord{User: "user2", Owner: "resellerA"}) {
		t.Errorf("allow-listed owner must be eligible")
	}
	if (Policy{}).Eligible(model.SuspensionRecord{User: "user3", Owner: ""}) {
		t.Errorf("empty allow-list must not match anything")
	}
}

func TestBandwidthCeiling(t *testing.T) {
	cases := []struct {
		bytes int64
		day   int
		want  int64
	}{
		{bytes: 1024 * 1024 * 100, day: 10, want: 400},
		{bytes: 1024 * 1024 * 100, day: 30, want: 133},
		{bytes: 1024 * 1024 * 3, day: 1, want: 120},
		{bytes: 0, day: 15, want: 0},
		{bytes: 1024 * 1024, day: 0, want: 40},
	}
	for _, tc := range cases {
		if got := BandwidthCeiling(tc.bytes, tc.day); got != tc.want {
			t.Errorf("BandwidthCeiling(%d, %d) = %d, want %d", tc.bytes, tc.day, got, tc.want)
		}
	}
}
