package dnsfix

import (
	"context"
	"fmt"
	"net/netip"
	"strings"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/domain/resolving"
	"github.com/hostmaint/hostmaint/domain/zonefix"
	"github.com/hostmaint/hostmaint/internal/logging"
	"github.com/hostmaint/hostmaint/internal/naming"
	"github.com/hostmaint/hostmaint/usecase/inventory"
	"github.com/hostmaint/hostmaint/usecase/report"
)

// TaskName identifies the task in reports and the run history.
const TaskName = "dnsfix"

// RunInput holds the run-scoped settings.
type RunInput struct {
	Planner        zonefix.Planner `json:"-"`
	IgnoredDomains naming.ApexSet  `json:"-"`
	NSRanges       []netip.Prefix  `json:"ns_ranges"`
}

// RunOutput carries the finished run and the applied plans.
type RunOutput struct {
	Run         *model.Run          `json:"run"`
	Plans       []model.ZoneFixPlan `json:"plans"`
	DumpFailure []string            `json:"dump_failures,omitempty"`
}

// Run plans and applies zone edits for every eligible domain and verifies
// each edit by reading the zone back.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	rec := report.NewRecorder(TaskName, u.Host, u.AccountPort.DryRun())
	out := &RunOutput{}

	inv, err := u.Inventory.Build(ctx, &inventory.BuildInput{})
	if err != nil {
		rec.Fail(err)
		out.Run = rec.Finish()
		return out, err
	}
	snap := inv.Snapshot
	for _, c := range snap.Conflicts() {
		rec.Add(model.CategoryConflict, c.Domain, c.Error())
	}
	for _, f := range snap.Failures() {
		rec.Add(model.CategoryTransport, f.User, f.Err.Error())
	}

	for _, acct := range snap.Accounts() {
		for _, domain := range acct.Domains {
			if owner, ok := snap.Owning(domain); !ok || owner.User != acct.User {
				continue
			}
			if plan, ok := u.fixDomain(ctx, rec, in, acct, domain, out); ok {
				out.Plans = append(out.Plans, plan)
			}
		}
	}

	for _, d := range out.DumpFailure {
		rec.Add(model.CategoryZoneDump, d, "zone could not be dumped, excluded from this run")
	}
	out.Run = rec.Finish()
	return out, nil
}

// eligible reports why a domain must not be edited, or "" when it may.
func eligible(in *RunInput, rs model.DomainRecordSet, localIP string) string {
	if in.IgnoredDomains.Contains(rs.Domain) {
		return "domain ignored"
	}
	if !rs.MX.Present() {
		return "no MX records"
	}
	if first := rs.MX.Values[0].IP; first != localIP {
		return fmt.Sprintf("MX resolves to %s, not %s", first, localIP)
	}
	if o := resolving.Ownership(rs.NS, in.NSRanges); o != model.NSMatch {
		return fmt.Sprintf("name servers are %s", o)
	}
	return ""
}

func (u *UseCase) fixDomain(ctx context.Context, rec *report.Recorder, in *RunInput, acct model.AccountIdentity, domain string, out *RunOutput) (model.ZoneFixPlan, bool) {
	logger := logging.FromContext(ctx).With("domain", domain, "user", acct.User)

	rs := model.ResolveAll(ctx, u.Resolver, domain)
	if why := eligible(in, rs, acct.LocalIP); why != "" {
		rec.Add(model.CategoryZoneSkip, domain, "not resolving to our servers or ignored: "+why)
		return model.ZoneFixPlan{}, false
	}

	zone, err := u.AccountPort.DumpZone(ctx, domain)
	if err != nil {
		logger.Warn(ctx, "zone dump failed", "error", err)
		out.DumpFailure = append(out.DumpFailure, domain)
		return model.ZoneFixPlan{}, false
	}

	plan := in.Planner.Plan(domain, acct.LocalIP, zone)
	if plan.Empty() {
		rec.Add(model.CategoryZoneOK, domain, "using good MX/mail and SPF configuration")
		return plan, true
	}

	for _, e := range plan.Edits {
		if err := u.applyEdit(ctx, domain, e); err != nil {
			rec.Add(model.CategoryError, domain, fmt.Sprintf("%s failed: %v", e.Kind, err))
			continue
		}
		if u.AccountPort.DryRun() {
			rec.Add(model.CategoryZoneEdit, domain, "DRY RUN: "+describe(e))
			continue
		}
		if err := u.verify(ctx, domain, e); err != nil {
			logger.Error(ctx, "zone edit not confirmed", "kind", string(e.Kind), "error", err)
			rec.Add(model.CategoryZoneVerify, domain, fmt.Sprintf("%v, check the zone file\n%s", err, describe(e)))
			continue
		}
		rec.Add(model.CategoryZoneEdit, domain, describe(e))
	}
	return plan, true
}

func (u *UseCase) applyEdit(ctx context.Context, domain string, e model.ZoneEdit) error {
	if e.IsAdd() {
		return u.AccountPort.AddZoneRecord(ctx, domain, e.New)
	}
	return u.AccountPort.EditZoneRecord(ctx, domain, e.New)
}

// verify reads the edited line back, or re-dumps the zone for additions.
func (u *UseCase) verify(ctx context.Context, domain string, e model.ZoneEdit) error {
	if !e.IsAdd() {
		got, err := u.AccountPort.ZoneRecord(ctx, domain, e.Line)
		if err != nil {
			return fmt.Errorf("%w: line %d: %w", model.ErrZoneVerification, e.Line, err)
		}
		if !e.Verify(*got) {
			return fmt.Errorf("%w: line %d is %q, want %q", model.ErrZoneVerification, e.Line, got.Value(), e.New.Value())
		}
		return nil
	}
	zone, err := u.AccountPort.DumpZone(ctx, domain)
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrZoneVerification, err)
	}
	for _, r := range zone {
		if naming.SameName(r.Name, e.New.Name) && e.Verify(r) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s %s not found after add", model.ErrZoneVerification, strings.TrimSuffix(e.New.Name, "."), e.New.Type)
}

func describe(e model.ZoneEdit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Note)
	if e.Old != nil {
		fmt.Fprintf(&b, "\nOLD: %s", e.Old)
	}
	fmt.Fprintf(&b, "\nNEW: %s", e.New)
	return b.String()
}
