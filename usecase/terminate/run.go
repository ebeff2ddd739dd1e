package terminate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/domain/termination"
	"github.com/hostmaint/hostmaint/internal/logging"
	"github.com/hostmaint/hostmaint/usecase/report"
)

// TaskName identifies the task in reports and the run history.
const TaskName = "terminate"

// RunInput holds the run-scoped policy.
type RunInput struct {
	Policy termination.Policy `json:"-"`
}

// RunOutput carries the finished run and the per-account decisions.
type RunOutput struct {
	Run       *model.Run             `json:"run"`
	Decisions []termination.Decision `json:"decisions"`
}

// Run evaluates every suspended account of the allow-listed owners. Only a
// failed suspension listing aborts the run.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	logger := logging.FromContext(ctx)
	dryRun := u.AccountPort.DryRun()
	rec := report.NewRecorder(TaskName, u.Host, dryRun)
	out := &RunOutput{}

	suspended, err := u.AccountPort.ListSuspended(ctx)
	if err != nil {
		err = fmt.Errorf("%w: list suspended: %w", model.ErrInventory, err)
		rec.Fail(err)
		out.Run = rec.Finish()
		return out, err
	}
	sort.Slice(suspended, func(i, j int) bool { return suspended[i].User < suspended[j].User })

	now := u.now()
	for _, s := range suspended {
		if !in.Policy.Eligible(s) {
			continue
		}
		if !s.SuspendedAt.IsZero() {
			s.SuspendedSinceDays = model.SuspendedDays(s.SuspendedAt, now)
		}

		if s.IsBandwidth() {
			d := in.Policy.Decide(s, nil)
			out.Decisions = append(out.Decisions, d)
			u.adjustBandwidth(ctx, rec, s, now.Day())
			continue
		}

		domains, err := u.Inventory.DomainsOf(ctx, s.User, false)
		if err != nil {
			rec.Add(model.CategoryError, s.User, fmt.Sprintf("not evaluated: %v", err))
			continue
		}
		sets := make([]model.DomainRecordSet, 0, len(domains))
		for _, d := range domains {
			sets = append(sets, model.ResolveAll(ctx, u.Resolver, d))
		}

		d := in.Policy.Decide(s, sets)
		out.Decisions = append(out.Decisions, d)
		logger.Info(ctx, "suspension evaluated", "user", s.User, "disposition", d.Disposition.String(), "days", s.SuspendedSinceDays)

		if !d.Disposition.Terminal() {
			rec.Add(model.CategorySkip, s.User, d.Reason)
			continue
		}
		detail := terminationDetail(s, d, sets, dryRun)
		var opts []model.RemoveAccountOption
		category := model.CategoryTerminate
		if d.Disposition == termination.DispositionTerminateKeepDNS {
			opts = append(opts, model.WithKeepDNS())
			category = model.CategoryKeepDNS
		}
		if err := u.AccountPort.RemoveAccount(ctx, s.User, opts...); err != nil {
			rec.Add(model.CategoryError, s.User, fmt.Sprintf("removal failed: %v\n%s", err, detail))
			continue
		}
		rec.Add(category, s.User, detail)
	}

	out.Run = rec.Finish()
	return out, nil
}

func (u *UseCase) adjustBandwidth(ctx context.Context, rec *report.Recorder, s model.SuspensionRecord, day int) {
	bw, err := u.AccountPort.Bandwidth(ctx, s.User)
	if err != nil {
		rec.Add(model.CategoryError, s.User, fmt.Sprintf("bandwidth query failed: %v", err))
		return
	}
	limit := termination.BandwidthCeiling(bw.TotalBytes, day)
	reason, err := u.AccountPort.SetBandwidthLimit(ctx, s.User, limit)
	if err != nil {
		rec.Add(model.CategoryError, s.User, fmt.Sprintf("bandwidth limit %d MB failed: %v", limit, err))
		return
	}
	rec.Addf(model.CategoryBandwidth, s.User, "new limit %d MB: %s", limit, reason)
}

func terminationDetail(s model.SuspensionRecord, d termination.Decision, sets []model.DomainRecordSet, dryRun bool) string {
	var b strings.Builder
	b.WriteString(d.Reason)
	if s.Reason != "" {
		fmt.Fprintf(&b, "\nReason: %s", s.Reason)
	}
	for _, rs := range sets {
		fmt.Fprintf(&b, "\nDomain: %s\n%s", rs.Domain, rs.Summary("  "))
	}
	cmd := "removeacct user=" + s.User
	if d.Disposition == termination.DispositionTerminateKeepDNS {
		cmd += " keepdns=1"
	}
	if dryRun {
		fmt.Fprintf(&b, "\nDRY RUN: %s", cmd)
	} else {
		fmt.Fprintf(&b, "\nTerminating: %s", cmd)
	}
	return b.String()
}
