package locrem

import (
	"context"
	"errors"
	"fmt"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/domain/resolving"
	"github.com/hostmaint/hostmaint/internal/logging"
	"github.com/hostmaint/hostmaint/usecase/inventory"
	"github.com/hostmaint/hostmaint/usecase/report"
)

// TaskName identifies the task in reports and the run history.
const TaskName = "locrem"

// RunInput holds the run-scoped settings.
type RunInput struct {
	Classifier        resolving.Classifier `json:"-"`
	Declared          resolving.Declared   `json:"-"`
	IncludeSubdomains bool                 `json:"include_subdomains,omitempty"`
}

// RunOutput carries the finished run.
type RunOutput struct {
	Run *model.Run `json:"run"`
}

type pending struct {
	account model.AccountIdentity
	domain  string
	mode    model.MXCheck
	verdict model.Verdict
}

// Run classifies every domain of the inventory and corrects the declared mail
// routing of mismatches. Ambiguous domains are only reported. The returned
// error is non-nil only when the inventory could not be listed; the run is
// returned in both cases.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	logger := logging.FromContext(ctx)
	rec := report.NewRecorder(TaskName, u.Host, u.AccountPort.DryRun())

	inv, err := u.Inventory.Build(ctx, &inventory.BuildInput{IncludeSubdomains: in.IncludeSubdomains})
	if err != nil {
		rec.Fail(err)
		return &RunOutput{Run: rec.Finish()}, err
	}
	snap := inv.Snapshot
	for _, c := range snap.Conflicts() {
		rec.Add(model.CategoryConflict, c.Domain, c.Error())
	}
	for _, f := range snap.Failures() {
		rec.Add(model.CategoryTransport, f.User, f.Err.Error())
	}

	suspended := map[string]model.SuspensionRecord{}
	if list, err := u.AccountPort.ListSuspended(ctx); err != nil {
		rec.Add(model.CategoryTransport, "listsuspended", err.Error())
	} else {
		for _, s := range list {
			suspended[s.User] = s
		}
	}

	var toLocal, toRemote []pending
	for _, acct := range snap.Accounts() {
		for _, domain := range acct.Domains {
			if owner, ok := snap.Owning(domain); !ok || owner.User != acct.User {
				continue
			}
			if in.Classifier.Ignored(domain) {
				rec.Add(model.CategoryIgnored, domain, "domain apex ignored")
				continue
			}
			rs := model.ResolveAll(ctx, u.Resolver, domain)
			v, _ := in.Classifier.Classify(rs, acct.LocalIP)
			logger.Debug(ctx, "domain classified", "domain", domain, "user", acct.User, "verdict", v.Kind.String())

			switch in.Declared.Compare(v) {
			case resolving.FindingCheck:
				rec.Add(model.CategoryCheck, domain, v.Reason+"\n"+rs.Summary(""))
			case resolving.FindingMoveLocal:
				toLocal = append(toLocal, pending{account: acct, domain: domain, mode: model.MXCheckLocal, verdict: v})
			case resolving.FindingMoveRemote:
				toRemote = append(toRemote, pending{account: acct, domain: domain, mode: model.MXCheckRemote, verdict: v})
			default:
				rec.Add(model.CategoryOK, domain, "configured OK")
			}
		}
	}

	for _, p := range append(toLocal, toRemote...) {
		category := model.CategoryLocal
		if p.mode == model.MXCheckRemote {
			category = model.CategoryRemote
		}
		detail := p.verdict.Reason + "\n" + p.verdict.Records.Summary("")
		s, isSuspended := suspended[p.account.User]
		if err := u.applyFix(ctx, p, s, isSuspended); err != nil {
			rec.Add(model.CategoryError, p.domain, fmt.Sprintf("move to %s failed: %v\n%s", p.mode, err, detail))
			continue
		}
		prefix := fmt.Sprintf("moved to %s", p.mode)
		if u.AccountPort.DryRun() {
			prefix = fmt.Sprintf("DRY RUN: would be moved to %s", p.mode)
		}
		if isSuspended {
			prefix += fmt.Sprintf(" (user %s unsuspended for the fix)", p.account.User)
		}
		rec.Add(category, p.domain, prefix+"\n"+detail)
	}

	return &RunOutput{Run: rec.Finish()}, nil
}

// applyFix sets the mail routing of one domain. Suspended accounts are
// unsuspended for the change and suspended again with their original reason,
// also when the change itself fails.
func (u *UseCase) applyFix(ctx context.Context, p pending, s model.SuspensionRecord, suspended bool) error {
	if !suspended {
		return u.AccountPort.SetMXCheck(ctx, p.account.User, p.domain, p.mode)
	}
	if err := u.AccountPort.Unsuspend(ctx, p.account.User); err != nil {
		return fmt.Errorf("unsuspend: %w", err)
	}
	fixErr := u.AccountPort.SetMXCheck(ctx, p.account.User, p.domain, p.mode)
	if err := u.AccountPort.Suspend(ctx, p.account.User, model.WithSuspendReason(s.Reason)); err != nil {
		return errors.Join(fixErr, fmt.Errorf("re-suspend %s: %w", p.account.User, err))
	}
	return fixErr
}
