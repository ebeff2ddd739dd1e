package mailusage

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/logging"
	"github.com/hostmaint/hostmaint/usecase/inventory"
	"github.com/hostmaint/hostmaint/usecase/report"
)

// TaskName identifies the task in reports and the run history.
const TaskName = "mailusage"

// DefaultThresholdMB is the reporting threshold when none is configured.
const DefaultThresholdMB = 500

// RunInput holds the run-scoped settings.
type RunInput struct {
	ThresholdMB float64             `json:"threshold_mb"`
	Filter      model.AccountFilter `json:"filter"`
}

// RunOutput carries the finished run and the mailboxes over the threshold.
type RunOutput struct {
	Run  *model.Run           `json:"run"`
	Over []model.MailboxUsage `json:"over"`
}

// Run refreshes the maildir sizes of every account and reports the mailboxes
// at or above the threshold. A failing account is reported and skipped.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	if in == nil {
		in = &RunInput{}
	}
	threshold := in.ThresholdMB
	if threshold <= 0 {
		threshold = DefaultThresholdMB
	}
	logger := logging.FromContext(ctx)
	rec := report.NewRecorder(TaskName, u.Host, u.AccountPort.DryRun())
	out := &RunOutput{}

	inv, err := u.Inventory.Build(ctx, &inventory.BuildInput{Filter: in.Filter, SkipDomains: true})
	if err != nil {
		rec.Fail(err)
		out.Run = rec.Finish()
		return out, err
	}

	for _, acct := range inv.Snapshot.Accounts() {
		boxes, err := u.AccountPort.ListMailboxes(ctx, acct.User)
		if err != nil {
			rec.Add(model.CategoryTransport, acct.User, fmt.Sprintf("no data returned, check the cPanel username: %v", err))
			continue
		}
		if len(boxes) == 0 {
			continue
		}
		if err := u.AccountPort.RefreshMailDirSize(ctx, acct.User); err != nil {
			logger.Warn(ctx, "maildirsize refresh failed", "user", acct.User, "error", err)
		}

		var lines []string
		for _, email := range boxes {
			usage, err := u.AccountPort.MailboxUsage(ctx, acct.User, email)
			if err != nil {
				rec.Add(model.CategoryTransport, email, err.Error())
				continue
			}
			if usage.UsedMB >= threshold {
				out.Over = append(out.Over, *usage)
				lines = append(lines, fmt.Sprintf("%-34s %.2fMB", usage.Email, usage.UsedMB))
			}
		}
		if len(lines) > 0 {
			rec.Add(model.CategoryMailUsage, acct.User, fmt.Sprintf("owner %s\n%s", acct.Owner, strings.Join(lines, "\n")))
		}
	}

	out.Run = rec.Finish()
	return out, nil
}
