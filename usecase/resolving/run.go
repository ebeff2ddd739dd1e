package resolving

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
const TaskName = "resolving"

const noDomainData = "No domain data found, admin should check"

// RunInput restricts the report to one owner or one user.
type RunInput struct {
	Owner string `json:"owner,omitempty"`
	User  string `json:"user,omitempty"`
}

// RunOutput carries the finished run.
type RunOutput struct {
	Run *model.Run `json:"run"`
}

func (in *RunInput) filter() (model.AccountFilter, error) {
	switch {
	case in.Owner != "" && in.User != "":
		return model.AccountFilter{}, fmt.Errorf("owner and user are mutually exclusive")
	case in.Owner != "":
		return model.AccountFilter{Search: in.Owner, SearchType: model.SearchOwner}, nil
	case in.User != "":
		return model.AccountFilter{Search: in.User, SearchType: model.SearchUser}, nil
	default:
		return model.AccountFilter{}, nil
	}
}

// Run lists every selected account with the vhost data and live records of
// each of its domains.
func (u *UseCase) Run(ctx context.Context, in *RunInput) (*RunOutput, error) {
	if in == nil {
		in = &RunInput{}
	}
	filter, err := in.filter()
	if err != nil {
		return nil, err
	}
	rec := report.NewRecorder(TaskName, u.Host, u.AccountPort.DryRun())

	if in.Owner != "" && in.Owner != "root" {
		if err := u.checkOwner(ctx, in.Owner); err != nil {
			rec.Fail(err)
			return &RunOutput{Run: rec.Finish()}, err
		}
	}

	inv, err := u.Inventory.Build(ctx, &inventory.BuildInput{Filter: filter, IncludeSubdomains: true})
	if err != nil {
		rec.Fail(err)
		return &RunOutput{Run: rec.Finish()}, err
	}
	for _, f := range inv.Snapshot.Failures() {
		rec.Add(model.CategoryTransport, f.User, f.Err.Error())
	}

	for _, acct := range inv.Snapshot.Accounts() {
		var b strings.Builder
		fmt.Fprintf(&b, "LOCAL IP: %s", acct.LocalIP)
		for _, domain := range acct.Domains {
			docroot, vhostIP := noDomainData, noDomainData
			if ud, err := u.AccountPort.DomainUserData(ctx, domain); err != nil {
				logging.FromContext(ctx).Warn(ctx, "domain user data unavailable", "domain", domain, "error", err)
			} else if ud != nil && ud.DocumentRoot != "" {
				docroot, vhostIP = ud.DocumentRoot, ud.IP
			}
			rs := model.ResolveAll(ctx, u.Resolver, domain)
			fmt.Fprintf(&b, "\n\n%-34s %s\nVHOST IP: %s\n%s", domain, docroot, vhostIP, rs.Summary(""))
		}
		rec.Add(model.CategoryResolving, acct.Owner+"/"+acct.User, b.String())
	}
	return &RunOutput{Run: rec.Finish()}, nil
}

func (u *UseCase) checkOwner(ctx context.Context, owner string) error {
	resellers, err := u.AccountPort.ListResellers(ctx)
	if err != nil {
		return fmt.Errorf("%w: list resellers: %w", model.ErrInventory, err)
	}
	for _, r := range resellers {
		if r == owner {
			return nil
		}
	}
	return fmt.Errorf("owner %q is not a reseller on this server", owner)
}
