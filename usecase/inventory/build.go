package inventory

import (
	"context"
	"fmt"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/logging"
	"github.com/hostmaint/hostmaint/internal/naming"
)

// BuildInput selects the accounts of the snapshot.
type BuildInput struct {
	Filter            model.AccountFilter `json:"filter"`
	IncludeSubdomains bool                `json:"include_subdomains,omitempty"`
	// SkipDomains leaves the domain lists empty for tasks that only need accounts.
	SkipDomains bool `json:"skip_domains,omitempty"`
}

// BuildOutput wraps the snapshot.
type BuildOutput struct {
	Snapshot *Snapshot `json:"-"`
}

// Build lists accounts and their domains. Only a failed account listing is
// fatal and is reported as model.ErrInventory.
func (u *UseCase) Build(ctx context.Context, in *BuildInput) (*BuildOutput, error) {
	if in == nil {
		in = &BuildInput{}
	}
	logger := logging.FromContext(ctx)

	accts, err := u.AccountPort.ListAccounts(ctx, in.Filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrInventory, err)
	}

	var failures []AccountFailure
	out := make([]model.AccountIdentity, 0, len(accts))
	for _, a := range accts {
		if in.SkipDomains {
			out = append(out, a)
			continue
		}
		domains, err := u.DomainsOf(ctx, a.User, in.IncludeSubdomains)
		if err != nil {
			logger.Warn(ctx, "account domains unavailable", "user", a.User, "error", err)
			failures = append(failures, AccountFailure{User: a.User, Err: err})
			domains = nil
			if d := naming.Normalize(a.Domain); d != "" {
				domains = []string{d}
			}
		}
		a.Domains = domains
		out = append(out, a)
	}
	return &BuildOutput{Snapshot: newSnapshot(out, failures)}, nil
}

// DomainsOf returns the normalized, de-duplicated domains of user: main,
// addon and parked, plus sub-domains when includeSub is set.
func (u *UseCase) DomainsOf(ctx context.Context, user string, includeSub bool) ([]string, error) {
	ad, err := u.AccountPort.AccountDomains(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("list domains of %s: %w", user, err)
	}
	if ad == nil {
		return nil, nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, d := range ad.List(includeSub) {
		d = naming.Normalize(d)
		if _, dup := seen[d]; dup || d == "" {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out, nil
}
