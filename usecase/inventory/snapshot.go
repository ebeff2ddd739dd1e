package inventory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hostmaint/hostmaint/domain/model"
)

// Conflict is a domain listed by more than one account.
type Conflict struct {
	Domain string   `json:"domain"`
	Users  []string `json:"users"`
}

func (c Conflict) Error() string {
	return fmt.Sprintf("%s: %s bound to %s", model.ErrDomainConflict, c.Domain, strings.Join(c.Users, ", "))
}

func (c Conflict) Unwrap() error { return model.ErrDomainConflict }

// AccountFailure is an account whose domain list could not be fetched. The
// account stays in the snapshot with its main domain only.
type AccountFailure struct {
	User string `json:"user"`
	Err  error  `json:"-"`
}

// Snapshot is the immutable owner -> user -> domains inventory of one run.
type Snapshot struct {
	accounts   map[string]model.AccountIdentity
	byOwner    map[string][]string
	domainUser map[string]string
	conflicts  []Conflict
	failures   []AccountFailure
}

func newSnapshot(accounts []model.AccountIdentity, failures []AccountFailure) *Snapshot {
	s := &Snapshot{
		accounts:   make(map[string]model.AccountIdentity, len(accounts)),
		byOwner:    map[string][]string{},
		domainUser: map[string]string{},
		failures:   failures,
	}
	bound := map[string][]string{}
	for _, a := range accounts {
		s.accounts[a.User] = a
		s.byOwner[a.Owner] = append(s.byOwner[a.Owner], a.User)
		for _, d := range a.Domains {
			bound[d] = appendUnique(bound[d], a.User)
		}
	}
	for owner := range s.byOwner {
		sort.Strings(s.byOwner[owner])
	}
	for d, users := range bound {
		if len(users) == 1 {
			s.domainUser[d] = users[0]
			continue
		}
		sort.Strings(users)
		s.conflicts = append(s.conflicts, Conflict{Domain: d, Users: users})
	}
	sort.Slice(s.conflicts, func(i, j int) bool { return s.conflicts[i].Domain < s.conflicts[j].Domain })
	return s
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// Owners returns the owners in sorted order.
func (s *Snapshot) Owners() []string {
	out := make([]string, 0, len(s.byOwner))
	for o := range s.byOwner {
		out = append(out, o)
	}
	sort.Strings(out)
	return out
}

// Users returns the accounts of owner sorted by user.
func (s *Snapshot) Users(owner string) []model.AccountIdentity {
	users := s.byOwner[owner]
	out := make([]model.AccountIdentity, 0, len(users))
	for _, u := range users {
		out = append(out, s.accounts[u])
	}
	return out
}

// Accounts returns every account ordered by owner then user.
func (s *Snapshot) Accounts() []model.AccountIdentity {
	var out []model.AccountIdentity
	for _, o := range s.Owners() {
		out = append(out, s.Users(o)...)
	}
	return out
}

// Account returns the account of user.
func (s *Snapshot) Account(user string) (model.AccountIdentity, bool) {
	a, ok := s.accounts[user]
	return a, ok
}

// Owning returns the single account bound to domain. Conflicting domains have
// no owning account.
func (s *Snapshot) Owning(domain string) (model.AccountIdentity, bool) {
	u, ok := s.domainUser[domain]
	if !ok {
		return model.AccountIdentity{}, false
	}
	return s.accounts[u], true
}

// Conflicts returns the domains bound to more than one account.
func (s *Snapshot) Conflicts() []Conflict { return s.conflicts }

// Failures returns the accounts whose domain list could not be fetched.
func (s *Snapshot) Failures() []AccountFailure { return s.failures }

// Len returns the number of accounts.
func (s *Snapshot) Len() int { return len(s.accounts) }
