package cpanel

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/hostmaint/hostmaint/domain/model"
)

type suspendedAccount struct {
	User     string `yaml:"user"`
	Owner    string `yaml:"owner"`
	Reason   string `yaml:"reason"`
	Time     string `yaml:"time"`
	UnixTime number `yaml:"unixtime"`
}

// ListSuspended returns the suspended accounts. A missing or invalid
// timestamp yields a zero SuspendedAt and zero days.
func (c *Client) ListSuspended(ctx context.Context) ([]model.SuspensionRecord, error) {
	resp, err := whmapi1[struct {
		Account []suspendedAccount `yaml:"account"`
	}](ctx, c, false, "listsuspended")
	if err != nil {
		return nil, err
	}
	now := c.now()
	out := make([]model.SuspensionRecord, 0, len(resp.Data.Account))
	for _, a := range resp.Data.Account {
		rec := model.SuspensionRecord{User: a.User, Owner: a.Owner, Reason: a.Reason}
		if a.UnixTime > 0 {
			rec.SuspendedAt = time.Unix(int64(a.UnixTime), 0)
			rec.SuspendedSinceDays = model.SuspendedDays(rec.SuspendedAt, now)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c *Client) ListResellers(ctx context.Context) ([]string, error) {
	resp, err := whmapi1[struct {
		Reseller []string `yaml:"reseller"`
	}](ctx, c, false, "listresellers")
	if err != nil {
		return nil, err
	}
	out := append([]string(nil), resp.Data.Reseller...)
	sort.Strings(out)
	return out, nil
}

type listedAccount struct {
	User   string `yaml:"user"`
	Owner  string `yaml:"owner"`
	IP     string `yaml:"ip"`
	Domain string `yaml:"domain"`
}

func (c *Client) ListAccounts(ctx context.Context, filter model.AccountFilter) ([]model.AccountIdentity, error) {
	var params []string
	if filter.Search != "" {
		st := filter.SearchType
		if st == "" {
			st = model.SearchOwner
		}
		params = append(params, param("search", filter.Search), param("searchtype", st))
	}
	resp, err := whmapi1[struct {
		Acct []listedAccount `yaml:"acct"`
	}](ctx, c, false, "listaccts", params...)
	if err != nil {
		return nil, err
	}
	out := make([]model.AccountIdentity, 0, len(resp.Data.Acct))
	for _, a := range resp.Data.Acct {
		// the search is a regular expression on the API side
		if filter.Search != "" && filter.SearchType == model.SearchUser && a.User != filter.Search {
			continue
		}
		out = append(out, model.AccountIdentity{User: a.User, Owner: a.Owner, LocalIP: a.IP, Domain: a.Domain})
	}
	return out, nil
}

func (c *Client) AccountDomains(ctx context.Context, user string) (*model.AccountDomains, error) {
	return uapi[model.AccountDomains](ctx, c, user, "DomainInfo", "list_domains")
}

func (c *Client) DomainUserData(ctx context.Context, domain string) (*model.DomainUserData, error) {
	resp, err := whmapi1[struct {
		UserData struct {
			User         string `yaml:"user"`
			DocumentRoot string `yaml:"documentroot"`
			IP           string `yaml:"ip"`
		} `yaml:"userdata"`
	}](ctx, c, false, "domainuserdata", param("domain", domain))
	if err != nil {
		return nil, err
	}
	ud := resp.Data.UserData
	return &model.DomainUserData{Domain: domain, User: ud.User, DocumentRoot: ud.DocumentRoot, IP: ud.IP}, nil
}

func (c *Client) Bandwidth(ctx context.Context, user string) (*model.Bandwidth, error) {
	resp, err := whmapi1[struct {
		Acct []struct {
			User       string `yaml:"user"`
			TotalBytes number `yaml:"totalbytes"`
			Limit      number `yaml:"limit"`
		} `yaml:"acct"`
	}](ctx, c, false, "showbw", param("searchtype", "user"), param("search", user))
	if err != nil {
		return nil, err
	}
	for _, a := range resp.Data.Acct {
		if a.User == user || len(resp.Data.Acct) == 1 {
			return &model.Bandwidth{User: user, TotalBytes: int64(a.TotalBytes), LimitBytes: int64(a.Limit)}, nil
		}
	}
	return nil, rejected(commandLine("whmapi1", []string{"showbw", "user=" + user}), "no bandwidth data for "+user)
}

// SetBandwidthLimit applies a limit in MB and returns the API reason.
func (c *Client) SetBandwidthLimit(ctx context.Context, user string, limitMB int64) (string, error) {
	resp, err := whmapi1[struct{}](ctx, c, true, "limitbw", param("user", user), param("bwlimit", limitMB))
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "DRY RUN: limit not applied", nil
	}
	return resp.Metadata.Reason, nil
}

func (c *Client) Suspend(ctx context.Context, user string, opts ...model.SuspendOption) error {
	var o model.SuspendOptions
	for _, opt := range opts {
		opt(&o)
	}
	params := []string{param("user", user)}
	if o.Reason != "" {
		params = append(params, param("reason", o.Reason))
	}
	_, err := whmapi1[struct{}](ctx, c, true, "suspendacct", params...)
	return err
}

func (c *Client) Unsuspend(ctx context.Context, user string) error {
	_, err := whmapi1[struct{}](ctx, c, true, "unsuspendacct", param("user", user))
	return err
}

func (c *Client) RemoveAccount(ctx context.Context, user string, opts ...model.RemoveAccountOption) error {
	var o model.RemoveAccountOptions
	for _, opt := range opts {
		opt(&o)
	}
	params := []string{param("user", user)}
	if o.KeepDNS {
		params = append(params, param("keepdns", 1))
	}
	_, err := whmapi1[struct{}](ctx, c, true, "removeacct", params...)
	return err
}

func (c *Client) SetMXCheck(ctx context.Context, user, domain string, mode model.MXCheck) error {
	return cpapi2(ctx, c, user, "Email", "setmxcheck", param("domain", domain), param("mxcheck", mode))
}

func (c *Client) ListMailboxes(ctx context.Context, user string) ([]string, error) {
	resp, err := whmapi1[struct {
		Pops []string `yaml:"pops"`
	}](ctx, c, false, "list_pops_for", param("user", user))
	if err != nil {
		return nil, err
	}
	return resp.Data.Pops, nil
}

// RefreshMailDirSize regenerates the maildirsize files of user. It only
// refreshes cached usage and runs in dry-run mode too.
func (c *Client) RefreshMailDirSize(ctx context.Context, user string) error {
	_, err := c.exec(ctx, "/scripts/generate_maildirsize", "--confirm", "--allaccounts", "--verbose", user)
	return err
}

func (c *Client) MailboxUsage(ctx context.Context, user, email string) (*model.MailboxUsage, error) {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return nil, rejected(email, "mailbox address without domain")
	}
	data, err := uapi[struct {
		DiskUsed number `yaml:"diskused"`
	}](ctx, c, user, "Email", "get_disk_usage", param("user", local), param("domain", domain))
	if err != nil {
		return nil, err
	}
	return &model.MailboxUsage{Email: email, UsedMB: float64(data.DiskUsed)}, nil
}
