// Package mocks provides hand-written doubles of the domain ports for use case tests.
package mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/hostmaint/hostmaint/domain/model"
)

// AccountPort is a function-field mock of model.AccountPort. Unset query
// functions return empty results; mutations are recorded in Calls.
type AccountPort struct {
	ListSuspendedFunc     func(ctx context.Context) ([]model.SuspensionRecord, error)
	ListResellersFunc     func(ctx context.Context) ([]string, error)
	ListAccountsFunc      func(ctx context.Context, filter model.AccountFilter) ([]model.AccountIdentity, error)
	AccountDomainsFunc    func(ctx context.Context, user string) (*model.AccountDomains, error)
	DomainUserDataFunc    func(ctx context.Context, domain string) (*model.DomainUserData, error)
	BandwidthFunc         func(ctx context.Context, user string) (*model.Bandwidth, error)
	SetBandwidthLimitFunc func(ctx context.Context, user string, limitMB int64) (string, error)
	ListMailboxesFunc     func(ctx context.Context, user string) ([]string, error)
	RefreshMailDirFunc    func(ctx context.Context, user string) error
	MailboxUsageFunc      func(ctx context.Context, user, email string) (*model.MailboxUsage, error)
	DumpZoneFunc          func(ctx context.Context, domain string) ([]model.ZoneRecord, error)
	ZoneRecordFunc        func(ctx context.Context, domain string, line int) (*model.ZoneRecord, error)
	EditZoneRecordFunc    func(ctx context.Context, domain string, rec model.ZoneRecord) error
	AddZoneRecordFunc     func(ctx context.Context, domain string, rec model.ZoneRecord) error
	SetMXCheckFunc        func(ctx context.Context, user, domain string, mode model.MXCheck) error
	SuspendFunc           func(ctx context.Context, user string, o model.SuspendOptions) error
	UnsuspendFunc         func(ctx context.Context, user string) error
	RemoveAccountFunc     func(ctx context.Context, user string, o model.RemoveAccountOptions) error

	DryRunMode bool
	// Calls records every mutating call as "<op> <args>".
	Calls []string
}

var _ model.AccountPort = (*AccountPort)(nil)

func (m *AccountPort) record(format string, args ...any) {
	m.Calls = append(m.Calls, fmt.Sprintf(format, args...))
}

// CallsWithPrefix returns the recorded calls starting with prefix.
func (m *AccountPort) CallsWithPrefix(prefix string) []string {
	var out []string
	for _, c := range m.Calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func (m *AccountPort) ListSuspended(ctx context.Context) ([]model.SuspensionRecord, error) {
	if m.ListSuspendedFunc != nil {
		return m.ListSuspendedFunc(ctx)
	}
	return nil, nil
}

func (m *AccountPort) ListResellers(ctx context.Context) ([]string, error) {
	if m.ListResellersFunc != nil {
		return m.ListResellersFunc(ctx)
	}
	return nil, nil
}

func (m *AccountPort) ListAccounts(ctx context.Context, filter model.AccountFilter) ([]model.AccountIdentity, error) {
	if m.ListAccountsFunc != nil {
		return m.ListAccountsFunc(ctx, filter)
	}
	return nil, nil
}

func (m *AccountPort) AccountDomains(ctx context.Context, user string) (*model.AccountDomains, error) {
	if m.AccountDomainsFunc != nil {
		return m.AccountDomainsFunc(ctx, user)
	}
	return &model.AccountDomains{}, nil
}

func (m *AccountPort) DomainUserData(ctx context.Context, domain string) (*model.DomainUserData, error) {
	if m.DomainUserDataFunc != nil {
		return m.DomainUserDataFunc(ctx, domain)
	}
	return nil, nil
}

func (m *AccountPort) Bandwidth(ctx context.Context, user string) (*model.Bandwidth, error) {
	if m.BandwidthFunc != nil {
		return m.BandwidthFunc(ctx, user)
	}
	return &model.Bandwidth{User: user}, nil
}

func (m *AccountPort) SetBandwidthLimit(ctx context.Context, user string, limitMB int64) (string, error) {
	m.record("limitbw %s %d", user, limitMB)
	if m.SetBandwidthLimitFunc != nil {
		return m.SetBandwidthLimitFunc(ctx, user, limitMB)
	}
	return "OK", nil
}

func (m *AccountPort) ListMailboxes(ctx context.Context, user string) ([]string, error) {
	if m.ListMailboxesFunc != nil {
		return m.ListMailboxesFunc(ctx, user)
	}
	return nil, nil
}

func (m *AccountPort) RefreshMailDirSize(ctx context.Context, user string) error {
	m.record("maildirsize %s", user)
	if m.RefreshMailDirFunc != nil {
		return m.RefreshMailDirFunc(ctx, user)
	}
	return nil
}

func (m *AccountPort) MailboxUsage(ctx context.Context, user, email string) (*model.MailboxUsage, error) {
	if m.MailboxUsageFunc != nil {
		return m.MailboxUsageFunc(ctx, user, email)
	}
	return &model.MailboxUsage{Email: email}, nil
}

func (m *AccountPort) DumpZone(ctx context.Context, domain string) ([]model.ZoneRecord, error) {
	if m.DumpZoneFunc != nil {
		return m.DumpZoneFunc(ctx, domain)
	}
	return nil, nil
}

func (m *AccountPort) ZoneRecord(ctx context.Context, domain string, line int) (*model.ZoneRecord, error) {
	if m.ZoneRecordFunc != nil {
		return m.ZoneRecordFunc(ctx, domain, line)
	}
	return nil, model.ErrZoneRecordMissing
}

func (m *AccountPort) EditZoneRecord(ctx context.Context, domain string, rec model.ZoneRecord) error {
	m.record("editzonerecord %s %d %s", domain, rec.Line, rec.Type)
	if m.EditZoneRecordFunc != nil {
		return m.EditZoneRecordFunc(ctx, domain, rec)
	}
	return nil
}

func (m *AccountPort) AddZoneRecord(ctx context.Context, domain string, rec model.ZoneRecord) error {
	m.record("addzonerecord %s %s %s", domain, rec.Name, rec.Type)
	if m.AddZoneRecordFunc != nil {
		return m.AddZoneRecordFunc(ctx, domain, rec)
	}
	return nil
}

func (m *AccountPort) SetMXCheck(ctx context.Context, user, domain string, mode model.MXCheck) error {
	m.record("setmxcheck %s %s %s", user, domain, mode)
	if m.SetMXCheckFunc != nil {
		return m.SetMXCheckFunc(ctx, user, domain, mode)
	}
	return nil
}

func (m *AccountPort) Suspend(ctx context.Context, user string, opts ...model.SuspendOption) error {
	var o model.SuspendOptions
	for _, opt := range opts {
		opt(&o)
	}
	m.record("suspend %s %s", user, o.Reason)
	if m.SuspendFunc != nil {
		return m.SuspendFunc(ctx, user, o)
	}
	return nil
}

func (m *AccountPort) Unsuspend(ctx context.Context, user string) error {
	m.record("unsuspend %s", user)
	if m.UnsuspendFunc != nil {
		return m.UnsuspendFunc(ctx, user)
	}
	return nil
}

func (m *AccountPort) RemoveAccount(ctx context.Context, user string, opts ...model.RemoveAccountOption) error {
	var o model.RemoveAccountOptions
	for _, opt := range opts {
		opt(&o)
	}
	m.record("removeacct %s keepdns=%t", user, o.KeepDNS)
	if m.RemoveAccountFunc != nil {
		return m.RemoveAccountFunc(ctx, user, o)
	}
	return nil
}

func (m *AccountPort) DryRun() bool { return m.DryRunMode }
