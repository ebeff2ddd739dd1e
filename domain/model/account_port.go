package model

import "context"

// Operation-scoped options and functional option types.
type RemoveAccountOptions struct{ KeepDNS bool }
type SuspendOptions struct{ Reason string }

type RemoveAccountOption func(*RemoveAccountOptions)
type SuspendOption func(*SuspendOptions)

// WithKeepDNS keeps the DNS zone of a removed account.
func WithKeepDNS() RemoveAccountOption {
	return func(o *RemoveAccountOptions) { o.KeepDNS = true }
}

// WithSuspendReason sets the reason recorded for a suspension.
func WithSuspendReason(reason string) SuspendOption {
	return func(o *SuspendOptions) { o.Reason = reason }
}

// MXCheck is the declared mail routing mode of a domain.
type MXCheck string

const (
	MXCheckLocal  MXCheck = "local"
	MXCheckRemote MXCheck = "remote"
)

// AccountPort is the domain port for the account management API. Mutating
// calls are no-ops returning nil when the implementation runs in dry-run mode.
type AccountPort interface {
	ListSuspended(ctx context.Context) ([]SuspensionRecord, error)
	ListResellers(ctx context.Context) ([]string, error)
	ListAccounts(ctx context.Context, filter AccountFilter) ([]AccountIdentity, error)
	AccountDomains(ctx context.Context, user string) (*AccountDomains, error)
	DomainUserData(ctx context.Context, domain string) (*DomainUserData, error)

	Bandwidth(ctx context.Context, user string) (*Bandwidth, error)
	SetBandwidthLimit(ctx context.Context, user string, limitMB int64) (string, error)

	ListMailboxes(ctx context.Context, user string) ([]string, error)
	RefreshMailDirSize(ctx context.Context, user string) error
	MailboxUsage(ctx context.Context, user, email string) (*MailboxUsage, error)

	DumpZone(ctx context.Context, domain string) ([]ZoneRecord, error)
	ZoneRecord(ctx context.Context, domain string, line int) (*ZoneRecord, error)
	EditZoneRecord(ctx context.Context, domain string, rec ZoneRecord) error
	AddZoneRecord(ctx context.Context, domain string, rec ZoneRecord) error

	SetMXCheck(ctx context.Context, user, domain string, mode MXCheck) error
	Suspend(ctx context.Context, user string, opts ...SuspendOption) error
	Unsuspend(ctx context.Context, user string) error
	RemoveAccount(ctx context.Context, user string, opts ...RemoveAccountOption) error

	DryRun() bool
}
