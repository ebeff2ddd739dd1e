package hostmaintcfg

import (
	"os"
	"time"

	"k8s.io/utils/ptr"

	"github.com/hostmaint/hostmaint/internal/naming"
)

const (
	DefaultLogDir           = "/var/log/hostmaint"
	DefaultSMTPHost         = "localhost"
	DefaultSMTPPort         = 25
	DefaultResolverTimeout  = 5 * time.Second
	DefaultCommandTimeout   = 5 * time.Minute
	DefaultPeriodMoved      = 30
	DefaultPeriodExpired    = 60
	DefaultMailThresholdMB  = 500
	DefaultLogRetentionDays = 30
)

// DefaultAllowedCommands mirrors the executables the account client needs.
var DefaultAllowedCommands = []string{
	"whmapi1", "whmapi2", "cpapi2", "uapi",
	"/scripts/generate_maildirsize", "lve-read-snapshot", "hostname",
}

// ApplyDefaults fills unset fields in place.
func (r *Root) ApplyDefaults() {
	if r.Server.Hostname == "" {
		if h, err := os.Hostname(); err == nil {
			r.Server.Hostname = h
		}
	}
	if r.Server.LogDir == "" {
		r.Server.LogDir = DefaultLogDir
	}
	if r.Server.LogRetentionDays == 0 {
		r.Server.LogRetentionDays = DefaultLogRetentionDays
	}
	if r.SMTP.Host == "" {
		r.SMTP.Host = DefaultSMTPHost
	}
	if r.SMTP.Port == 0 {
		r.SMTP.Port = DefaultSMTPPort
	}
	if r.SMTP.From == "" && r.Server.Hostname != "" {
		r.SMTP.From = "root@" + r.Server.Hostname
	}
	if r.Resolver.Timeout == 0 {
		r.Resolver.Timeout = DefaultResolverTimeout
	}
	if r.Resolver.ApexMode == "" {
		r.Resolver.ApexMode = string(naming.ApexLabels)
	}
	if r.Account.CommandTimeout == 0 {
		r.Account.CommandTimeout = DefaultCommandTimeout
	}
	if len(r.Account.AllowedCommands) == 0 {
		r.Account.AllowedCommands = append([]string(nil), DefaultAllowedCommands...)
	}
	if r.Terminate.PeriodMoved == nil {
		r.Terminate.PeriodMoved = ptr.To(DefaultPeriodMoved)
	}
	if r.Terminate.PeriodExpired == nil {
		r.Terminate.PeriodExpired = ptr.To(DefaultPeriodExpired)
	}
	if r.MailUsage.ThresholdMB == 0 {
		r.MailUsage.ThresholdMB = DefaultMailThresholdMB
	}
}
