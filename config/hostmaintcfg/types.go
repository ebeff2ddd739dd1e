// Package hostmaintcfg defines the configuration schema (structs) for hostmaint.yml.
// This package is intended for YAML -> struct deserialization. Defaults,
// validation and conversion to domain settings live next to the schema.
package hostmaintcfg

import "time"

// Root is the root structure of hostmaint.yml.
type Root struct {
	Version   string    `yaml:"version"`
	Server    Server    `yaml:"server"`
	SMTP      SMTP      `yaml:"smtp"`
	Resolver  Resolver  `yaml:"resolver"`
	Account   Account   `yaml:"account"`
	LocRem    LocRem    `yaml:"locrem"`
	Terminate Terminate `yaml:"terminate"`
	DNSFix    DNSFix    `yaml:"dnsfix"`
	MailUsage MailUsage `yaml:"mailUsage"`
}

// Server holds settings shared by every task.
type Server struct {
	Hostname         string   `yaml:"hostname"` // defaults to os.Hostname
	ReportMail       []string `yaml:"reportMail"`
	SendReportMail   bool     `yaml:"sendReportMail"`
	DryRun           bool     `yaml:"dryRun"`
	NSIPRanges       []string `yaml:"nsIPRanges"` // CIDR list of the cluster name servers
	LogDir           string   `yaml:"logDir"`
	LogOutput        string   `yaml:"logOutput"` // "-" for stderr, "none" to disable, empty for one file per run
	LogRetentionDays int      `yaml:"logRetentionDays"`
}

// SMTP is the report mail relay.
type SMTP struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Resolver configures live DNS lookups.
type Resolver struct {
	Servers  []string      `yaml:"servers"`
	Timeout  time.Duration `yaml:"timeout"`
	ApexMode string        `yaml:"apexMode"` // labels | publicsuffix
}

// Account configures the account management command line client.
type Account struct {
	CommandTimeout  time.Duration `yaml:"commandTimeout"`
	AllowedCommands []string      `yaml:"allowedCommands"`
}

// LocRem configures the local/remote mail routing check.
type LocRem struct {
	LocalDomainsFile  string   `yaml:"localDomainsFile"`
	RemoteDomainsFile string   `yaml:"remoteDomainsFile"`
	IgnoreDomains     []string `yaml:"ignoreDomains"`
	IgnoreNameServers []string `yaml:"ignoreNameServers"`
	IncludeSubdomains bool     `yaml:"includeSubdomains"`
}

// Terminate configures removal of long suspended accounts. Unset periods
// take their defaults; zero is a valid period.
type Terminate struct {
	IgnoreDomains []string `yaml:"ignoreDomains"`
	PeriodMoved   *int     `yaml:"periodMoved"`   // days, intentional suspensions
	PeriodExpired *int     `yaml:"periodExpired"` // days, unexplained suspensions
	Owners        []string `yaml:"owners"`
}

// DNSFix configures the zone normalization task.
type DNSFix struct {
	IgnoreDomains []string `yaml:"ignoreDomains"`
	SPFInclude    string   `yaml:"spfInclude"` // e.g. include:spf.example.com
}

// MailUsage configures the mailbox disk usage audit.
type MailUsage struct {
	ThresholdMB float64 `yaml:"thresholdMB"`
}
