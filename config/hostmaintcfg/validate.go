package hostmaintcfg

import (
	"fmt"
	"net/mail"
	"net/netip"
	"strings"

	"k8s.io/utils/ptr"

	"github.com/hostmaint/hostmaint/internal/naming"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if err := r.Server.validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	switch naming.ApexMode(r.Resolver.ApexMode) {
	case "", naming.ApexLabels, naming.ApexPublicSuffix:
	default:
		return fmt.Errorf("resolver.apexMode: invalid mode %q, must be %q or %q", r.Resolver.ApexMode, naming.ApexLabels, naming.ApexPublicSuffix)
	}
	if r.Resolver.Timeout < 0 {
		return fmt.Errorf("resolver.timeout: must not be negative")
	}
	if r.Account.CommandTimeout < 0 {
		return fmt.Errorf("account.commandTimeout: must not be negative")
	}
	if err := r.Terminate.validate(); err != nil {
		return fmt.Errorf("terminate: %w", err)
	}
	if r.MailUsage.ThresholdMB < 0 {
		return fmt.Errorf("mailUsage.thresholdMB: must not be negative")
	}
	if r.SMTP.Port < 0 || r.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port: out of range: %d", r.SMTP.Port)
	}
	return nil
}

func (s *Server) validate() error {
	for i, c := range s.NSIPRanges {
		if _, err := netip.ParsePrefix(strings.TrimSpace(c)); err != nil {
			return fmt.Errorf("nsIPRanges[%d]: %w", i, err)
		}
	}
	if s.SendReportMail && len(s.ReportMail) == 0 {
		return fmt.Errorf("reportMail: required when sendReportMail is set")
	}
	for i, a := range s.ReportMail {
		if _, err := mail.ParseAddress(a); err != nil {
			return fmt.Errorf("reportMail[%d]: %w", i, err)
		}
	}
	if s.LogRetentionDays < 0 {
		return fmt.Errorf("logRetentionDays: must not be negative")
	}
	return nil
}

func (t *Terminate) validate() error {
	if ptr.Deref(t.PeriodMoved, 0) < 0 {
		return fmt.Errorf("periodMoved: must not be negative")
	}
	if ptr.Deref(t.PeriodExpired, 0) < 0 {
		return fmt.Errorf("periodExpired: must not be negative")
	}
	for i, d := range t.IgnoreDomains {
		if err := naming.ValidateDomain(d); err != nil {
			return fmt.Errorf("ignoreDomains[%d]: %w", i, err)
		}
	}
	return nil
}

// ValidateDNSFix checks the settings the dnsfix task cannot run without.
func (r *Root) ValidateDNSFix() error {
	inc := strings.TrimSpace(r.DNSFix.SPFInclude)
	if inc == "" {
		return fmt.Errorf("dnsfix.spfInclude: required")
	}
	if !strings.HasPrefix(strings.TrimPrefix(inc, "+"), "include:") {
		return fmt.Errorf("dnsfix.spfInclude: %q is not an include mechanism", inc)
	}
	return nil
}

// ValidateLocRem checks the settings the locrem task cannot run without.
func (r *Root) ValidateLocRem() error {
	if r.LocRem.LocalDomainsFile == "" || r.LocRem.RemoteDomainsFile == "" {
		return fmt.Errorf("locrem: localDomainsFile and remoteDomainsFile are required")
	}
	return nil
}
