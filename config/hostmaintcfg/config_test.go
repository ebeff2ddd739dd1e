package hostmaintcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"k8s.io/utils/ptr"
)

const sample = `
version: v1
server:
  hostname: web1.example.net
  reportMail: [ops@example.net]
  sendReportMail: true
  nsIPRanges:
    - 178.218.172.160/27
    - " 10.1.0.0/16 "
  logDir: /tmp/hostmaint
resolver:
  servers: [127.0.0.1]
  timeout: 3s
  apexMode: publicsuffix
locrem:
  localDomainsFile: /etc/hostmaint/local
  remoteDomainsFile: /etc/hostmaint/remote
  ignoreDomains: [example.org]
  ignoreNameServers: [ns-apex.com]
terminate:
  periodMoved: 0
  owners: [root, res1]
dnsfix:
  spfInclude: include:spf.example.net
`

func TestLoad_Success(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostmaint.yml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Resolver.Timeout != 3*time.Second {
		t.Errorf("resolver.timeout = %v", cfg.Resolver.Timeout)
	}
	if cfg.SMTP.From != "root@web1.example.net" || cfg.SMTP.Port != 25 {
		t.Errorf("smtp defaults = %+v", cfg.SMTP)
	}

	pol, err := cfg.Policy()
	if err != nil {
		t.Fatalf("Policy: %v", err)
	}
	if pol.PeriodMoved != 0 || pol.PeriodExpired != DefaultPeriodExpired {
		t.Errorf("periods = %d/%d, want 0/%d", pol.PeriodMoved, pol.PeriodExpired, DefaultPeriodExpired)
	}
	if len(pol.NSRanges) != 2 || pol.NSRanges[1].String() != "10.1.0.0/16" {
		t.Errorf("ranges = %v", pol.NSRanges)
	}

	cl, err := cfg.Classifier()
	if err != nil {
		t.Fatalf("Classifier: %v", err)
	}
	if !cl.Ignored("www.example.org") || !cl.IgnoredNameServers.Contains("ns1.ns-apex.com") {
		t.Errorf("classifier ignore sets not populated")
	}
	if err := cfg.ValidateDNSFix(); err != nil {
		t.Errorf("ValidateDNSFix: %v", err)
	}
	if err := cfg.ValidateLocRem(); err != nil {
		t.Errorf("ValidateLocRem: %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Parse([]byte("server:\n  hostnme: x\n")); err == nil {
		t.Error("expected error for unknown field")
	}
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty document: %v", err)
	}
	cfg.ApplyDefaults()
	if ptr.Deref(cfg.Terminate.PeriodMoved, -1) != DefaultPeriodMoved {
		t.Errorf("periodMoved default = %v", cfg.Terminate.PeriodMoved)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Root)
		wantErr string
	}{
		{"ok", func(*Root) {}, ""},
		{"bad cidr", func(r *Root) { r.Server.NSIPRanges = []string{"300.1.1.0/24"} }, "nsIPRanges[0]"},
		{"negative period", func(r *Root) { r.Terminate.PeriodExpired = ptr.To(-1) }, "periodExpired"},
		{"apex mode", func(r *Root) { r.Resolver.ApexMode = "tld" }, "apexMode"},
		{"mail without recipients", func(r *Root) { r.Server.SendReportMail = true }, "reportMail"},
		{"bad recipient", func(r *Root) { r.Server.ReportMail = []string{"not an address"} }, "reportMail[0]"},
		{"bad ignore domain", func(r *Root) { r.Terminate.IgnoreDomains = []string{"bad_domain"} }, "ignoreDomains[0]"},
		{"smtp port", func(r *Root) { r.SMTP.Port = 70000 }, "smtp.port"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Root{}
			r.ApplyDefaults()
			tt.mutate(r)
			err := r.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDNSFix(t *testing.T) {
	for in, ok := range map[string]bool{
		"":                         false,
		"a:spf.example.net":        false,
		"include:spf.example.net":  true,
		"+include:spf.example.net": true,
	} {
		r := &Root{DNSFix: DNSFix{SPFInclude: in}}
		if err := r.ValidateDNSFix(); (err == nil) != ok {
			t.Errorf("ValidateDNSFix(%q) err = %v, want ok=%v", in, err, ok)
		}
	}
}
