package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newCmdConfig returns a command that reads, validates and summarizes the configuration.
func newCmdConfig() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Read and validate configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pol, err := cfg.Policy()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			// Print a concise summary to stdout
			fmt.Fprintf(w, "hostname=%s dry_run=%t send_report_mail=%t report_mail=%s\n",
				cfg.Server.Hostname, cfg.Server.DryRun, cfg.Server.SendReportMail, strings.Join(cfg.Server.ReportMail, ","))
			fmt.Fprintf(w, "ns_ranges=%s apex_mode=%s log_dir=%s\n",
				strings.Join(cfg.Server.NSIPRanges, ","), cfg.Apex(), cfg.Server.LogDir)
			fmt.Fprintf(w, "terminate: period_moved=%d period_expired=%d owners=%s\n",
				pol.PeriodMoved, pol.PeriodExpired, strings.Join(pol.Owners, ","))
			fmt.Fprintf(w, "dnsfix: spf_include=%s\n", cfg.DNSFix.SPFInclude)
			fmt.Fprintf(w, "mailusage: threshold_mb=%.0f\n", cfg.MailUsage.ThresholdMB)
			return nil
		},
	}
}
