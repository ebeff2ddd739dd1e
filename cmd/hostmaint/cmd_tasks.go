package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hostmaint/hostmaint/config/hostmaintcfg"
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/usecase/dnsfix"
	"github.com/hostmaint/hostmaint/usecase/locrem"
	"github.com/hostmaint/hostmaint/usecase/mailusage"
	"github.com/hostmaint/hostmaint/usecase/resolving"
	"github.com/hostmaint/hostmaint/usecase/terminate"
)

func newCmdLocRem() *cobra.Command {
	return &cobra.Command{
		Use:   "locrem",
		Short: "Compare live mail routing with the declared local/remote lists and fix mismatches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, locrem.TaskName, func(ctx context.Context, cfg *hostmaintcfg.Root) (*model.Run, error) {
				if err := cfg.ValidateLocRem(); err != nil {
					return nil, err
				}
				classifier, err := cfg.Classifier()
				if err != nil {
					return nil, err
				}
				declared, err := locrem.LoadDeclared(cfg.LocRem.LocalDomainsFile, cfg.LocRem.RemoteDomainsFile)
				if err != nil {
					return nil, err
				}
				uc, err := buildLocRemUseCase(cfg)
				if err != nil {
					return nil, err
				}
				out, err := uc.Run(ctx, &locrem.RunInput{
					Classifier:        classifier,
					Declared:          declared,
					IncludeSubdomains: cfg.LocRem.IncludeSubdomains,
				})
				if out == nil {
					return nil, err
				}
				return out.Run, err
			})
		},
	}
}

func newCmdTerminate() *cobra.Command {
	return &cobra.Command{
		Use:   "terminate",
		Short: "Remove accounts suspended longer than the configured grace periods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, terminate.TaskName, func(ctx context.Context, cfg *hostmaintcfg.Root) (*model.Run, error) {
				policy, err := cfg.Policy()
				if err != nil {
					return nil, err
				}
				if len(policy.Owners) == 0 {
					return nil, fmt.Errorf("terminate.owners: at least one owner is required")
				}
				uc, err := buildTerminateUseCase(cfg)
				if err != nil {
					return nil, err
				}
				out, err := uc.Run(ctx, &terminate.RunInput{Policy: policy})
				if out == nil {
					return nil, err
				}
				return out.Run, err
			})
		},
	}
}

func newCmdDNSFix() *cobra.Command {
	return &cobra.Command{
		Use:   "dnsfix",
		Short: "Normalize SPF and mail host records in locally served zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, dnsfix.TaskName, func(ctx context.Context, cfg *hostmaintcfg.Root) (*model.Run, error) {
				if err := cfg.ValidateDNSFix(); err != nil {
					return nil, err
				}
				ranges, err := cfg.NSRanges()
				if err != nil {
					return nil, err
				}
				uc, err := buildDNSFixUseCase(cfg)
				if err != nil {
					return nil, err
				}
				out, err := uc.Run(ctx, &dnsfix.RunInput{
					Planner:        cfg.Planner(),
					IgnoredDomains: cfg.DNSFixIgnored(),
					NSRanges:       ranges,
				})
				if out == nil {
					return nil, err
				}
				return out.Run, err
			})
		},
	}
}

func newCmdMailUsage() *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "mailusage",
		Short: "Report mailboxes at or above the disk usage threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTask(cmd, mailusage.TaskName, func(ctx context.Context, cfg *hostmaintcfg.Root) (*model.Run, error) {
				uc, err := buildMailUsageUseCase(cfg)
				if err != nil {
					return nil, err
				}
				in := &mailusage.RunInput{ThresholdMB: cfg.MailUsage.ThresholdMB}
				if owner != "" {
					in.Filter = model.AccountFilter{Search: owner, SearchType: model.SearchOwner}
				}
				out, err := uc.Run(ctx, in)
				if out == nil {
					return nil, err
				}
				return out.Run, err
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Only audit accounts of this owner")
	return cmd
}

func newCmdResolving() *cobra.Command {
	var owner, user string
	cmd := &cobra.Command{
		Use:   "resolving",
		Short: "Report document roots, vhost IPs and live DNS of every domain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if owner != "" && user != "" {
				return fmt.Errorf("--owner and --user cannot be specified together")
			}
			return runTask(cmd, resolving.TaskName, func(ctx context.Context, cfg *hostmaintcfg.Root) (*model.Run, error) {
				uc, err := buildResolvingUseCase(cfg)
				if err != nil {
					return nil, err
				}
				out, err := uc.Run(ctx, &resolving.RunInput{Owner: owner, User: user})
				if out == nil {
					return nil, err
				}
				return out.Run, err
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Only report accounts of this owner")
	cmd.Flags().StringVar(&user, "user", "", "Only report this account")
	return cmd
}
