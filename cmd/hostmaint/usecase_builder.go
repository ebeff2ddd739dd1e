package main

import (
	"github.com/spf13/cobra"

	"github.com/hostmaint/hostmaint/adapters/cpanel"
	"github.com/hostmaint/hostmaint/adapters/mailer"
	"github.com/hostmaint/hostmaint/adapters/resolver"
	"github.com/hostmaint/hostmaint/config/hostmaintcfg"
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/usecase/dnsfix"
	"github.com/hostmaint/hostmaint/usecase/inventory"
	"github.com/hostmaint/hostmaint/usecase/locrem"
	"github.com/hostmaint/hostmaint/usecase/mailusage"
	"github.com/hostmaint/hostmaint/usecase/report"
	"github.com/hostmaint/hostmaint/usecase/resolving"
	"github.com/hostmaint/hostmaint/usecase/terminate"
)

// ports bundles the adapters shared by the task use cases.
type ports struct {
	account  model.AccountPort
	resolver model.ResolverPort
}

func buildPorts(cfg *hostmaintcfg.Root, needResolver bool) (*ports, error) {
	p := &ports{
		account: cpanel.New(cpanel.Options{
			Runner:          cpanel.ExecRunner{Timeout: cfg.Account.CommandTimeout},
			AllowedCommands: cfg.Account.AllowedCommands,
			DryRun:          cfg.Server.DryRun,
		}),
	}
	if needResolver {
		r, err := resolver.New(resolver.Options{Servers: cfg.Resolver.Servers, Timeout: cfg.Resolver.Timeout})
		if err != nil {
			return nil, err
		}
		p.resolver = r
	}
	return p, nil
}

func (p *ports) inventory() *inventory.UseCase {
	return &inventory.UseCase{AccountPort: p.account}
}

// buildReportUseCase creates the report use case with the run repository and mailer.
func buildReportUseCase(cmd *cobra.Command, cfg *hostmaintcfg.Root) (*report.UseCase, error) {
	repo, err := buildRunRepository(cmd)
	if err != nil {
		return nil, err
	}
	uc := &report.UseCase{Repos: &report.Repos{Run: repo}}
	if cfg != nil {
		uc.Mailer = mailer.NewSMTPMailer(mailer.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
		})
	}
	return uc, nil
}

func buildLocRemUseCase(cfg *hostmaintcfg.Root) (*locrem.UseCase, error) {
	p, err := buildPorts(cfg, true)
	if err != nil {
		return nil, err
	}
	return &locrem.UseCase{AccountPort: p.account, Resolver: p.resolver, Inventory: p.inventory(), Host: cfg.Server.Hostname}, nil
}

func buildTerminateUseCase(cfg *hostmaintcfg.Root) (*terminate.UseCase, error) {
	p, err := buildPorts(cfg, true)
	if err != nil {
		return nil, err
	}
	return &terminate.UseCase{AccountPort: p.account, Resolver: p.resolver, Inventory: p.inventory(), Host: cfg.Server.Hostname}, nil
}

func buildDNSFixUseCase(cfg *hostmaintcfg.Root) (*dnsfix.UseCase, error) {
	p, err := buildPorts(cfg, true)
	if err != nil {
		return nil, err
	}
	return &dnsfix.UseCase{AccountPort: p.account, Resolver: p.resolver, Inventory: p.inventory(), Host: cfg.Server.Hostname}, nil
}

func buildMailUsageUseCase(cfg *hostmaintcfg.Root) (*mailusage.UseCase, error) {
	p, err := buildPorts(cfg, false)
	if err != nil {
		return nil, err
	}
	return &mailusage.UseCase{AccountPort: p.account, Inventory: p.inventory(), Host: cfg.Server.Hostname}, nil
}

func buildResolvingUseCase(cfg *hostmaintcfg.Root) (*resolving.UseCase, error) {
	p, err := buildPorts(cfg, true)
	if err != nil {
		return nil, err
	}
	return &resolving.UseCase{AccountPort: p.account, Resolver: p.resolver, Inventory: p.inventory(), Host: cfg.Server.Hostname}, nil
}
