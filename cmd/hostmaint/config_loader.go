package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hostmaint/hostmaint/config/hostmaintcfg"
)

const defaultConfigPath = hostmaintcfg.DefaultPath

// findFlag looks a flag up on cmd and its parents.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

func flagString(cmd *cobra.Command, name, def string) string {
	if f := findFlag(cmd, name); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return def
}

// loadConfig reads, defaults and validates the configuration selected by
// --config. The --dry-run flag can only switch dry-run on.
func loadConfig(cmd *cobra.Command) (*hostmaintcfg.Root, error) {
	path := flagString(cmd, "config", defaultConfigPath)
	cfg, err := hostmaintcfg.Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", path, err)
	}
	if flagString(cmd, "dry-run", "false") == "true" {
		cfg.Server.DryRun = true
	}
	return cfg, nil
}
