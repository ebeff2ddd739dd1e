package main

import (
	"context"
	"io"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hostmaint/hostmaint/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hostmaint",
		Short:   "Hosting server maintenance tasks",
		Long:    "Maintenance tasks for cPanel/WHM hosting servers: mail routing checks, termination of long suspended accounts, DNS zone normalization and usage reports.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Show help by default when no subcommand is provided.
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := os.Getenv("HOSTMAINT_CONFIG")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}
	defaultDB := os.Getenv("HOSTMAINT_DB_URL")
	if defaultDB == "" {
		defaultDB = "memory:"
	}
	cmd.PersistentFlags().StringP("config", "c", defaultConfig, "Path to hostmaint.yml (env HOSTMAINT_CONFIG)")
	cmd.PersistentFlags().String("db-url", defaultDB, "Run history database URL (env HOSTMAINT_DB_URL) (memory: | sqlite:/path/to.db | postgres://)")
	cmd.PersistentFlags().String("log-format", "", "Log format (human|text|json) (env HOSTMAINT_LOG_FORMAT) (default human on a terminal, text otherwise)")
	cmd.PersistentFlags().String("log-level", "INFO", "Log level (DEBUG|INFO|WARN|ERROR)")
	cmd.PersistentFlags().Bool("dry-run", false, "Log mutating commands without executing them (overrides server.dryRun)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("HOSTMAINT_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		if format == "" {
			format = defaultLogFormat(c.ErrOrStderr())
		}
		levelStr, _ := c.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		l, err := logging.NewWithWriter(format, level, c.ErrOrStderr())
		if err != nil {
			return err
		}
		l = l.With("runId", ulid.Make().String())
		ctx := logging.WithLogger(c.Context(), l)
		c.SetContext(ctx)
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdConfig())
	cmd.AddCommand(newCmdLocRem())
	cmd.AddCommand(newCmdTerminate())
	cmd.AddCommand(newCmdDNSFix())
	cmd.AddCommand(newCmdMailUsage())
	cmd.AddCommand(newCmdResolving())
	cmd.AddCommand(newCmdReport())
	return cmd
}

// defaultLogFormat keeps timestamps when output is not a terminal, e.g. under cron.
func defaultLogFormat(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "human"
	}
	return "text"
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
