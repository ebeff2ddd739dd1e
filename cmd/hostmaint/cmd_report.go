package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostmaint/hostmaint/adapters/httpapi"
	"github.com/hostmaint/hostmaint/internal/logging"
	"github.com/hostmaint/hostmaint/usecase/report"
)

func newCmdReport() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "report",
		Short:              "Query stored task runs",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return fmt.Errorf("invalid command") },
	}
	cmd.AddCommand(newCmdReportList(), newCmdReportShow(), newCmdReportServe())
	return cmd
}

func newCmdReportList() *cobra.Command {
	var task string
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildReportUseCase(cmd, nil)
			if err != nil {
				return err
			}
			out, err := uc.List(cmd.Context(), &report.ListInput{Task: task, Limit: limit})
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTASK\tHOST\tSTARTED\tDRY RUN\tENTRIES\tERROR")
			for _, r := range out.Runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%d\t%s\n",
					r.ID, r.Task, r.Host, r.StartedAt.Format(time.RFC3339), r.DryRun, len(r.Entries), r.Error)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&task, "task", "", "Only list runs of this task")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs (0 for all)")
	return cmd
}

func newCmdReportShow() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the report of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildReportUseCase(cmd, nil)
			if err != nil {
				return err
			}
			out, err := uc.Get(cmd.Context(), &report.GetInput{ID: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Render(out.Run))
			return nil
		},
	}
}

func newCmdReportServe() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored runs over a read-only HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildReportUseCase(cmd, nil)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			ctx, cleanup := withCmdRunLogger(ctx, "report.serve", addr)
			defer func() { cleanup(err) }()
			logger := logging.FromContext(ctx)

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewServer(uc, logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()
			logger.Info(ctx, "listening", "addr", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}
