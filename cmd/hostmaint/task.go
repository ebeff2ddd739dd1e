package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostmaint/hostmaint/config/hostmaintcfg"
	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/logging"
	"github.com/hostmaint/hostmaint/usecase/report"
)

// taskTimeout bounds a whole maintenance run.
const taskTimeout = 6 * time.Hour

// taskFunc executes one maintenance task. It returns the finished run even
// when err is non-nil so the failure is still reported.
type taskFunc func(ctx context.Context, cfg *hostmaintcfg.Root) (*model.Run, error)

// runTask wraps a task with span logging, report log file, mail dispatch and
// run history.
func runTask(cmd *cobra.Command, task string, fn taskFunc) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	reports, err := buildReportUseCase(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), taskTimeout)
	defer cancel()
	ctx, cleanup := withCmdRunLogger(ctx, task, cfg.Server.Hostname)
	defer func() { cleanup(err) }()
	logger := logging.FromContext(ctx)
	if cfg.Server.DryRun {
		logger.Info(ctx, "dry-run mode, mutating commands are not executed", "dry_run", true)
	}

	logCfg := &logging.LogConfig{Output: cfg.Server.LogOutput, Dir: cfg.Server.LogDir, RetentionDays: cfg.Server.LogRetentionDays}
	lf, err := logging.NewLogFile(logCfg, task)
	if err != nil {
		return err
	}
	defer lf.Close()
	if lf.Path != "" {
		logger.Info(ctx, "report log", "path", lf.Path)
	}

	run, taskErr := fn(ctx, cfg)
	var pubErr error
	if run != nil {
		out, err := reports.Publish(ctx, &report.PublishInput{
			Run:      run,
			Log:      lf.Writer(),
			SendMail: cfg.Server.SendReportMail,
			MailFrom: cfg.SMTP.From,
			MailTo:   cfg.Server.ReportMail,
		})
		pubErr = err
		if out != nil {
			fmt.Fprint(cmd.OutOrStdout(), out.Text)
			logger.Info(ctx, "run published", "run_id", run.ID, "mailed", out.Mailed, "saved", out.Saved)
		}
	}
	if err := logging.CleanupOldLogFiles(cfg.Server.LogDir, cfg.Server.LogRetentionDays); err != nil {
		logger.Warn(ctx, "log cleanup failed", "error", err)
	}
	return errors.Join(taskErr, pubErr)
}
