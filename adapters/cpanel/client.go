// Package cpanel implements the account management port over the WHM and
// cPanel command line APIs (whmapi1, uapi, cpapi2). Every call runs one
// command whose YAML output is decoded with gopkg.in/yaml.v3.
package cpanel

import (
	"context"
	"fmt"
	"time"

	"github.com/hostmaint/hostmaint/domain/model"
	"github.com/hostmaint/hostmaint/internal/logging"
)

// DefaultAllowedCommands are the executables the client may run.
var DefaultAllowedCommands = []string{
	"whmapi1", "whmapi2", "cpapi2", "uapi",
	"/scripts/generate_maildirsize", "lve-read-snapshot", "hostname",
}

// Options configures a Client.
type Options struct {
	Runner          Runner
	AllowedCommands []string
	DryRun          bool
	// Now is the clock used for suspension ages. Defaults to time.Now.
	Now func() time.Time
}

// Client is the command line implementation of model.AccountPort.
type Client struct {
	runner  Runner
	allowed map[string]struct{}
	dryRun  bool
	now     func() time.Time
}

var _ model.AccountPort = (*Client)(nil)

// New creates a client. A nil Runner runs commands locally without timeout.
func New(opts Options) *Client {
	c := &Client{runner: opts.Runner, dryRun: opts.DryRun, now: opts.Now, allowed: map[string]struct{}{}}
	if c.runner == nil {
		c.runner = ExecRunner{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	allowed := opts.AllowedCommands
	if len(allowed) == 0 {
		allowed = DefaultAllowedCommands
	}
	for _, a := range allowed {
		c.allowed[a] = struct{}{}
	}
	return c
}

// DryRun reports whether mutations are suppressed.
func (c *Client) DryRun() bool { return c.dryRun }

func (c *Client) permitted(name string) bool {
	_, ok := c.allowed[name]
	return ok
}

// exec runs a command that only reads state.
func (c *Client) exec(ctx context.Context, name string, args ...string) ([]byte, error) {
	logger := logging.FromContext(ctx)
	line := commandLine(name, args)
	if !c.permitted(name) {
		logger.Warn(ctx, "command skipped", "command", line)
		return nil, &model.CommandError{Command: line, Err: model.ErrCommandNotAllowed}
	}
	logger.Info(ctx, "executing", "command", line)
	out, err := c.runner.Run(ctx, name, args...)
	if err != nil {
		logger.Warn(ctx, "command failed", "command", line, "error", err)
		return out, err
	}
	return out, nil
}

// mutate runs a command that changes state. In dry-run mode the command is
// logged and not executed; ran is false and out is nil.
func (c *Client) mutate(ctx context.Context, name string, args ...string) (out []byte, ran bool, err error) {
	if c.dryRun {
		line := commandLine(name, args)
		if !c.permitted(name) {
			return nil, false, &model.CommandError{Command: line, Err: model.ErrCommandNotAllowed}
		}
		logging.FromContext(ctx).Info(ctx, "command not executed", "command", line, "dry_run", true)
		return nil, false, nil
	}
	out, err = c.exec(ctx, name, args...)
	return out, true, err
}

func param(key string, value any) string {
	return fmt.Sprintf("%s=%v", key, value)
}
