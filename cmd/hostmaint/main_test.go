package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hostmaint/hostmaint/adapters/store/rdb"
	"github.com/hostmaint/hostmaint/domain/model"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetContext(context.Background())
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "hostmaint version ") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostmaint.yml")
	content := `
server:
  hostname: web1.example.net
  nsIPRanges: [178.218.172.160/27]
terminate:
  periodMoved: 14
  owners: [root]
dnsfix:
  spfInclude: include:spf.example.net
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, _, err := execute(t, "--config", path, "--dry-run", "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{
		"hostname=web1.example.net",
		"dry_run=true",
		"ns_ranges=178.218.172.160/27",
		"period_moved=14 period_expired=60 owners=root",
		"spf_include=include:spf.example.net",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if err := os.WriteFile(path, []byte("server:\n  nsIPRanges: [bogus]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := execute(t, "--config", path, "config"); err == nil || !strings.Contains(err.Error(), "nsIPRanges") {
		t.Errorf("invalid config err = %v", err)
	}
}

func TestReportCommands(t *testing.T) {
	dbURL := "sqlite:" + filepath.Join(t.TempDir(), "runs.db")
	db, err := rdb.OpenFromURL(dbURL)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := rdb.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	start := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	run := &model.Run{
		ID:         "01HXRUN0000000000000000000",
		Task:       "terminate",
		Host:       "web1",
		StartedAt:  start,
		FinishedAt: start.Add(2 * time.Second),
		Entries:    []model.ReportEntry{{Category: model.CategorySkip, Subject: "alice", Detail: "suspended 3 days"}},
	}
	if err := rdb.NewRunRepository(db).Save(context.Background(), run); err != nil {
		t.Fatalf("save: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	out, _, err := execute(t, "--db-url", dbURL, "report", "list")
	if err != nil {
		t.Fatalf("report list: %v", err)
	}
	if !strings.Contains(out, run.ID) || !strings.Contains(out, "terminate") {
		t.Errorf("list output:\n%s", out)
	}

	out, _, err = execute(t, "--db-url", dbURL, "report", "show", run.ID)
	if err != nil {
		t.Fatalf("report show: %v", err)
	}
	if !strings.Contains(out, "terminate report for server web1") || !strings.Contains(out, "alice") {
		t.Errorf("show output:\n%s", out)
	}

	if _, _, err := execute(t, "--db-url", dbURL, "report", "show", "missing"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, _, err := execute(t, "--db-url", "mysql://x", "report", "list"); err == nil {
		t.Error("expected error for unsupported db scheme")
	}
}

func TestResolvingFlagsExclusive(t *testing.T) {
	_, _, err := execute(t, "resolving", "--owner", "res1", "--user", "bob")
	if err == nil || !strings.Contains(err.Error(), "cannot be specified together") {
		t.Errorf("err = %v", err)
	}
}

func TestWithCmdRunLogger(t *testing.T) {
	var buf bytes.Buffer
	root := newRootCmd()
	root.SetArgs([]string{"--log-format", "text", "version"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&buf)
	root.SetContext(context.Background())
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	vc, _, err := root.Find([]string{"version"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	_, cleanup := withCmdRunLogger(vc.Context(), "test.op", "web1")
	cleanup(nil)
	out := buf.String()
	for _, want := range []string{"CMD:test.op/S", "CMD:test.op/EOK", "resourceId=web1", "runId="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestDefaultLogFormat(t *testing.T) {
	if got := defaultLogFormat(&bytes.Buffer{}); got != "text" {
		t.Errorf("defaultLogFormat(buffer) = %q, want text", got)
	}
}
