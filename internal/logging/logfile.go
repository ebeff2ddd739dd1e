package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const logFilePrefix = "hostmaint-"

// LogConfig holds configuration for report log output.
type LogConfig struct {
	Output        string // Path, "-" for stderr, "none" to disable, empty for auto-generated
	Dir           string // Log directory
	RetentionDays int    // Days to retain log files (0 keeps everything)
}

// LogFile manages a report log file lifecycle.
type LogFile struct {
	Path   string   // Full path to the log file (empty if output is stderr or disabled)
	file   *os.File // Opened file handle (nil if stderr or disabled)
	writer io.Writer
}

// NewLogFile opens the log destination for one task run.
//
// Output behavior:
//   - empty: hostmaint-<task>-YYYYMMDD-HHMMSS-sss.log in Dir
//   - "-": os.Stderr
//   - "none": io.Discard
//   - path: absolute, or relative to Dir
func NewLogFile(cfg *LogConfig, task string) (*LogFile, error) {
	lf := &LogFile{}

	switch strings.ToLower(cfg.Output) {
	case "none":
		lf.writer = io.Discard
		return lf, nil
	case "-":
		lf.writer = os.Stderr
		return lf, nil
	case "":
		lf.Path = filepath.Join(cfg.Dir, GenerateLogFilename(task, time.Now().UTC()))
	default:
		if filepath.IsAbs(cfg.Output) {
			lf.Path = cfg.Output
		} else {
			lf.Path = filepath.Join(cfg.Dir, cfg.Output)
		}
	}

	dir := filepath.Dir(lf.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", dir, err)
	}

	// Report logs are rewritten per run, matching the one-report-per-file layout.
	f, err := os.OpenFile(lf.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %q: %w", lf.Path, err)
	}
	lf.file = f
	lf.writer = f
	return lf, nil
}

// Writer returns the io.Writer for log output.
func (lf *LogFile) Writer() io.Writer {
	return lf.writer
}

// Close closes the log file if it was opened.
func (lf *LogFile) Close() error {
	if lf.file != nil {
		return lf.file.Close()
	}
	return nil
}

// GenerateLogFilename returns hostmaint-<task>-YYYYMMDD-HHMMSS-sss.log where
// sss is milliseconds.
func GenerateLogFilename(task string, t time.Time) string {
	return fmt.Sprintf("%s%s-%s-%03d.log",
		logFilePrefix,
		task,
		t.Format("20060102-150405"),
		t.Nanosecond()/1_000_000)
}

// CleanupOldLogFiles removes hostmaint-*.log files older than retentionDays from dir.
func CleanupOldLogFiles(dir string, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading log directory %q: %w", dir, err)
	}

	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, logFilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
	return nil
}
