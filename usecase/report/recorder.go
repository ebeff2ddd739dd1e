package report

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hostmaint/hostmaint/domain/model"
)

// Recorder accumulates the entries of one task run.
type Recorder struct {
	run *model.Run
	now func() time.Time
}

// NewRecorder starts a run with a fresh ULID.
func NewRecorder(task, host string, dryRun bool) *Recorder {
	return newRecorder(task, host, dryRun, time.Now)
}

func newRecorder(task, host string, dryRun bool, now func() time.Time) *Recorder {
	started := now()
	return &Recorder{
		run: &model.Run{
			ID:        ulid.MustNew(ulid.Timestamp(started), ulid.DefaultEntropy()).String(),
			Task:      task,
			Host:      host,
			DryRun:    dryRun,
			StartedAt: started,
		},
		now: now,
	}
}

// ID returns the run ID.
func (r *Recorder) ID() string { return r.run.ID }

// Add appends one entry.
func (r *Recorder) Add(c model.Category, subject, detail string) {
	r.run.Entries = append(r.run.Entries, model.ReportEntry{Category: c, Subject: subject, Detail: detail})
}

// Addf appends one entry with a formatted detail.
func (r *Recorder) Addf(c model.Category, subject, format string, args ...any) {
	r.Add(c, subject, fmt.Sprintf(format, args...))
}

// Fail marks the run as aborted by err.
func (r *Recorder) Fail(err error) {
	if err == nil {
		return
	}
	r.run.Error = err.Error()
}

// Finish stamps the end time and returns the run. The recorder must not be
// used afterwards.
func (r *Recorder) Finish() *model.Run {
	r.run.FinishedAt = r.now()
	return r.run
}
