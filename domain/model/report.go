package model

import "time"

// Category classifies a report entry.
type Category string

const (
	CategoryOK         Category = "OK"
	CategoryLocal      Category = "LOCAL"
	CategoryRemote     Category = "REMOTE"
	CategoryCheck      Category = "CHECK"
	CategoryConflict   Category = "CONFLICT"
	CategoryIgnored    Category = "IGNORED"
	CategoryTerminate  Category = "TERMINATE"
	CategoryKeepDNS    Category = "TERMINATE_KEEP_DNS"
	CategorySkip       Category = "SKIP"
	CategoryBandwidth  Category = "BANDWIDTH"
	CategoryZoneEdit   Category = "ZONE_EDIT"
	CategoryZoneOK     Category = "ZONE_OK"
	CategoryZoneSkip   Category = "ZONE_SKIP"
	CategoryZoneDump   Category = "ZONE_DUMP_ERROR"
	CategoryZoneVerify Category = "ZONE_VERIFY_ERROR"
	CategoryTransport  Category = "TRANSPORT_ERROR"
	CategoryMailUsage  Category = "MAIL_USAGE"
	CategoryResolving  Category = "RESOLVING"
	CategoryError      Category = "ERROR"
)

// ReportEntry is one line item of a run report.
type ReportEntry struct {
	Category Category `json:"category"`
	Subject  string   `json:"subject"`
	Detail   string   `json:"detail,omitempty"`
}

// Run is one execution of a maintenance task and everything it decided.
type Run struct {
	ID         string        `json:"id"`
	Task       string        `json:"task"`
	Host       string        `json:"host"`
	DryRun     bool          `json:"dry_run"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Error      string        `json:"error,omitempty"`
	Entries    []ReportEntry `json:"entries"`
}

// Failed reports whether the run aborted.
func (r *Run) Failed() bool { return r.Error != "" }

// Count returns the number of entries of category c.
func (r *Run) Count(c Category) int {
	n := 0
	for _, e := range r.Entries {
		if e.Category == c {
			n++
		}
	}
	return n
}

// RunFilter narrows a run history listing. Zero values match everything.
type RunFilter struct {
	Task  string
	Limit int
}
