package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hostmaint/hostmaint/domain/model"
)

const detailIndent = "             "

// Subject returns the mail subject of a run.
func Subject(run *model.Run) string {
	s := fmt.Sprintf("%s report for server %s", run.Task, run.Host)
	if run.Failed() {
		s = "ERROR: " + s
	}
	return s
}

// Render formats a run as the plain-text report. Entries are grouped by
// category in order of first appearance.
func Render(run *model.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Subject(run))
	fmt.Fprintf(&b, "Run: %s\n", run.ID)
	fmt.Fprintf(&b, "Started: %s\n", run.StartedAt.Format(time.RFC3339))
	if run.DryRun {
		b.WriteString("DRY RUN: no changes were applied\n")
	}
	if run.Failed() {
		fmt.Fprintf(&b, "\nERROR: %s\n", run.Error)
	}

	var order []model.Category
	groups := map[model.Category][]model.ReportEntry{}
	for _, e := range run.Entries {
		if _, ok := groups[e.Category]; !ok {
			order = append(order, e.Category)
		}
		groups[e.Category] = append(groups[e.Category], e)
	}
	for _, c := range order {
		fmt.Fprintf(&b, "\n%s (%d)\n", c, len(groups[c]))
		for _, e := range groups[c] {
			fmt.Fprintf(&b, "  %s\n", e.Subject)
			if e.Detail == "" {
				continue
			}
			for _, line := range strings.Split(strings.TrimRight(e.Detail, "\n"), "\n") {
				fmt.Fprintf(&b, "%s%s\n", detailIndent, line)
			}
		}
	}

	if !run.FinishedAt.IsZero() {
		fmt.Fprintf(&b, "\nExecution took: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	return b.String()
}
