package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"audio-workflow/internal/runlog"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Workflow filters entries by workflow name.
	Workflow string

	// Status filters entries by final status (success or failed).
	Status string
}

// HistoryResult contains the outcome of a history operation.
type HistoryResult struct {
	// Entries are the filtered run history entries.
	Entries []runlog.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// History reads and filters the run history.
//
// A missing history file is not an error; the result simply carries no
// entries.
func History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	entries, err := runlog.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading run history: %w", err)
	}

	result := &HistoryResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	// Apply filters.
	filtered := entries

	if opts.Workflow != "" {
		filtered = filterByWorkflow(filtered, opts.Workflow)
	}

	if opts.Status != "" {
		filtered = filterByStatus(filtered, opts.Status)
	}

	// Apply ordering.
	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// Apply limit.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// filterByWorkflow filters entries by workflow name (case-insensitive).
func filterByWorkflow(entries []runlog.Entry, workflow string) []runlog.Entry {
	var result []runlog.Entry
	for _, e := range entries {
		if strings.EqualFold(e.Workflow, workflow) {
			result = append(result, e)
		}
	}
	return result
}

// filterByStatus filters entries by final status (case-insensitive).
func filterByStatus(entries []runlog.Entry, status string) []runlog.Entry {
	var result []runlog.Entry
	for _, e := range entries {
		if strings.EqualFold(e.Status, status) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDateTime formats a run timestamp as YYYY-MM-DD HH:MM:SS.
func FormatDateTime(ts string) string {
	t, err := time.Parse("2006-01-02T15:04:05.000000Z", ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	if err != nil {
		if len(ts) >= 19 {
			return strings.Replace(ts[:19], "T", " ", 1)
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDuration formats a run duration in milliseconds for display.
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Second {
		return d.String()
	}
	return d.Round(time.Second).String()
}
