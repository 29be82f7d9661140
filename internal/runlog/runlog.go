package runlog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"audio-workflow/internal/configs"
)

// StepRecord captures the outcome of one executed pipeline step.
type StepRecord struct {
	Step     string `json:"step"`
	ExitCode int    `json:"exit_code"`
	Status   string `json:"status"`
}

// Entry represents a single run history entry.
type Entry struct {
	ID        string `json:"id"`       // UUID of the run.
	Timestamp string `json:"ts"`       // RFC3339 with microseconds.
	User      string `json:"user"`     // Username performing the run.
	Input     string `json:"input"`    // Audio file path.
	Workflow  string `json:"workflow"` // Selected workflow name.
	Database  string `json:"database"` // Selected database name.

	Steps      []StepRecord `json:"steps,omitempty"`     // Per-step outcomes.
	Artifacts  []string     `json:"artifacts,omitempty"` // Files the run produced.
	Status     string       `json:"status"`              // success or failed.
	Error      string       `json:"error,omitempty"`     // Failure message, if any.
	DurationMS int64        `json:"duration_ms,omitempty"`
}

// NewEntry starts a history entry for one invocation with the run id,
// timestamp, and user pre-populated.
func NewEntry(input, workflow, database string) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000000Z"),
		Input:     input,
		Workflow:  workflow,
		Database:  database,
	}
	if configs.UserWorkflowSettings != nil {
		entry.User = configs.UserWorkflowSettings.Username
	}
	return entry
}

// Log appends an entry to the run history.
// If logging fails, the run continues without error. A run should not
// fail just because history logging failed.
func Log(entry Entry) {
	// Set timestamp if not already set.
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := LogPath()
	if logPath == "" {
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return
	}

	// Open file for appending (create if doesn't exist).
	// #nosec G306 -- run history holds no secrets.
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	// Write entry with newline.
	_, _ = f.Write(append(data, '\n'))
}

// LogPath returns the path to the run history file.
// Returns empty string if the user data directory is unknown.
func LogPath() string {
	if configs.UserWorkflowSettings == nil || configs.UserWorkflowSettings.DataPath == "" {
		return ""
	}
	return filepath.Join(configs.UserWorkflowSettings.DataPath, "history.jsonl")
}

// ReadEntries reads all entries from the run history.
// Returns an empty slice if the history doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := LogPath()
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into history entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
