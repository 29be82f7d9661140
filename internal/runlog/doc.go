// Package runlog records a history of pipeline runs.
//
// Every invocation that reaches the pipeline — successful or not — is
// recorded so users can answer "what did I run against which database,
// and what came out of it".
//
// # Log Format
//
// The history is stored as JSON Lines (one JSON object per line) under
// the user data directory:
//
//	$XDG_DATA_HOME/audio-workflow/history.jsonl
//
// falling back to ~/.local/share when XDG_DATA_HOME is unset. Each entry
// contains:
//   - Run id (UUID) and timestamp (RFC3339 with microseconds, UTC)
//   - Username, input file, workflow, and database
//   - Per-step exit codes and statuses
//   - Produced artifact paths and overall status
//
// # Usage
//
// Start an entry with identity fields pre-populated:
//
//	entry := runlog.NewEntry(audioFile, workflow, database)
//	entry.Status = "success"
//	runlog.Log(entry)
//
// # Failure Handling
//
// History logging is best-effort. If logging fails (permissions, disk
// full, etc.), the run continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the history for display. Malformed entries
// are silently skipped to handle partial writes.
package runlog
