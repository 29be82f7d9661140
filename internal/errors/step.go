package errors

import (
	"fmt"
	"strings"
)

// StepError reports the failure of one external-tool step. It carries the
// step name, the tool's exit code, and the stderr it produced so the CLI
// layer can show the user exactly what broke.
type StepError struct {
	Step     string
	ExitCode int
	Stderr   string
	Reason   string
	Err      error
}

// Error formats the failure for logs and terminal output.
func (e *StepError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("step %s failed", e.Step)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.ExitCode != 0 {
		msg += fmt.Sprintf(" (exit %d)", e.ExitCode)
	}
	if detail := strings.TrimSpace(e.Stderr); detail != "" {
		msg += ": " + detail
	}
	return msg
}

// Unwrap exposes the underlying error for errors.Is and errors.As.
func (e *StepError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
