package tools

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Result captures one external command invocation.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner abstracts external process execution so the sequencer can be
// tested without spawning real processes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner executes commands via os/exec. Child processes inherit the
// parent environment; stdout and stderr are captured in full.
type ExecRunner struct {
	// Dir, when set, is the working directory for child processes.
	Dir string

	// TempDir, when set, is exported as TMPDIR so tools place their
	// scratch files under the configured temp directory.
	TempDir string

	// Tee mirrors child stdout and stderr to the terminal while still
	// capturing them, so long-running tools stay visible in verbose mode.
	Tee bool
}

// Run executes one command and captures stdout, stderr, and the exit code.
// A start failure or cancellation yields exit code -1.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	if r.TempDir != "" {
		cmd.Env = append(os.Environ(), "TMPDIR="+r.TempDir)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if r.Tee {
		cmd.Stdout = io.MultiWriter(&stdout, os.Stdout)
		cmd.Stderr = io.MultiWriter(&stderr, os.Stderr)
	}

	err := cmd.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: 0,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}

	return result, nil
}
