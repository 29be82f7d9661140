package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	werrors "audio-workflow/internal/errors"
	"audio-workflow/internal/tools"
)

type recordedCall struct {
	Name string
	Args []string
}

// recordingRunner records tool invocations and delegates behavior to a
// scripted function, so command tests never spawn real processes.
type recordingRunner struct {
	calls []recordedCall
	run   func(ctx context.Context, name string, args []string) (tools.Result, error)
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) (tools.Result, error) {
	r.calls = append(r.calls, recordedCall{Name: name, Args: args})
	if r.run == nil {
		return tools.Result{}, nil
	}
	return r.run(ctx, name, args)
}

// writeRunFixture writes a config file and an input audio file into dir.
func writeRunFixture(t *testing.T, dir string) {
	t.Helper()
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)
	writeTestConfig(t, filepath.Join(dir, "team_standup.wav"), "fake audio")
}

// transcribingRunner scripts a successful quick_notes run: transcribe
// produces its transcript, notion-upload succeeds.
func transcribingRunner(t *testing.T, dir string) *recordingRunner {
	t.Helper()
	return &recordingRunner{
		run: func(_ context.Context, name string, _ []string) (tools.Result, error) {
			if name == "transcribe" {
				writeTestConfig(t, filepath.Join(dir, "team_standup.transcript"), "transcript")
			}
			return tools.Result{}, nil
		},
	}
}

func TestRunCommandSuccess(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeRunFixture(t, dir)
	runner := transcribingRunner(t, dir)
	SetWorkflowRunner(runner)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"team_standup.wav"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	if len(runner.calls) != 2 || runner.calls[0].Name != "transcribe" || runner.calls[1].Name != "notion-upload" {
		t.Errorf("expected transcribe then notion-upload, got %+v", runner.calls)
	}
	for _, want := range []string{"✓", "quick_notes", "team standup"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestRunCommandStepFailure(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeRunFixture(t, dir)
	runner := &recordingRunner{
		run: func(_ context.Context, name string, _ []string) (tools.Result, error) {
			return tools.Result{ExitCode: 2, Stderr: "no audio stream"}, fmt.Errorf("exit status 2")
		},
	}
	SetWorkflowRunner(runner)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"team_standup.wav"}, nil, nil, false, false).Execute()
	})
	if err == nil {
		t.Fatal("expected an error from the failing step")
	}

	var stepErr *werrors.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %T", err)
	}
	if len(runner.calls) != 1 {
		t.Errorf("expected the run to stop after the first failure, got %+v", runner.calls)
	}
	if !strings.Contains(output, "✗") || !strings.Contains(output, "transcribe") {
		t.Errorf("expected a failure message naming the step, got:\n%s", output)
	}
}

func TestRunCommandCleansIntermediatesByDefault(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeRunFixture(t, dir)
	SetWorkflowRunner(transcribingRunner(t, dir))

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"team_standup.wav"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	if _, err := os.Stat(filepath.Join(dir, "team_standup.transcript")); !os.IsNotExist(err) {
		t.Error("expected the transcript to be removed after the run")
	}
	if _, err := os.Stat(filepath.Join(dir, "team_standup.notion-upload.log")); err != nil {
		t.Errorf("expected the upload log to remain: %v", err)
	}
}

func TestRunCommandKeepFilesRetainsTranscript(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeRunFixture(t, dir)
	SetWorkflowRunner(transcribingRunner(t, dir))

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"team_standup.wav", "--keep-files"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	if _, err := os.Stat(filepath.Join(dir, "team_standup.transcript")); err != nil {
		t.Errorf("expected the transcript to remain with --keep-files: %v", err)
	}
}

func TestRunCommandTitleFlag(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeRunFixture(t, dir)
	runner := transcribingRunner(t, dir)
	SetWorkflowRunner(runner)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"team_standup.wav", "--title", "Sprint Review"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	var uploadArgs []string
	for _, call := range runner.calls {
		if call.Name == "notion-upload" {
			uploadArgs = call.Args
		}
	}
	if !strings.Contains(strings.Join(uploadArgs, " "), "Sprint Review") {
		t.Errorf("expected the explicit title in upload args, got %v", uploadArgs)
	}
	if !strings.Contains(output, "Sprint Review") {
		t.Errorf("expected the explicit title in the output, got:\n%s", output)
	}
}

func TestRunCommandUnknownDatabaseStartsNothing(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeRunFixture(t, dir)
	runner := &recordingRunner{}
	SetWorkflowRunner(runner)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"team_standup.wav", "--database", "nonexistent"}, nil, nil, false, false).Execute()
	})
	if !errors.Is(err, werrors.ErrUnknownDatabase) {
		t.Fatalf("expected ErrUnknownDatabase, got %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("no subprocess may start for an unknown database, got %+v", runner.calls)
	}
	if !strings.Contains(output, "--list-databases") {
		t.Errorf("expected a hint pointing at --list-databases, got:\n%s", output)
	}
}
