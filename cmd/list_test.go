package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"audio-workflow/internal/configs"
	werrors "audio-workflow/internal/errors"
)

const cmdTestConfig = `
databases:
  meetings: db-meetings-1
  podcast: db-podcast-2

defaults:
  database: meetings
  workflow: quick_notes
  output_dir: "."

workflows:
  quick_notes:
    description: Fast transcript upload
    steps: [transcribe, notion-upload]
  full_analysis:
    description: Full breakdown
    steps: [transcribe, deepcast, notion-upload]
`

// markerConfig builds a minimal config whose only database is the marker,
// so tests can tell which file the resolver picked.
func markerConfig(marker string) string {
	return fmt.Sprintf(`
databases:
  %s: id-%s
workflows:
  quick_notes:
    steps: [transcribe, notion-upload]
`, marker, marker)
}

func TestListWorkflowsCommand(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--list-workflows"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	for _, want := range []string{"quick_notes", "full_analysis", "Fast transcript upload", "transcribe → notion-upload"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestListDatabasesCommand(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--list-databases"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	for _, want := range []string{"meetings", "db-meetings-1", "podcast", "db-podcast-2"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestListFlagsNeverStartTools(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)
	runner := &recordingRunner{}
	SetWorkflowRunner(runner)

	// Even with an audio file on the command line, listing must not run
	// any external tool.
	output, err := captureOutput(func() error {
		return createTestCLI([]string{"meeting.wav", "--list-workflows"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}
	if len(runner.calls) != 0 {
		t.Errorf("listing must never start a subprocess, got calls: %v", runner.calls)
	}
}

func TestListWorkflowsJSON(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--list-workflows", "--json"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	var views []workflowView
	if err := json.Unmarshal([]byte(output), &views); err != nil {
		t.Fatalf("expected valid JSON, got error %v:\n%s", err, output)
	}
	if len(views) != 2 {
		t.Errorf("expected 2 workflows in JSON output, got %d", len(views))
	}
	if views[0].Name != "full_analysis" || len(views[0].Steps) != 3 {
		t.Errorf("unexpected first workflow view: %+v", views[0])
	}
}

func TestListExplicitConfigAlwaysWins(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)
	explicit := filepath.Join(dir, "elsewhere.yaml")
	writeTestConfig(t, explicit, markerConfig("archive"))

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--list-databases", "--config", explicit}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	if !strings.Contains(output, "archive") {
		t.Errorf("expected the explicit config's database, got:\n%s", output)
	}
	if strings.Contains(output, "meetings") {
		t.Errorf("the working directory config must be ignored when --config is passed, got:\n%s", output)
	}
}

func TestListPriorityOrder(t *testing.T) {
	dir := setupTestEnvironment(t)

	// Sources present at the generic working-directory slot, the home
	// dotfile slot, and the built-in fallback: the first must win.
	writeTestConfig(t, filepath.Join(dir, "config.yaml"), markerConfig("cwd-generic"))
	writeTestConfig(t, configs.UserWorkflowSettings.HomeConfigPath, markerConfig("home-dotfile"))

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--list-databases"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	if !strings.Contains(output, "cwd-generic") {
		t.Errorf("expected the working directory config to win, got:\n%s", output)
	}
	if strings.Contains(output, "home-dotfile") {
		t.Errorf("lower-priority sources must be ignored, got:\n%s", output)
	}
}

func TestListDatabasesEmptyShowsHint(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), `
workflows:
  quick_notes:
    steps: [transcribe, notion-upload]
`)

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--list-databases"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	if !strings.Contains(output, "No databases configured.") {
		t.Errorf("expected the empty-database hint, got:\n%s", output)
	}
}

func TestListBrokenConfigFails(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), "workflows: [")

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--list-workflows"}, nil, nil, false, false).Execute()
	})
	if !errors.Is(err, werrors.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
	if !strings.Contains(output, "✗") {
		t.Errorf("expected a failure marker in the output, got:\n%s", output)
	}
}
