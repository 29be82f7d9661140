package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
)

func TestDoctorCommandAllPass(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)

	var exitCodes []int
	SetDoctorExitFunc(func(code int) { exitCodes = append(exitCodes, code) })
	SetDoctorLookPath(func(tool string) (string, error) { return "/usr/local/bin/" + tool, nil })

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--doctor"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	if len(exitCodes) != 0 {
		t.Errorf("expected no exit call when every check passes, got %v", exitCodes)
	}
	if !strings.Contains(output, "Summary: 7 passed") {
		t.Errorf("expected a clean summary, got:\n%s", output)
	}
}

func TestDoctorCommandReportsErrors(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)

	var exitCodes []int
	SetDoctorExitFunc(func(code int) { exitCodes = append(exitCodes, code) })
	SetDoctorLookPath(func(tool string) (string, error) {
		return "", fmt.Errorf("executable file not found in $PATH")
	})

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--doctor"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	if len(exitCodes) == 0 || exitCodes[0] != 2 {
		t.Errorf("expected exit code 2 for errors, got %v", exitCodes)
	}
	for _, want := range []string{"not found on PATH", "error(s)", "Suggestions:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestDoctorCommandJSON(t *testing.T) {
	dir := setupTestEnvironment(t)
	writeTestConfig(t, filepath.Join(dir, "audio-workflow.yaml"), cmdTestConfig)

	SetDoctorExitFunc(func(int) {})
	SetDoctorLookPath(func(tool string) (string, error) { return "/usr/local/bin/" + tool, nil })

	output, err := captureOutput(func() error {
		return createTestCLI([]string{"--doctor", "--json"}, nil, nil, false, false).Execute()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\noutput: %s", err, output)
	}

	var result struct {
		Checks []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"checks"`
		Summary struct {
			Passed int `json:"passed"`
		} `json:"summary"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("expected valid JSON, got error %v:\n%s", err, output)
	}
	if len(result.Checks) != 7 || result.Summary.Passed != 7 {
		t.Errorf("expected 7 passing checks in JSON output, got %+v", result)
	}
	if result.Checks[0].Status != "pass" {
		t.Errorf("expected statuses serialized as strings, got %q", result.Checks[0].Status)
	}
}
