package workflows

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func allToolsFound(tool string) (string, error) {
	return "/usr/local/bin/" + tool, nil
}

func findCheck(t *testing.T, result *DoctorResult, name string) CheckResult {
	t.Helper()
	for _, check := range result.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q not found in %+v", name, result.Checks)
	return CheckResult{}
}

func TestDoctor_AllChecksPass(t *testing.T) {
	setupRunEnvironment(t)

	result, err := Doctor(context.Background(), DoctorOptions{LookPath: allToolsFound})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Checks) != 7 {
		t.Errorf("expected 7 checks, got %d", len(result.Checks))
	}
	if result.Summary.Errors != 0 || result.Summary.Warnings != 0 {
		t.Errorf("expected a clean bill of health, got %+v", result.Summary)
	}
	if result.Summary.Passed != len(result.Checks) {
		t.Errorf("expected all checks to pass, got %+v", result.Summary)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %v", result.Suggestions)
	}
}

func TestDoctor_MissingTool(t *testing.T) {
	setupRunEnvironment(t)

	lookPath := func(tool string) (string, error) {
		if tool == "deepcast" {
			return "", fmt.Errorf("executable file not found in $PATH")
		}
		return "/usr/local/bin/" + tool, nil
	}

	result, err := Doctor(context.Background(), DoctorOptions{LookPath: lookPath})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := findCheck(t, result, "Tool: deepcast")
	if check.Status != CheckError {
		t.Errorf("expected deepcast check to fail, got %v", check.Status)
	}
	if !strings.Contains(check.Suggestion, "Install deepcast") {
		t.Errorf("expected an install suggestion, got %q", check.Suggestion)
	}
	if result.Summary.Errors != 1 {
		t.Errorf("expected exactly 1 error, got %+v", result.Summary)
	}
}

func TestDoctor_MissingCredentials(t *testing.T) {
	setupRunEnvironment(t)
	t.Setenv("NOTION_API_KEY", "")

	result, err := Doctor(context.Background(), DoctorOptions{LookPath: allToolsFound})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	check := findCheck(t, result, "Credentials")
	if check.Status != CheckError {
		t.Errorf("expected credentials check to fail, got %v", check.Status)
	}
	if !strings.Contains(check.Message, "NOTION_API_KEY") {
		t.Errorf("expected the missing variable to be named, got %q", check.Message)
	}
}

func TestDoctor_BrokenConfigCascades(t *testing.T) {
	dir := setupRunEnvironment(t)
	if err := os.WriteFile(filepath.Join(dir, "audio-workflow.yaml"), []byte("workflows: ["), 0600); err != nil {
		t.Fatal(err)
	}

	result, err := Doctor(context.Background(), DoctorOptions{LookPath: allToolsFound})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	config := findCheck(t, result, "Configuration")
	if config.Status != CheckError {
		t.Errorf("expected configuration check to fail, got %v", config.Status)
	}

	// Checks that depend on the configuration report that they cannot run.
	for _, name := range []string{"Credentials", "Output directory", "Temp directory"} {
		check := findCheck(t, result, name)
		if check.Status != CheckError {
			t.Errorf("expected %s check to fail without a configuration, got %v", name, check.Status)
		}
		if !strings.Contains(check.Message, "configuration failed to load") {
			t.Errorf("expected %s to explain the cascade, got %q", name, check.Message)
		}
	}

	if result.Summary.Errors != 4 || result.Summary.Passed != 3 {
		t.Errorf("expected 4 errors and 3 passing tool checks, got %+v", result.Summary)
	}

	// The shared fix-the-config suggestion is deduplicated.
	if len(result.Suggestions) != 2 {
		t.Errorf("expected deduplicated suggestions, got %v", result.Suggestions)
	}
}

func TestDoctor_ExplicitConfigPath(t *testing.T) {
	dir := setupRunEnvironment(t)
	explicit := filepath.Join(dir, "elsewhere.yaml")
	writeTestFile(t, explicit, testConfig)

	result, err := Doctor(context.Background(), DoctorOptions{
		ConfigPath: explicit,
		LookPath:   allToolsFound,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	config := findCheck(t, result, "Configuration")
	if !strings.Contains(config.Message, "elsewhere.yaml") {
		t.Errorf("expected the explicit path in the message, got %q", config.Message)
	}
}

func TestCheckStatus_MarshalJSON(t *testing.T) {
	cases := map[CheckStatus]string{
		CheckPass:    `"pass"`,
		CheckWarning: `"warning"`,
		CheckError:   `"error"`,
	}
	for status, expected := range cases {
		data, err := status.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != expected {
			t.Errorf("expected %s, got %s", expected, data)
		}
	}
}
