package workflows

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"audio-workflow/internal/configs"
	"audio-workflow/internal/pipeline"
)

// CheckStatus represents the result status of a health check.
type CheckStatus int

const (
	// CheckPass means the check passed.
	CheckPass CheckStatus = iota
	// CheckWarning means the check found a non-critical issue.
	CheckWarning
	// CheckError means the check found a critical issue.
	CheckError
)

// String returns a string representation of CheckStatus.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarning:
		return "warning"
	case CheckError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON implements json.Marshaler for CheckStatus.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CheckResult holds the result of a single health check.
type CheckResult struct {
	Name       string      `json:"name"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// DoctorResult holds the complete result of the doctor workflow.
type DoctorResult struct {
	Checks      []CheckResult `json:"checks"`
	Summary     DoctorSummary `json:"summary"`
	Suggestions []string      `json:"suggestions,omitempty"`
}

// DoctorSummary holds counts of checks by status.
type DoctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// DoctorOptions configures the doctor workflow.
type DoctorOptions struct {
	// ConfigPath short-circuits configuration discovery when set.
	ConfigPath string

	// LookPath substitutes PATH resolution for tests. Nil uses exec.LookPath.
	LookPath func(string) (string, error)
}

// Doctor runs environment health checks for the pipeline.
//
// The doctor workflow checks:
//   - Configuration discoverability and validity
//   - The transcribe, deepcast, and notion-upload tools on PATH
//   - Required API credentials in the environment
//   - Output and temp directory writability
func Doctor(ctx context.Context, opts DoctorOptions) (*DoctorResult, error) {
	lookPath := opts.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	cfg, configResult := checkConfiguration(opts.ConfigPath)

	results := []CheckResult{configResult}
	for _, step := range pipeline.AllSteps() {
		results = append(results, checkTool(lookPath, step.String()))
	}
	results = append(results, checkCredentials(cfg))

	outputDir, tempDir := "", ""
	if cfg != nil {
		outputDir = cfg.Defaults.OutputDir
		tempDir = cfg.Defaults.TempDir
	}
	results = append(results,
		checkDirectory("Output directory", outputDir),
		checkDirectory("Temp directory", tempDir),
	)

	// Calculate summary.
	summary := calculateDoctorSummary(results)

	// Collect suggestions (deduplicated).
	var suggestions []string
	seen := make(map[string]bool)
	for _, result := range results {
		if result.Suggestion != "" && result.Status != CheckPass && !seen[result.Suggestion] {
			suggestions = append(suggestions, result.Suggestion)
			seen[result.Suggestion] = true
		}
	}

	return &DoctorResult{
		Checks:      results,
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}

// checkConfiguration checks that a configuration resolves and parses.
func checkConfiguration(configPath string) (*configs.Config, CheckResult) {
	cfg, err := configs.Resolve(configPath)
	if err != nil {
		return nil, CheckResult{
			Name:       "Configuration",
			Status:     CheckError,
			Message:    fmt.Sprintf("Failed to load configuration: %v", err),
			Suggestion: "Check the configuration file for syntax errors",
		}
	}

	return cfg, CheckResult{
		Name:    "Configuration",
		Status:  CheckPass,
		Message: fmt.Sprintf("Configuration loaded from %s", cfg.Source),
	}
}

// checkTool checks that an external tool resolves on PATH.
func checkTool(lookPath func(string) (string, error), tool string) CheckResult {
	path, err := lookPath(tool)
	if err != nil {
		return CheckResult{
			Name:       fmt.Sprintf("Tool: %s", tool),
			Status:     CheckError,
			Message:    fmt.Sprintf("%s not found on PATH", tool),
			Suggestion: fmt.Sprintf("Install %s and make sure it is on your PATH", tool),
		}
	}

	return CheckResult{
		Name:    fmt.Sprintf("Tool: %s", tool),
		Status:  CheckPass,
		Message: fmt.Sprintf("%s found at %s", tool, path),
	}
}

// checkCredentials checks that every API key any step could need is set.
func checkCredentials(cfg *configs.Config) CheckResult {
	if cfg == nil {
		return CheckResult{
			Name:       "Credentials",
			Status:     CheckError,
			Message:    "Cannot check credentials: configuration failed to load",
			Suggestion: "Fix the configuration errors first",
		}
	}

	missing := cfg.MissingCredentials(pipeline.AllSteps())
	if len(missing) > 0 {
		return CheckResult{
			Name:       "Credentials",
			Status:     CheckError,
			Message:    fmt.Sprintf("Missing environment variables: %s", strings.Join(missing, ", ")),
			Suggestion: "Export the missing API keys in your environment",
		}
	}

	return CheckResult{
		Name:    "Credentials",
		Status:  CheckPass,
		Message: "OPENAI_API_KEY and NOTION_API_KEY are set",
	}
}

// checkDirectory checks that a configured directory exists and is writable
// by creating and removing a probe file.
func checkDirectory(label, dir string) CheckResult {
	if dir == "" {
		return CheckResult{
			Name:       label,
			Status:     CheckError,
			Message:    fmt.Sprintf("Cannot check %s: configuration failed to load", strings.ToLower(label)),
			Suggestion: "Fix the configuration errors first",
		}
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CheckResult{
			Name:       label,
			Status:     CheckError,
			Message:    fmt.Sprintf("Cannot create %s: %v", dir, err),
			Suggestion: fmt.Sprintf("Check permissions on %s", dir),
		}
	}

	probe, err := os.CreateTemp(dir, ".audio-workflow-doctor-*")
	if err != nil {
		return CheckResult{
			Name:       label,
			Status:     CheckError,
			Message:    fmt.Sprintf("%s is not writable: %v", dir, err),
			Suggestion: fmt.Sprintf("Check permissions on %s", dir),
		}
	}
	probePath := probe.Name()
	probe.Close()
	_ = os.Remove(probePath)

	return CheckResult{
		Name:    label,
		Status:  CheckPass,
		Message: fmt.Sprintf("%s is writable", dir),
	}
}

// calculateDoctorSummary calculates the counts of checks by status.
func calculateDoctorSummary(results []CheckResult) DoctorSummary {
	var summary DoctorSummary
	for _, result := range results {
		switch result.Status {
		case CheckPass:
			summary.Passed++
		case CheckWarning:
			summary.Warnings++
		case CheckError:
			summary.Errors++
		}
	}
	return summary
}
