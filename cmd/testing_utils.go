// This file provides common functions for setting up test environments,
// capturing output, and building CLI invocations for the cmd tests.

package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"audio-workflow/internal/configs"
	logger "audio-workflow/internal/logging"

	"github.com/spf13/cobra"
)

// setupTestEnvironment prepares an isolated working directory with user
// settings and credentials, resetting all command state. It returns the
// working directory.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()
	ResetGlobalState()
	t.Cleanup(ResetGlobalState)

	for _, key := range []string{
		"AUDIO_WORKFLOW_CONFIG",
		"WORKFLOW_OUTPUT_DIR",
		"WORKFLOW_TEMP_DIR",
		"WORKFLOW_LOG_LEVEL",
		"OPENAI_API_KEY",
		"NOTION_API_KEY",
		"OPENAI_MODEL",
		"OPENAI_TEMPERATURE",
		"NOTION_DATABASE_ID",
	} {
		t.Setenv(key, "")
	}

	// Override user settings to use temp directories.
	tempUserDir := t.TempDir()
	originalSettings := configs.UserWorkflowSettings
	configs.UserWorkflowSettings = &configs.UserSettings{
		UserConfigPath: filepath.Join(tempUserDir, "config", "audio-workflow", "config.yaml"),
		HomeConfigPath: filepath.Join(tempUserDir, ".audio-workflow.yaml"),
		DataPath:       filepath.Join(tempUserDir, "share", "audio-workflow"),
		Username:       "testuser",
	}
	t.Cleanup(func() {
		configs.UserWorkflowSettings = originalSettings
	})

	// Change to a temp working directory.
	dir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NOTION_API_KEY", "secret-test")

	return dir
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	// Save original stdout and stderr
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	// Create pipes to capture output
	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	// Replace stdout and stderr
	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	// Channel to collect output
	outputChan := make(chan string, 2)

	// Start goroutines to read from pipes
	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stdoutReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, err := io.Copy(&buf, stderrReader)
		if err != nil {
			log.Fatalf("Failed to run copy command: %s", err)
		}
		outputChan <- buf.String()
	}()

	// Execute the function
	err := fn()

	// Close writers to signal EOF
	stdoutWriter.Close()
	stderrWriter.Close()

	// Restore original stdout and stderr
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	// Collect output
	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// createTestCLI prepares the root command for a test invocation with the
// given arguments and flags.
func createTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	// Set global flags for the actual command implementations.
	verbose = verboseFlag
	debug = debugFlag

	// Initialize the logger with the test flags.
	Logger = logger.Logger{
		Verbose: verbose,
		Debug:   debug,
	}

	rootCmd := GetRootCmd()

	// Set output streams
	if stdout != nil {
		rootCmd.SetOut(stdout)
	}
	if stderr != nil {
		rootCmd.SetErr(stderr)
	}

	rootCmd.SetArgs(args)
	return rootCmd
}

// writeTestConfig writes a config file, creating parent directories.
func writeTestConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}
