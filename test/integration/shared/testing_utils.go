// Package shared contains testing utilities shared between integration tests.
// This file provides common functions for setting up test environments,
// capturing output, and installing fake workflow tools on PATH.
package shared

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"audio-workflow/cmd"
	"audio-workflow/internal/configs"
	logger "audio-workflow/internal/logging"

	"github.com/spf13/cobra"
)

// TestConfig is a working configuration shared by the integration tests.
const TestConfig = `
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
    deepcast_model: gpt-4o
`

// fakeToolScripts holds working stand-ins for the three workflow tools.
// The transcribe and deepcast scripts honor the output flags the sequencer
// passes, so a run against them produces real artifacts on disk.
var fakeToolScripts = map[string]string{
	"transcribe": `#!/bin/sh
input="$1"
shift
outdir="."
while [ "$#" -gt 0 ]; do
	case "$1" in
	--output-dir)
		outdir="$2"
		shift 2
		;;
	*)
		shift
		;;
	esac
done
name=$(basename "$input")
printf 'transcript of %s\n' "$name" >"$outdir/${name%.*}.transcript"
printf 'transcribed %s\n' "$name"
`,
	"deepcast": `#!/bin/sh
input="$1"
shift
outpath=""
while [ "$#" -gt 0 ]; do
	case "$1" in
	--output-path)
		outpath="$2"
		shift 2
		;;
	*)
		shift
		;;
	esac
done
printf '# Analysis of %s\n' "$input" >"$outpath"
printf 'analyzed %s\n' "$input"
`,
	"notion-upload": `#!/bin/sh
printf 'uploaded %s\n' "$1"
`,
}

// SetupTestEnvironment sets up the test environment with temporary directories.
func SetupTestEnvironment(t *testing.T, tempDir, tempUserDir, originalWd string, originalUserSettings *configs.UserSettings) {
	cmd.ResetGlobalState()

	// Change to temp directory
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	// Cleanup function to restore original state
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
		configs.UserWorkflowSettings = originalUserSettings
		cmd.ResetGlobalState()
	})

	// Override user settings to use temp directory
	configs.UserWorkflowSettings = &configs.UserSettings{
		UserConfigPath: filepath.Join(tempUserDir, "config", "audio-workflow", "config.yaml"),
		HomeConfigPath: filepath.Join(tempUserDir, ".audio-workflow.yaml"),
		DataPath:       filepath.Join(tempUserDir, "share", "audio-workflow"),
		Username:       "testuser",
	}

	// Clear discovery and tuning variables so only the fixtures apply,
	// then set working credentials.
	for _, key := range []string{
		"AUDIO_WORKFLOW_CONFIG",
		"WORKFLOW_OUTPUT_DIR",
		"WORKFLOW_TEMP_DIR",
		"WORKFLOW_LOG_LEVEL",
		"OPENAI_MODEL",
		"OPENAI_TEMPERATURE",
		"NOTION_DATABASE_ID",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("NOTION_API_KEY", "secret-test")
}

// CaptureOutput captures both stdout and stderr during function execution.
func CaptureOutput(fn func() error) (string, error) {
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

// CreateTestCLI creates a complete CLI instance for testing with the
// specified arguments and flags. All command state is reset first, so
// test hooks like cmd.SetDoctorExitFunc must be applied after this call.
func CreateTestCLI(args []string, stdout, stderr io.Writer, verboseFlag, debugFlag bool) *cobra.Command {
	cmd.ResetGlobalState()

	// Set global flags for the actual command implementations.
	cmd.SetVerbose(verboseFlag)
	cmd.SetDebug(debugFlag)

	// Initialize the logger with the test flags
	cmd.SetLogger(logger.Logger{
		Verbose: verboseFlag,
		Debug:   debugFlag,
	})

	rootCmd := cmd.GetRootCmd()

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

// InstallFakeTools writes working stand-ins for the named workflow tools
// into binDir.
func InstallFakeTools(t *testing.T, binDir string, names ...string) {
	for _, name := range names {
		script, ok := fakeToolScripts[name]
		if !ok {
			t.Fatalf("No fake script for tool %q", name)
		}
		WriteExecutable(t, filepath.Join(binDir, name), script)
	}
}

// InstallFailingTool writes a fake tool that prints a message to stderr
// and exits with the given code.
func InstallFailingTool(t *testing.T, binDir, name string, exitCode int, stderr string) {
	script := fmt.Sprintf("#!/bin/sh\necho %q >&2\nexit %d\n", stderr, exitCode)
	WriteExecutable(t, filepath.Join(binDir, name), script)
}

// WriteExecutable writes an executable script, creating parent directories.
func WriteExecutable(t *testing.T, path, script string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", filepath.Dir(path), err)
	}
	// #nosec G306 -- fake tools must be executable.
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("Failed to write fake tool %s: %v", path, err)
	}
}

// WriteConfig writes a configuration file, creating parent directories.
func WriteConfig(t *testing.T, path, content string) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config %s: %v", path, err)
	}
}

// WriteAudioFile writes a placeholder audio file.
func WriteAudioFile(t *testing.T, path string) {
	if err := os.WriteFile(path, []byte("RIFF fake audio"), 0600); err != nil {
		t.Fatalf("Failed to write audio file %s: %v", path, err)
	}
}
