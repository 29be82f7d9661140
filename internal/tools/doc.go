// Package tools wraps external command execution for the workflow steps.
//
// The pipeline shells out to the transcribe, deepcast, and notion-upload
// command-line tools. The Runner interface is the seam between the
// sequencer and the operating system: production code uses ExecRunner,
// tests substitute a fake that scripts exit codes and output.
//
// Example usage:
//
//	runner := &tools.ExecRunner{TempDir: cfg.Defaults.TempDir}
//	result, err := runner.Run(ctx, "transcribe", audioFile, "--output-dir", tempDir, "--formats", "transcript")
//	if err != nil {
//	    // result.ExitCode and result.Stderr describe the failure
//	}
package tools
