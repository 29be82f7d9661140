package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	werrors "audio-workflow/internal/errors"
	"audio-workflow/internal/pipeline"
	"audio-workflow/internal/tools"
	"audio-workflow/internal/ui"
	"audio-workflow/internal/workflows"

	"github.com/spf13/cobra"
)

// workflowRunner substitutes the external tool runner in tests. Nil selects
// the real exec-backed runner.
var workflowRunner tools.Runner

// SetWorkflowRunner sets the tool runner for testing.
func SetWorkflowRunner(r tools.Runner) {
	workflowRunner = r
}

// runWorkflow executes the selected workflow against the given audio file.
func runWorkflow(cmd *cobra.Command, audioFile string) error {
	Logger.Infof("Starting workflow run for %s", audioFile)

	spinner, cleanup := startSpinner("Preparing workflow...", verbose)
	defer cleanup()

	// An interrupt cancels the running step; artifact cleanup still runs
	// before the process exits.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		cancel()
	}()

	opts := workflows.RunOptions{
		AudioFile:    audioFile,
		Title:        runTitle,
		Database:     runDatabase,
		Workflow:     runWorkflowName,
		ConfigPath:   runConfigPath,
		KeepFiles:    runKeepFiles,
		KeepFilesSet: cmd.Flags().Changed("keep-files"),
		Timeout:      runTimeout,
		Runner:       workflowRunner,
		Logger:       Logger,
		OnStepStart: func(step pipeline.Step, position, total int) {
			spinner.Suffix = fmt.Sprintf(" Running %s (%d/%d)...", ui.Step.Sprint(step.String()), position, total)
		},
	}

	result, err := workflows.Run(ctx, opts)
	if err != nil {
		spinner.FinalMSG = formatRunError(err)
		return err
	}

	spinner.FinalMSG = formatRunSuccess(result)
	return nil
}

// formatRunSuccess formats the closing summary of a successful run.
func formatRunSuccess(result *workflows.RunResult) string {
	msg := ui.Success.Sprint("✓") + " Workflow " + ui.Highlight.Sprint(result.Workflow) +
		" completed in " + result.Duration.Round(time.Millisecond).String() + "\n" +
		"  " + ui.Info.Sprint("→") + " Uploaded " + ui.Highlight.Sprint(result.Title) +
		" to database " + ui.Highlight.Sprint(result.Database)
	if result.UploadLog != "" {
		msg += "\n  " + ui.Info.Sprint("→") + " Upload log: " + ui.Path.Sprint(result.UploadLog)
	}
	return msg
}

// formatRunError formats a run error for display to the user.
func formatRunError(err error) string {
	var stepErr *werrors.StepError
	if errors.As(err, &stepErr) {
		msg := ui.Error.Sprint("✗") + " " + err.Error()
		if !verbose && !debug {
			msg += "\n" + ui.Info.Sprint("→") + " Re-run with " + ui.Flag.Sprint("--verbose") + " to stream tool output"
		}
		return msg
	}

	switch {
	case errors.Is(err, werrors.ErrConfigNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Check the path passed to " + ui.Flag.Sprint("--config")

	case errors.Is(err, werrors.ErrConfigInvalid):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Fix the configuration file or run " + ui.Code.Sprint("audio-workflow --doctor")

	case errors.Is(err, werrors.ErrMissingCredentials):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Export the missing API keys in your environment"

	case errors.Is(err, werrors.ErrUnknownDatabase):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("audio-workflow --list-databases") + " to see configured databases"

	case errors.Is(err, werrors.ErrUnknownWorkflow), errors.Is(err, werrors.ErrUnknownStep):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("audio-workflow --list-workflows") + " to see configured workflows"

	case errors.Is(err, werrors.ErrInputNotFound):
		return ui.Error.Sprint("✗") + " " + err.Error()

	case errors.Is(err, werrors.ErrMissingDependency):
		return ui.Error.Sprint("✗") + " " + err.Error() + "\n" +
			ui.Info.Sprint("→") + " The workflow's steps are missing a producer for this artifact"

	default:
		return ui.Error.Sprint("✗") + " Workflow failed: " + err.Error()
	}
}
