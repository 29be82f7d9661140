package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	werrors "audio-workflow/internal/errors"
	logger "audio-workflow/internal/logging"
	"audio-workflow/internal/tools"
)

// Step outcome values recorded in reports and the run history.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// StepReport records the outcome of one executed step.
type StepReport struct {
	Step     Step
	ExitCode int
	Status   string
}

// Sequencer executes a workflow's steps strictly in order through the
// injected runner. No step begins before the previous one's process has
// exited, and any failure stops the run immediately.
type Sequencer struct {
	Runner tools.Runner
	Log    logger.Logger

	// Timeout limits each step's external process. Zero means no limit.
	Timeout time.Duration

	// OnStepStart, when set, is called before each step begins. The CLI
	// uses it to update its progress display.
	OnStepStart func(step Step, position, total int)
}

type stepFunc func(ctx context.Context, rc *RunContext, opts StepOptions) (int, error)

// Execute runs the given steps in order against rc. It returns a report
// for every step that started. On failure the returned error carries the
// failing step's name, exit code, and stderr; no later step runs.
func (s *Sequencer) Execute(ctx context.Context, rc *RunContext, steps []Step, opts StepOptions) ([]StepReport, error) {
	handlers := map[Step]stepFunc{
		StepTranscribe:   s.runTranscribe,
		StepDeepcast:     s.runDeepcast,
		StepNotionUpload: s.runNotionUpload,
	}

	var reports []StepReport
	for i, step := range steps {
		handler, ok := handlers[step]
		if !ok {
			return reports, fmt.Errorf("%w: %q", werrors.ErrUnknownStep, step)
		}
		if s.OnStepStart != nil {
			s.OnStepStart(step, i+1, len(steps))
		}

		stepCtx := ctx
		cancel := func() {}
		if s.Timeout > 0 {
			stepCtx, cancel = context.WithTimeout(ctx, s.Timeout)
		}
		exitCode, err := handler(stepCtx, rc, opts)
		cancel()

		if err != nil {
			reports = append(reports, StepReport{Step: step, ExitCode: exitCode, Status: StatusFailed})
			return reports, err
		}
		reports = append(reports, StepReport{Step: step, ExitCode: exitCode, Status: StatusSuccess})
	}

	return reports, nil
}

// invoke runs one external tool and translates a failure into a StepError
// carrying the captured stderr and exit code.
func (s *Sequencer) invoke(ctx context.Context, step Step, args ...string) (tools.Result, error) {
	s.Log.Debugf("running: %s %s", step, strings.Join(args, " "))

	result, err := s.Runner.Run(ctx, step.String(), args...)
	if err != nil {
		stepErr := &werrors.StepError{
			Step:     step.String(),
			ExitCode: result.ExitCode,
			Stderr:   result.Stderr,
			Err:      err,
		}
		if reason := s.contextReason(ctx); reason != "" {
			stepErr.Reason = reason
		}
		return result, stepErr
	}

	s.Log.Debugf("%s exited 0", step)
	return result, nil
}

// contextReason distinguishes a tool that failed on its own from one we
// killed because of a timeout or an interrupt.
func (s *Sequencer) contextReason(ctx context.Context) string {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Sprintf("timed out after %s", s.Timeout)
	case errors.Is(ctx.Err(), context.Canceled):
		return "interrupted"
	}
	return ""
}

func (s *Sequencer) runTranscribe(ctx context.Context, rc *RunContext, _ StepOptions) (int, error) {
	args := []string{rc.AudioFile, "--output-dir", rc.OutputDir, "--formats", "transcript"}
	result, err := s.invoke(ctx, StepTranscribe, args...)
	if err != nil {
		return result.ExitCode, err
	}

	transcript := rc.TranscriptPath()
	if err := expectOutput(StepTranscribe, transcript); err != nil {
		return 0, err
	}
	rc.registerText(transcript)
	s.Log.Infof("transcript written to %s", transcript)
	return 0, nil
}

func (s *Sequencer) runDeepcast(ctx context.Context, rc *RunContext, opts StepOptions) (int, error) {
	transcript := rc.TranscriptPath()
	if !rc.hasArtifact(transcript) {
		return 0, fmt.Errorf("%w: deepcast needs the transcript from a transcribe step", werrors.ErrMissingDependency)
	}

	args := []string{transcript, "--output-path", rc.DeepcastPath()}
	if opts.Model != "" {
		args = append(args, "--model", opts.Model)
	}
	if opts.Temperature != "" {
		args = append(args, "--temperature", opts.Temperature)
	}
	result, err := s.invoke(ctx, StepDeepcast, args...)
	if err != nil {
		return result.ExitCode, err
	}

	if err := expectOutput(StepDeepcast, rc.DeepcastPath()); err != nil {
		return 0, err
	}
	rc.registerText(rc.DeepcastPath())
	s.Log.Infof("analysis written to %s", rc.DeepcastPath())
	return 0, nil
}

func (s *Sequencer) runNotionUpload(ctx context.Context, rc *RunContext, _ StepOptions) (int, error) {
	input := rc.lastText
	if input == "" {
		return 0, fmt.Errorf("%w: notion-upload needs a transcript or analysis file from a prior step", werrors.ErrMissingDependency)
	}

	args := []string{input, "--title", rc.Title, "--database-id", rc.DatabaseID}
	result, runErr := s.invoke(ctx, StepNotionUpload, args...)

	// The upload log preserves the tool's output for troubleshooting,
	// even when the upload itself failed.
	logPath := rc.UploadLogPath()
	// #nosec G306 -- upload log is a user-facing artifact.
	if err := os.WriteFile(logPath, []byte(result.Stdout+result.Stderr), 0644); err != nil {
		s.Log.WarnfAlways("could not write upload log %s: %v", logPath, err)
	} else {
		rc.RegisterArtifact(logPath, true)
	}

	if runErr != nil {
		return result.ExitCode, runErr
	}
	s.Log.Infof("upload log written to %s", logPath)
	return 0, nil
}

// expectOutput verifies that a step left its promised output file behind.
// A tool can exit zero and still not produce the file.
func expectOutput(step Step, path string) error {
	if _, err := os.Stat(path); err != nil {
		return &werrors.StepError{
			Step:   step.String(),
			Reason: fmt.Sprintf("expected output %s was not created", path),
		}
	}
	return nil
}
