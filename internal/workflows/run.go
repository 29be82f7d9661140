package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"audio-workflow/internal/configs"
	werrors "audio-workflow/internal/errors"
	logger "audio-workflow/internal/logging"
	"audio-workflow/internal/pipeline"
	"audio-workflow/internal/runlog"
	"audio-workflow/internal/tools"
	"audio-workflow/internal/utils"
)

// RunOptions configures the run workflow. Empty override fields mean "use
// the configured default"; only explicitly passed CLI flags should be set
// here so unspecified flags never clobber file-derived defaults.
type RunOptions struct {
	AudioFile string

	Title    string
	Database string
	Workflow string

	// ConfigPath short-circuits configuration discovery when set.
	ConfigPath string

	// KeepFiles takes effect only when KeepFilesSet is true, so a default
	// of keep_files: true in the config survives an unset flag.
	KeepFiles    bool
	KeepFilesSet bool

	// Timeout overrides the configured per-step timeout when positive.
	Timeout time.Duration

	// Runner substitutes the external-process runner. Nil selects the
	// real ExecRunner.
	Runner tools.Runner

	Logger logger.Logger

	// OnStepStart receives progress callbacks from the sequencer.
	OnStepStart func(step pipeline.Step, position, total int)
}

// RunResult reports a successfully completed run.
type RunResult struct {
	Title      string
	Database   string
	DatabaseID string
	Workflow   string
	Steps      []pipeline.StepReport
	Artifacts  []string
	UploadLog  string
	OutputDir  string
	Source     string
	Duration   time.Duration
}

// Run executes one audio workflow end to end: resolve and validate the
// configuration, run the selected workflow's steps in order, clean up
// intermediate artifacts, and append a run history entry. All validation
// happens before any external process starts.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	log := opts.Logger
	started := time.Now()

	cfg, err := configs.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	log.Infof("using configuration from %s", cfg.Source)

	// CLI overrides apply field by field on top of the file defaults.
	workflowName := cfg.Defaults.Workflow
	if opts.Workflow != "" {
		workflowName = opts.Workflow
	}
	databaseName := cfg.Defaults.Database
	if opts.Database != "" {
		databaseName = opts.Database
	}
	keepFiles := cfg.Defaults.KeepFiles
	if opts.KeepFilesSet {
		keepFiles = opts.KeepFiles
	}
	timeout := cfg.TimeoutDuration()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	wf, ok := cfg.Workflows[workflowName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", werrors.ErrUnknownWorkflow, workflowName)
	}
	if missing := cfg.MissingCredentials(wf.Steps); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", werrors.ErrMissingCredentials, strings.Join(missing, ", "))
	}
	databaseID, err := cfg.ResolveDatabaseID(databaseName)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(opts.AudioFile); err != nil {
		return nil, fmt.Errorf("%w: %s", werrors.ErrInputNotFound, opts.AudioFile)
	}

	title := opts.Title
	if title == "" {
		title = utils.DeriveTitle(opts.AudioFile)
	}

	outputDir := cfg.Defaults.OutputDir
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	runner := opts.Runner
	if runner == nil {
		runner = &tools.ExecRunner{
			TempDir: cfg.Defaults.TempDir,
			Tee:     log.Verbose || log.Debug,
		}
	}

	rc := &pipeline.RunContext{
		AudioFile:  opts.AudioFile,
		Title:      title,
		Workflow:   workflowName,
		DatabaseID: databaseID,
		OutputDir:  outputDir,
		KeepFiles:  keepFiles,
	}
	// Cleanup runs whether the pipeline succeeds, fails, or is interrupted.
	defer rc.Cleanup(log)

	stepOpts := wf.Options
	if stepOpts.Model == "" {
		stepOpts.Model = cfg.ModelDefault
	}
	if stepOpts.Temperature == "" {
		stepOpts.Temperature = cfg.TemperatureDefault
	}

	seq := &pipeline.Sequencer{
		Runner:      runner,
		Log:         log,
		Timeout:     timeout,
		OnStepStart: opts.OnStepStart,
	}

	log.Infof("running workflow %s (%d steps) against database %s", workflowName, len(wf.Steps), databaseName)
	reports, execErr := seq.Execute(ctx, rc, wf.Steps, stepOpts)

	entry := runlog.NewEntry(opts.AudioFile, workflowName, databaseName)
	for _, report := range reports {
		entry.Steps = append(entry.Steps, runlog.StepRecord{
			Step:     report.Step.String(),
			ExitCode: report.ExitCode,
			Status:   report.Status,
		})
	}
	entry.Artifacts = rc.ArtifactPaths()
	entry.DurationMS = time.Since(started).Milliseconds()
	if execErr != nil {
		entry.Status = pipeline.StatusFailed
		entry.Error = execErr.Error()
	} else {
		entry.Status = pipeline.StatusSuccess
	}
	runlog.Log(entry)

	if execErr != nil {
		return nil, execErr
	}

	uploadLog := ""
	for _, artifact := range rc.Artifacts() {
		if artifact.Keep {
			uploadLog = artifact.Path
		}
	}

	return &RunResult{
		Title:      title,
		Database:   databaseName,
		DatabaseID: databaseID,
		Workflow:   workflowName,
		Steps:      reports,
		Artifacts:  rc.ArtifactPaths(),
		UploadLog:  uploadLog,
		OutputDir:  outputDir,
		Source:     cfg.Source,
		Duration:   time.Since(started),
	}, nil
}
