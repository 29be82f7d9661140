// Package cmd implements the audio-workflow command line interface: a
// single root command whose flags select between running a workflow and
// the read-only listing, doctor, and history modes.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	logger "audio-workflow/internal/logging"
	"audio-workflow/internal/ui"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	runTitle        string
	runDatabase     string
	runWorkflowName string
	runConfigPath   string
	runKeepFiles    bool
	runTimeout      time.Duration

	listWorkflowsMode bool
	listDatabasesMode bool
	showConfigMode    bool
	doctorMode        bool
	historyMode       bool

	historyLimit   int
	historyReverse bool
	jsonOutput     bool

	RootCmd = &cobra.Command{
		Use:   "audio-workflow [audio-file]",
		Short: "Run audio processing workflows that end in Notion",
		Long: `Audio Workflow chains external tools into configurable pipelines:
transcribe an audio file, optionally run a deepcast analysis over the
transcript, and upload the result to a Notion database.

Workflows, named databases, and defaults come from a YAML configuration
file; CLI flags override configured defaults field by field.

Examples:
  audio-workflow meeting.wav
  audio-workflow meeting.wav --workflow full_analysis --title "Sprint Review"
  audio-workflow meeting.wav --database podcast --keep-files
  audio-workflow --list-workflows
  audio-workflow --show-config
  audio-workflow --doctor
  audio-workflow --history -n 10

Exit codes:
  0 - Success
  1 - A workflow step failed
  2 - Configuration missing or invalid
  3 - Validation failed (credentials, database, workflow)
  4 - Input audio file not found

With --doctor: 0 all checks passed, 1 warnings found, 2 errors found.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applyLogLevelEnv()
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing audio-workflow with verbose=%t, debug=%t", verbose, debug)
		},
		RunE: runRoot,
	}
)

func init() {
	RootCmd.Flags().StringVarP(&runTitle, "title", "t", "", "page title for the Notion upload (default: derived from the file name)")
	RootCmd.Flags().StringVarP(&runDatabase, "database", "d", "", "named database to upload into")
	RootCmd.Flags().StringVarP(&runWorkflowName, "workflow", "w", "", "workflow to run")
	RootCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "path to an explicit configuration file")
	RootCmd.Flags().BoolVarP(&runKeepFiles, "keep-files", "k", false, "keep intermediate files after a successful run")
	RootCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "per-step timeout (e.g. 10m); 0 disables the timeout")

	RootCmd.Flags().BoolVar(&listWorkflowsMode, "list-workflows", false, "list configured workflows and exit")
	RootCmd.Flags().BoolVar(&listDatabasesMode, "list-databases", false, "list configured databases and exit")
	RootCmd.Flags().BoolVar(&showConfigMode, "show-config", false, "show the effective configuration and exit")
	RootCmd.Flags().BoolVar(&doctorMode, "doctor", false, "run environment health checks and exit")
	RootCmd.Flags().BoolVar(&historyMode, "history", false, "show past runs and exit")

	RootCmd.Flags().IntVarP(&historyLimit, "number", "n", 0, "limit number of history entries shown")
	RootCmd.Flags().BoolVar(&historyReverse, "reverse", false, "show most recent history entries first")
	RootCmd.Flags().BoolVar(&jsonOutput, "json", false, "machine-readable output for the listing modes")

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

// runRoot dispatches between the read-only modes and a workflow run.
func runRoot(cmd *cobra.Command, args []string) error {
	switch {
	case doctorMode:
		return runDoctor(cmd, args)
	case listWorkflowsMode:
		return runListWorkflows()
	case listDatabasesMode:
		return runListDatabases()
	case showConfigMode:
		return runShowConfig()
	case historyMode:
		return runHistory()
	}

	if len(args) == 0 {
		printWelcome()
		return nil
	}

	return runWorkflow(cmd, args[0])
}

// applyLogLevelEnv maps WORKFLOW_LOG_LEVEL onto the verbosity flags when
// neither flag was passed on the command line.
func applyLogLevelEnv() {
	if verbose || debug {
		return
	}
	switch strings.ToLower(os.Getenv("WORKFLOW_LOG_LEVEL")) {
	case "verbose", "info":
		verbose = true
	case "debug":
		debug = true
	}
}

// printWelcome prints the splash shown by a bare invocation.
func printWelcome() {
	fmt.Println()
	banner := figure.NewColorFigure("Audio Workflow", "alligator2", "cyan", true)
	banner.Print()
	fmt.Println()
	fmt.Println("Welcome to Audio Workflow! Run " + ui.Code.Sprint("audio-workflow --help") + " to see available flags.")
}

// Helper functions for testing

// GetRootCmd returns the RootCmd for testing.
func GetRootCmd() *cobra.Command {
	return RootCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	runTitle = ""
	runDatabase = ""
	runWorkflowName = ""
	runConfigPath = ""
	runKeepFiles = false
	runTimeout = 0
	listWorkflowsMode = false
	listDatabasesMode = false
	showConfigMode = false
	doctorMode = false
	historyMode = false
	historyLimit = 0
	historyReverse = false
	jsonOutput = false
	doctorExitFunc = os.Exit
	doctorLookPath = nil
	workflowRunner = nil
	// Reset Cobra flag state to prevent pollution between tests
	resetFlagState()
}

// resetFlagState resets the flag state to prevent test pollution.
func resetFlagState() {
	if RootCmd != nil && RootCmd.Flags() != nil {
		RootCmd.Flags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
	if RootCmd != nil && RootCmd.PersistentFlags() != nil {
		RootCmd.PersistentFlags().VisitAll(func(flag *pflag.Flag) {
			flag.Changed = false
		})
	}
}

// SetVerbose sets the verbose flag for testing.
func SetVerbose(v bool) {
	verbose = v
}

// SetDebug sets the debug flag for testing.
func SetDebug(d bool) {
	debug = d
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}
