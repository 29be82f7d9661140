package cmd

import (
	"context"
	"fmt"

	"audio-workflow/internal/runlog"
	"audio-workflow/internal/ui"
	"audio-workflow/internal/workflows"
)

// runHistory displays past workflow runs from the run history.
func runHistory() error {
	Logger.Infof("Starting history")

	spinner, cleanup := startSpinner("Loading run history...", verbose)
	defer cleanup()

	result, err := workflows.History(context.Background(), workflows.HistoryOptions{
		Limit:   historyLimit,
		Reverse: historyReverse,
	})
	if err != nil {
		spinner.FinalMSG = ui.Error.Sprint("✗") + " Failed to read run history: " + err.Error()
		return err
	}

	Logger.Debugf("Parsed %d entries from run history", result.TotalEntriesBeforeFilter)

	if len(result.Entries) == 0 {
		spinner.FinalMSG = ""
		fmt.Println("No run history found.")
		return nil
	}

	spinner.FinalMSG = ""
	if jsonOutput {
		return outputJSON(result.Entries)
	}

	outputHistoryDefault(result.Entries)
	return nil
}

func outputHistoryDefault(entries []runlog.Entry) {
	for _, e := range entries {
		status := fmt.Sprintf("%-8s", e.Status)
		if e.Status == "success" {
			status = ui.Success.Sprint(status)
		} else {
			status = ui.Error.Sprint(status)
		}
		fmt.Printf("%-19s  %-14s  %s  %-8s  %s\n",
			workflows.FormatDateTime(e.Timestamp),
			e.Workflow,
			status,
			workflows.FormatDuration(e.DurationMS),
			e.Input)
	}
}
