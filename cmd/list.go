package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"audio-workflow/internal/configs"
	"audio-workflow/internal/ui"
)

// runListWorkflows prints the configured workflows. It is a pure projection
// over the resolved configuration and never starts any external tool.
func runListWorkflows() error {
	Logger.Infof("Starting list-workflows")

	cfg, err := configs.Resolve(runConfigPath)
	if err != nil {
		fmt.Print(ui.EnsureNewline(formatRunError(err)))
		return err
	}

	if jsonOutput {
		return outputJSON(workflowViews(cfg))
	}

	names := make([]string, 0, len(cfg.Workflows))
	for name := range cfg.Workflows {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Available workflows " + ui.Muted.Sprint("from "+cfg.Source) + ":")
	fmt.Println()
	for _, name := range names {
		wf := cfg.Workflows[name]
		steps := make([]string, 0, len(wf.Steps))
		for _, step := range wf.Steps {
			steps = append(steps, step.String())
		}
		fmt.Printf("  %-16s %s\n", name, wf.Description)
		fmt.Printf("  %-16s %s\n", "", ui.Muted.Sprint(strings.Join(steps, " → ")))
	}
	return nil
}

// runListDatabases prints the configured database name→id mapping.
func runListDatabases() error {
	Logger.Infof("Starting list-databases")

	cfg, err := configs.Resolve(runConfigPath)
	if err != nil {
		fmt.Print(ui.EnsureNewline(formatRunError(err)))
		return err
	}

	if jsonOutput {
		return outputJSON(cfg.Databases)
	}

	if len(cfg.Databases) == 0 {
		fmt.Println("No databases configured.")
		fmt.Println()
		fmt.Println(ui.Info.Sprint("→") + " Add a " + ui.Code.Sprint("databases") + " section to your configuration, or set " +
			ui.Code.Sprint("NOTION_DATABASE_ID") + " / " + ui.Code.Sprint("<NAME>_DATABASE_ID") + " in the environment")
		return nil
	}

	names := make([]string, 0, len(cfg.Databases))
	for name := range cfg.Databases {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("Configured databases " + ui.Muted.Sprint("from "+cfg.Source) + ":")
	fmt.Println()
	for _, name := range names {
		fmt.Printf("  %-16s %s\n", name, ui.Muted.Sprint(cfg.Databases[name]))
	}
	return nil
}

// outputJSON writes any value as indented JSON to stdout.
func outputJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return Logger.ErrorfAndReturn("failed to marshal to JSON: %v", err)
	}
	fmt.Println(string(data))
	return nil
}
