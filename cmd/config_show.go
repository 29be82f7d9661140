package cmd

import (
	"fmt"
	"sort"

	"audio-workflow/internal/configs"
	"audio-workflow/internal/ui"

	"github.com/fatih/color"
)

// workflowView is the JSON projection of a configured workflow.
type workflowView struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Steps       []string `json:"steps"`
	Model       string   `json:"model,omitempty"`
	Temperature string   `json:"temperature,omitempty"`
}

// configView is the JSON projection of the effective configuration.
// Credential values are never part of it; only their presence is reported.
type configView struct {
	Source    string            `json:"source"`
	Defaults  defaultsView      `json:"defaults"`
	Databases map[string]string `json:"databases"`
	Workflows []workflowView    `json:"workflows"`
	OpenAIKey bool              `json:"openai_key_set"`
	NotionKey bool              `json:"notion_key_set"`
}

type defaultsView struct {
	Workflow  string `json:"workflow"`
	Database  string `json:"database"`
	OutputDir string `json:"output_dir"`
	TempDir   string `json:"temp_dir"`
	KeepFiles bool   `json:"keep_files"`
	Timeout   string `json:"timeout,omitempty"`
}

// workflowViews builds the sorted workflow projections for JSON output.
func workflowViews(cfg *configs.Config) []workflowView {
	names := make([]string, 0, len(cfg.Workflows))
	for name := range cfg.Workflows {
		names = append(names, name)
	}
	sort.Strings(names)

	views := make([]workflowView, 0, len(names))
	for _, name := range names {
		wf := cfg.Workflows[name]
		steps := make([]string, 0, len(wf.Steps))
		for _, step := range wf.Steps {
			steps = append(steps, step.String())
		}
		views = append(views, workflowView{
			Name:        name,
			Description: wf.Description,
			Steps:       steps,
			Model:       wf.Options.Model,
			Temperature: wf.Options.Temperature,
		})
	}
	return views
}

// runShowConfig displays the effective configuration after discovery and
// environment merging.
func runShowConfig() error {
	Logger.Infof("Starting show-config")

	cfg, err := configs.Resolve(runConfigPath)
	if err != nil {
		fmt.Print(ui.EnsureNewline(formatRunError(err)))
		return err
	}

	if jsonOutput {
		return outputJSON(configView{
			Source: cfg.Source,
			Defaults: defaultsView{
				Workflow:  cfg.Defaults.Workflow,
				Database:  cfg.Defaults.Database,
				OutputDir: cfg.Defaults.OutputDir,
				TempDir:   cfg.Defaults.TempDir,
				KeepFiles: cfg.Defaults.KeepFiles,
				Timeout:   cfg.Defaults.Timeout,
			},
			Databases: cfg.Databases,
			Workflows: workflowViews(cfg),
			OpenAIKey: cfg.Credentials.OpenAIKey != "",
			NotionKey: cfg.Credentials.NotionKey != "",
		})
	}

	fmt.Println(color.CyanString("Effective configuration") + " (" + cfg.Source + "):")
	fmt.Println()
	fmt.Printf("  %-14s %s\n", "Workflow:", color.GreenString(cfg.Defaults.Workflow))
	fmt.Printf("  %-14s %s\n", "Database:", color.GreenString(cfg.Defaults.Database))
	fmt.Printf("  %-14s %s\n", "Output dir:", cfg.Defaults.OutputDir)
	fmt.Printf("  %-14s %s\n", "Temp dir:", cfg.Defaults.TempDir)
	fmt.Printf("  %-14s %t\n", "Keep files:", cfg.Defaults.KeepFiles)
	if cfg.Defaults.Timeout != "" {
		fmt.Printf("  %-14s %s\n", "Step timeout:", cfg.Defaults.Timeout)
	}
	if cfg.ModelDefault != "" {
		fmt.Printf("  %-14s %s\n", "Model:", cfg.ModelDefault)
	}
	if cfg.TemperatureDefault != "" {
		fmt.Printf("  %-14s %s\n", "Temperature:", cfg.TemperatureDefault)
	}

	// Credential values are never printed, only whether they are set.
	fmt.Println()
	fmt.Printf("  %-14s %s\n", "OpenAI key:", credentialStatus(cfg.Credentials.OpenAIKey))
	fmt.Printf("  %-14s %s\n", "Notion key:", credentialStatus(cfg.Credentials.NotionKey))

	if len(cfg.Databases) > 0 {
		fmt.Println()
		fmt.Println(color.CyanString("Databases") + ":")
		names := make([]string, 0, len(cfg.Databases))
		for name := range cfg.Databases {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-16s %s\n", name, ui.Muted.Sprint(cfg.Databases[name]))
		}
	}

	fmt.Println()
	fmt.Println(color.CyanString("Workflows") + ":")
	for _, view := range workflowViews(cfg) {
		fmt.Printf("  %-16s %s\n", view.Name, view.Description)
	}

	return nil
}

// credentialStatus renders key presence without revealing the value.
func credentialStatus(value string) string {
	if value == "" {
		return color.YellowString("not set")
	}
	return color.GreenString("set")
}
