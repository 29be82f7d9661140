package configs

import (
	"fmt"
	"os"
	"strings"
	"time"

	werrors "audio-workflow/internal/errors"
	"audio-workflow/internal/pipeline"
)

// Config is the effective configuration for one invocation: the single
// winning file-based source with environment values merged on top. It is
// built once by Resolve and read-only afterward.
type Config struct {
	// Databases maps logical names to opaque Notion database ids.
	Databases map[string]string

	// Defaults supplies the selections used when CLI flags are absent.
	Defaults Defaults

	// Workflows maps workflow names to their definitions.
	Workflows map[string]Workflow

	// Credentials come from the environment only, never from a file.
	Credentials Credentials

	// ModelDefault and TemperatureDefault come from OPENAI_MODEL and
	// OPENAI_TEMPERATURE. They apply to the deepcast step when the
	// selected workflow does not set its own options.
	ModelDefault       string
	TemperatureDefault string

	// Source names the file this configuration was loaded from, or
	// FallbackSource for the embedded defaults.
	Source string
}

// Defaults holds the fallback selections of a configuration file.
type Defaults struct {
	Database  string `yaml:"database"`
	Workflow  string `yaml:"workflow"`
	OutputDir string `yaml:"output_dir"`
	TempDir   string `yaml:"temp_dir"`
	KeepFiles bool   `yaml:"keep_files"`
	Timeout   string `yaml:"timeout"`
}

// Workflow is one named ordered sequence of pipeline steps.
type Workflow struct {
	Name        string
	Description string
	Steps       []pipeline.Step
	Options     pipeline.StepOptions
}

// Credentials holds the API keys the external tools require.
type Credentials struct {
	OpenAIKey string
	NotionKey string
}

// ResolveDatabaseID maps a logical database name to its id. Lookup order:
// the databases section, then <NAME>_DATABASE_ID, then NOTION_DATABASE_ID.
func (c *Config) ResolveDatabaseID(name string) (string, error) {
	if id, ok := c.Databases[name]; ok && id != "" {
		return id, nil
	}

	envKey := strings.ToUpper(strings.ReplaceAll(name, "-", "_")) + "_DATABASE_ID"
	if id := os.Getenv(envKey); id != "" {
		return id, nil
	}
	if id := os.Getenv("NOTION_DATABASE_ID"); id != "" {
		return id, nil
	}

	return "", fmt.Errorf("%w: %q (add it to the databases section or set %s)", werrors.ErrUnknownDatabase, name, envKey)
}

// MissingCredentials returns the environment variables still unset for
// the given steps. Transcribe and deepcast need OPENAI_API_KEY;
// notion-upload needs NOTION_API_KEY.
func (c *Config) MissingCredentials(steps []pipeline.Step) []string {
	needOpenAI := false
	needNotion := false
	for _, step := range steps {
		if step.NeedsOpenAI() {
			needOpenAI = true
		}
		if step.NeedsNotion() {
			needNotion = true
		}
	}

	var missing []string
	if needOpenAI && c.Credentials.OpenAIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if needNotion && c.Credentials.NotionKey == "" {
		missing = append(missing, "NOTION_API_KEY")
	}
	return missing
}

// TimeoutDuration returns the configured per-step timeout, or zero when
// none is set. The value is validated at load time.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Defaults.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Defaults.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// validate rejects configurations that could not run any workflow.
func (c *Config) validate() error {
	for name, wf := range c.Workflows {
		if len(wf.Steps) == 0 {
			return fmt.Errorf("%w: workflow %q has no steps", werrors.ErrConfigInvalid, name)
		}
	}
	if c.Defaults.Timeout != "" {
		if _, err := time.ParseDuration(c.Defaults.Timeout); err != nil {
			return fmt.Errorf("%w: invalid timeout %q: %v", werrors.ErrConfigInvalid, c.Defaults.Timeout, err)
		}
	}
	return nil
}

// normalize fills directory defaults so callers never see empty paths.
func (c *Config) normalize() {
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "."
	}
	if c.Defaults.TempDir == "" {
		c.Defaults.TempDir = os.TempDir()
	}
}
