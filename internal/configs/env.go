package configs

import "os"

// applyEnvironment merges environment-provided values into the config.
// Credentials only ever come from here; file contents never set them.
// Directory overrides win over file values. Model and temperature become
// defaults for workflows that do not set their own options. The databases
// and workflows sections are never touched by the environment.
func (c *Config) applyEnvironment() {
	c.Credentials.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	c.Credentials.NotionKey = os.Getenv("NOTION_API_KEY")
	c.ModelDefault = os.Getenv("OPENAI_MODEL")
	c.TemperatureDefault = os.Getenv("OPENAI_TEMPERATURE")

	if dir := os.Getenv("WORKFLOW_OUTPUT_DIR"); dir != "" {
		c.Defaults.OutputDir = dir
	}
	if dir := os.Getenv("WORKFLOW_TEMP_DIR"); dir != "" {
		c.Defaults.TempDir = dir
	}
}
