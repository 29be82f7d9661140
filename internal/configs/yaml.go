package configs

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	werrors "audio-workflow/internal/errors"
	"audio-workflow/internal/pipeline"
)

// rawConfig mirrors the YAML document shape before step names and options
// are validated into their typed forms.
type rawConfig struct {
	Databases map[string]string      `yaml:"databases"`
	Defaults  Defaults               `yaml:"defaults"`
	Workflows map[string]rawWorkflow `yaml:"workflows"`
}

type rawWorkflow struct {
	Description         string   `yaml:"description"`
	Steps               []string `yaml:"steps"`
	DeepcastModel       string   `yaml:"deepcast_model"`
	DeepcastTemperature *float64 `yaml:"deepcast_temperature"`
}

// LoadFile loads and validates one configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", werrors.ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", werrors.ErrConfigInvalid, path, err)
	}
	return parseConfig(data, path)
}

// parseConfig decodes one YAML configuration document and validates it.
func parseConfig(data []byte, source string) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", werrors.ErrConfigInvalid, source, err)
	}

	cfg := &Config{
		Databases: raw.Databases,
		Defaults:  raw.Defaults,
		Workflows: make(map[string]Workflow, len(raw.Workflows)),
		Source:    source,
	}
	if cfg.Databases == nil {
		cfg.Databases = map[string]string{}
	}

	for name, rw := range raw.Workflows {
		wf := Workflow{
			Name:        name,
			Description: rw.Description,
			Options:     pipeline.StepOptions{Model: rw.DeepcastModel},
		}
		if rw.DeepcastTemperature != nil {
			wf.Options.Temperature = strconv.FormatFloat(*rw.DeepcastTemperature, 'g', -1, 64)
		}
		for _, rawStep := range rw.Steps {
			step, err := pipeline.ParseStep(rawStep)
			if err != nil {
				return nil, fmt.Errorf("workflow %q: %w", name, err)
			}
			wf.Steps = append(wf.Steps, step)
		}
		cfg.Workflows[name] = wf
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}
