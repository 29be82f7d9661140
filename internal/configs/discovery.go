package configs

import (
	"os"
)

// CandidatePaths returns the ranked configuration locations checked when
// no explicit --config path is given, highest priority first: the working
// directory files, the user config directory, the home dotfile, and the
// AUDIO_WORKFLOW_CONFIG environment path. The embedded fallback sits
// below all of these.
func CandidatePaths() []string {
	paths := []string{
		"audio-workflow.yaml",
		"config.yaml",
		UserWorkflowSettings.UserConfigPath,
		UserWorkflowSettings.HomeConfigPath,
	}
	if envPath := os.Getenv("AUDIO_WORKFLOW_CONFIG"); envPath != "" {
		paths = append(paths, envPath)
	}
	return paths
}

// Resolve produces the effective configuration for one invocation. An
// explicit path short-circuits discovery and must exist. Otherwise the
// first existing candidate supplies the whole file-derived configuration;
// files are never merged across sources. Environment values are applied
// on top either way.
func Resolve(explicitPath string) (*Config, error) {
	cfg, err := loadBase(explicitPath)
	if err != nil {
		return nil, err
	}
	cfg.applyEnvironment()
	return cfg, nil
}

func loadBase(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadFile(explicitPath)
	}

	for _, path := range CandidatePaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// A present but unreadable or malformed file is an error, not a
		// fallthrough to the next candidate.
		return LoadFile(path)
	}

	return loadFallback()
}
