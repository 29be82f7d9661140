package configs

import (
	_ "embed"
)

// FallbackSource names the embedded configuration in --show-config output.
const FallbackSource = "built-in defaults"

//go:embed fallback.yaml
var fallbackYAML []byte

// loadFallback parses the embedded project configuration. It guarantees a
// usable default when no configuration file exists anywhere.
func loadFallback() (*Config, error) {
	return parseConfig(fallbackYAML, FallbackSource)
}
