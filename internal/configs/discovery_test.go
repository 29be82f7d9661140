package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	werrors "audio-workflow/internal/errors"
)

// setupTestSettings points the user-level paths at a temp directory and
// restores the originals afterward.
func setupTestSettings(t *testing.T) *UserSettings {
	t.Helper()
	tempUserDir := t.TempDir()
	original := UserWorkflowSettings
	UserWorkflowSettings = &UserSettings{
		UserConfigPath: filepath.Join(tempUserDir, "config", "audio-workflow", "config.yaml"),
		HomeConfigPath: filepath.Join(tempUserDir, ".audio-workflow.yaml"),
		DataPath:       filepath.Join(tempUserDir, "share", "audio-workflow"),
		Username:       "testuser",
	}
	t.Cleanup(func() {
		UserWorkflowSettings = original
	})
	return UserWorkflowSettings
}

// chdirTemp moves into a fresh temp directory for cwd-relative discovery.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(originalWd); err != nil {
			t.Fatalf("Failed to change to original directory: %v", err)
		}
	})
	return dir
}

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func markerConfig(marker string) string {
	return "defaults:\n  database: " + marker + "\n"
}

func TestResolvePriorityOrder(t *testing.T) {
	// Priority positions: 3 = ./audio-workflow.yaml, 4 = ./config.yaml,
	// 5 = user config dir, 6 = home dotfile, 7 = AUDIO_WORKFLOW_CONFIG.
	testCases := []struct {
		name    string
		present []int
		want    int
	}{
		{"cwd primary beats user and env", []int{3, 5, 7}, 3},
		{"cwd secondary beats user config", []int{4, 5}, 4},
		{"user config dir beats home dotfile", []int{5, 6}, 5},
		{"home dotfile beats env path", []int{6, 7}, 6},
		{"env path used when nothing else exists", []int{7}, 7},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearWorkflowEnv(t)
			settings := setupTestSettings(t)
			dir := chdirTemp(t)
			envConfigPath := filepath.Join(t.TempDir(), "env-config.yaml")

			locations := map[int]string{
				3: filepath.Join(dir, "audio-workflow.yaml"),
				4: filepath.Join(dir, "config.yaml"),
				5: settings.UserConfigPath,
				6: settings.HomeConfigPath,
				7: envConfigPath,
			}
			for _, priority := range tc.present {
				if priority == 7 {
					t.Setenv("AUDIO_WORKFLOW_CONFIG", envConfigPath)
				}
				writeConfigFile(t, locations[priority], markerConfig(marker(priority)))
			}

			cfg, err := Resolve("")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Defaults.Database != marker(tc.want) {
				t.Errorf("expected source %d (%s), got %q from %s",
					tc.want, marker(tc.want), cfg.Defaults.Database, cfg.Source)
			}
		})
	}
}

func marker(priority int) string {
	return map[int]string{
		3: "cwd-primary",
		4: "cwd-secondary",
		5: "user-config",
		6: "home-dotfile",
		7: "env-path",
	}[priority]
}

func TestResolveExplicitConfigAlwaysWins(t *testing.T) {
	clearWorkflowEnv(t)
	settings := setupTestSettings(t)
	dir := chdirTemp(t)

	writeConfigFile(t, filepath.Join(dir, "audio-workflow.yaml"), markerConfig("cwd-primary"))
	writeConfigFile(t, settings.UserConfigPath, markerConfig("user-config"))
	writeConfigFile(t, settings.HomeConfigPath, markerConfig("home-dotfile"))

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	writeConfigFile(t, explicit, markerConfig("explicit"))

	cfg, err := Resolve(explicit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Database != "explicit" {
		t.Errorf("explicit config must win, got %q from %s", cfg.Defaults.Database, cfg.Source)
	}
	if cfg.Source != explicit {
		t.Errorf("expected source %s, got %s", explicit, cfg.Source)
	}
}

func TestResolveExplicitConfigMissing(t *testing.T) {
	clearWorkflowEnv(t)
	setupTestSettings(t)
	chdirTemp(t)

	_, err := Resolve(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if !errors.Is(err, werrors.ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestResolveFallsBackToEmbeddedDefaults(t *testing.T) {
	clearWorkflowEnv(t)
	setupTestSettings(t)
	chdirTemp(t)

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source != FallbackSource {
		t.Errorf("expected fallback source, got %q", cfg.Source)
	}
	if cfg.Defaults.Database != "meetings" || cfg.Defaults.Workflow != "quick_notes" {
		t.Errorf("unexpected fallback defaults: %+v", cfg.Defaults)
	}
	for _, name := range []string{"quick_notes", "full_analysis"} {
		if _, ok := cfg.Workflows[name]; !ok {
			t.Errorf("fallback config missing workflow %q", name)
		}
	}
}

func TestResolveBrokenCandidateIsAnError(t *testing.T) {
	clearWorkflowEnv(t)
	setupTestSettings(t)
	dir := chdirTemp(t)

	writeConfigFile(t, filepath.Join(dir, "audio-workflow.yaml"), "workflows: [broken")

	_, err := Resolve("")
	if !errors.Is(err, werrors.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
}
