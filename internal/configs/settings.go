package configs

import (
	"log"
	"os"
	"path/filepath"

	"audio-workflow/internal/utils"
)

// UserSettings holds the per-user filesystem locations the tool reads and
// writes outside the working directory.
type UserSettings struct {
	UserConfigPath string // config file in the user's config directory
	HomeConfigPath string // dotfile config in the user's home directory
	DataPath       string // data directory holding the run history
	Username       string
}

// UserWorkflowSettings is initialized at startup. Tests override it to
// point at temporary directories and restore it afterward.
var UserWorkflowSettings *UserSettings

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("error getting home directory: %s", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	username, err := utils.GetUsername()
	if err != nil {
		log.Fatalf("error getting username: %s", err)
	}

	UserWorkflowSettings = &UserSettings{
		UserConfigPath: filepath.Join(configDir, "audio-workflow", "config.yaml"),
		HomeConfigPath: filepath.Join(homeDir, ".audio-workflow.yaml"),
		DataPath:       filepath.Join(dataDir, "audio-workflow"),
		Username:       username,
	}
}
