// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global Pingwatch directory.
	GlobalDirName = ".pingwatch"

	// HomeEnvVar overrides the global directory location.
	HomeEnvVar = "PINGWATCH_HOME"
)

// File names
const (
	DaemonFileName   = "daemon.yaml"
	SettingsFileName = "settings.yaml"
	StateFileName    = "state.json"
	StateDBFileName  = "state.db"
	LogsDirName      = "logs"
)

// GlobalDir returns the path to the global Pingwatch directory (~/.pingwatch/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

func globalFile(name string) (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GlobalDaemonFile returns the path to the daemon.yaml file.
func GlobalDaemonFile() (string, error) {
	return globalFile(DaemonFileName)
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	return globalFile(SettingsFileName)
}

// GlobalStateFile returns the path to the JSON counters file.
func GlobalStateFile() (string, error) {
	return globalFile(StateFileName)
}

// GlobalStateDB returns the path to the SQLite counters database.
func GlobalStateDB() (string, error) {
	return globalFile(StateDBFileName)
}

// EnsureGlobalDir creates the global Pingwatch directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
