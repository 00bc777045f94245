package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath names an explicit config file location.
	EnvConfigPath = "FABULA_CONFIG"

	configFileName = "fabula.yaml"
	configDirName  = "fabula"
)

// FindConfigPath locates the config file: $FABULA_CONFIG if set, then
// ./fabula.yaml, then config.yaml in the XDG config directory
// ($XDG_CONFIG_HOME or ~/.config). Empty means no config file, so the
// caller falls back to defaults.
func FindConfigPath() string {
	if path := os.Getenv(EnvConfigPath); path != "" && fileExists(path) {
		return path
	}

	if fileExists(configFileName) {
		if abs, err := filepath.Abs(configFileName); err == nil {
			return abs
		}
		return configFileName
	}

	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home := os.Getenv("HOME")
		if home == "" {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}

	if path := filepath.Join(dir, configDirName, "config.yaml"); fileExists(path) {
		return path
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
