package app

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - SKILLBOARD_CONFIG_PATH: config file location (default: $XDG_CONFIG_HOME/skillboard.toml)
//   - SKILLBOARD_HOME: base directory for skillboard data (default: $XDG_DATA_HOME/skillboard)
func GetDefaults() (map[string]string, error) {
	baseDir := getBaseDir()
	return map[string]string{
		"config_path": getConfigPath(),
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
	}, nil
}

func getConfigPath() string {
	if path := os.Getenv("SKILLBOARD_CONFIG_PATH"); path != "" {
		return path
	}
	return filepath.Join(xdg.ConfigHome, "skillboard.toml")
}

func getBaseDir() string {
	if path := os.Getenv("SKILLBOARD_HOME"); path != "" {
		return path
	}
	return filepath.Join(xdg.DataHome, "skillboard")
}
