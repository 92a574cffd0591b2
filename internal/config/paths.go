package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path returns the full path to the YAML config file,
// $XDG_CONFIG_HOME/lutrisart/config.yaml.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("determine config directory: %w", err)
	}
	return filepath.Join(dir, "lutrisart", "config.yaml"), nil
}

// dataDir resolves $XDG_DATA_HOME with the usual ~/.local/share fallback.
func dataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share"), nil
}

// LutrisDataDir returns the Lutris data directory, $XDG_DATA_HOME/lutris.
func LutrisDataDir() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lutris"), nil
}

// LutrisDBPath returns the path to the Lutris SQLite database.
func LutrisDBPath() (string, error) {
	dir, err := LutrisDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pga.db"), nil
}

// IconDir returns the hicolor icon directory Lutris reads game icons from.
// Icons live outside the lutris data dir, unlike the other asset categories.
func IconDir() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "icons", "hicolor", "128x128", "apps"), nil
}
