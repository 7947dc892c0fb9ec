// Package xdg provides helpers to resolve XDG Base Directory paths for synbalance.
// It implements the XDG Base Directory specification for locating configuration
// files and falls back to the traditional ~/.config location when the XDG
// environment variables are not set.
package xdg

import (
	"os"
	"path/filepath"
)

// AppName is the directory name used under every XDG base directory.
const AppName = "synbalance"

// ConfigDir returns the XDG config directory for synbalance.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/synbalance when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	dir := filepath.Join(base, AppName)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
