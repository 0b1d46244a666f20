// Package config handles client configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global claudectl directory.
	GlobalDirName = ".claudectl"

	// OptionsDirName is the directory holding per-agent option blobs.
	OptionsDirName = "options"
)

// File names
const (
	ConfigFileName = "config.yaml"
	LogFileName    = "client.log"
)

// GlobalDir returns the path to the global claudectl directory (~/.claudectl/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalConfigFile returns the path to the config.yaml file.
func GlobalConfigFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// GlobalOptionsDir returns the path to the per-agent options directory.
func GlobalOptionsDir() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, OptionsDirName), nil
}

// GlobalLogFile returns the path to the diagnostics log file.
func GlobalLogFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, LogFileName), nil
}

// EnsureGlobalDir creates the global claudectl directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// EnsureGlobalOptionsDir creates the options directory if it doesn't exist.
func EnsureGlobalOptionsDir() error {
	dir, err := GlobalOptionsDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
