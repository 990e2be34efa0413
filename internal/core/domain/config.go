package domain

import (
	"os"
	"path/filepath"
)

// Config holds the application settings.
type Config struct {
	// Document is the observation log opened when no file is given.
	Document string
	// Backup keeps the previous file as "<name>.bak" when saving over it.
	Backup bool
	// Indent is the indentation used when writing documents.
	Indent string
	// RecentLimit bounds the number of remembered documents.
	RecentLimit int
	// StateDir holds application state such as the recent documents list.
	StateDir string
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() *Config {
	return &Config{
		Backup:      true,
		Indent:      "  ",
		RecentLimit: 10,
		StateDir:    DefaultStateDir(),
	}
}

// DefaultStateDir returns the per-user state directory.
func DefaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "obslog")
	}
	return ".obslog"
}

// DefaultConfigPath returns the per-user configuration file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultStateDir(), "obslog.yaml")
}
