package config

import (
	"os"
	"path/filepath"
)

// Paths holds the filesystem locations promptsmith uses.
type Paths struct {
	ConfigDir    string
	ConfigFile   string
	TemplatesDir string
}

// NewPaths returns the default paths rooted at the user's home directory.
func NewPaths() *Paths {
	home := os.Getenv("HOME")
	configDir := filepath.Join(home, ".config", "promptsmith")

	return &Paths{
		ConfigDir:    configDir,
		ConfigFile:   filepath.Join(configDir, "config.yaml"),
		TemplatesDir: filepath.Join(configDir, "templates"),
	}
}

// NewPathsWithOverrides returns paths with explicit locations, for testing.
func NewPathsWithOverrides(configDir, templatesDir string) *Paths {
	return &Paths{
		ConfigDir:    configDir,
		ConfigFile:   filepath.Join(configDir, "config.yaml"),
		TemplatesDir: templatesDir,
	}
}
