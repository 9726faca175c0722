// Package config holds the service configuration: where the diary lives, its
// file format and time zone, and how logging is set up.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/entrhq/daily/pkg/logging"
)

// Config represents the configuration for the daily service
type Config struct {
	Diary   DiaryConfig   `yaml:"diary" mapstructure:"diary"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// DiaryConfig controls the journal store
type DiaryConfig struct {
	// Root directory holding <YYYY>/<MM>/<YYYY-MM-DD>.<ext> files
	Root string `yaml:"root" mapstructure:"root"`

	// Format is "markdown" or "json"
	Format string `yaml:"format" mapstructure:"format"`

	// Timezone is an IANA zone name; empty means the system zone
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// LoggingConfig controls log verbosity and destination
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Diary: DiaryConfig{
			Root:   filepath.Join(HomeDir(), "diary"),
			Format: "markdown",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Diary.Root) == "" {
		return fmt.Errorf("diary root is required")
	}

	switch strings.ToLower(c.Diary.Format) {
	case "markdown", "json":
	default:
		return fmt.Errorf("invalid diary format: %s (must be 'markdown' or 'json')", c.Diary.Format)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Diary.Timezone == "" || strings.EqualFold(c.Diary.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Diary.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Diary.Timezone, err)
	}
	return loc, nil
}

// HomeDir returns the per-user data directory, ~/.daily-mcp. It falls back
// to a relative .daily-mcp when no home directory is known.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".daily-mcp"
	}
	return filepath.Join(home, ".daily-mcp")
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
