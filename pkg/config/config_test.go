package config

import (
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "markdown", cfg.Diary.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "diary", filepath.Base(cfg.Diary.Root))
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid json format", func(c *Config) { c.Diary.Format = "JSON" }, ""},
		{"valid timezone", func(c *Config) { c.Diary.Timezone = "Asia/Shanghai" }, ""},
		{"missing root", func(c *Config) { c.Diary.Root = " " }, "diary root is required"},
		{"bad format", func(c *Config) { c.Diary.Format = "xml" }, "invalid diary format"},
		{"bad timezone", func(c *Config) { c.Diary.Timezone = "Mars/Olympus" }, "invalid timezone"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "diary:\n  root: " + filepath.Join(dir, "journal") + "\n  timezone: UTC\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "journal"), cfg.Diary.Root)
	assert.Equal(t, "markdown", cfg.Diary.Format, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diary:\n  format: markdown\n"), 0o600))

	t.Setenv("DAILY_DIARY_FORMAT", "json")
	t.Setenv("DAILY_DIARY_ROOT", filepath.Join(dir, "env-root"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Diary.Format)
	assert.Equal(t, filepath.Join(dir, "env-root"), cfg.Diary.Root)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("diary:\n  format: xml\n"), 0o600))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Diary.Root = filepath.Join(t.TempDir(), "diary")
	cfg.Diary.Timezone = "Europe/Berlin"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	assert.Equal(t, filepath.Join(home, "notes"), ExpandHome("~/notes"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "relative", ExpandHome("relative"))
}

func TestLoadValidatesAfterOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("diary:\n  timezone: Mars/Olympus\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timezone")

	cfg, err := Load(path, func(c *Config) {
		c.Diary.Timezone = "UTC"
		c.Diary.Root = "~/journal"
	})
	require.NoError(t, err)
	assert.Equal(t, "UTC", cfg.Diary.Timezone)
	assert.Equal(t, ExpandHome("~/journal"), cfg.Diary.Root, "overrides are home-expanded like file values")
}
