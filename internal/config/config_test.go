package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFromDefaultsWithoutFiles(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, EnvironmentLocal, cfg.Environment)
	assert.Equal(t, "127.0.0.1:8000", cfg.Addr())
	assert.Equal(t, "legacy", cfg.Export.FilenameFormat)
	assert.Equal(t, time.Duration(0), cfg.Export.Interval)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
}

func TestLoadFromLayersFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", `
application:
  host: 127.0.0.1
  port: 8000
export:
  dir: /tmp/base
  interval: 1h
`)
	writeFile(t, dir, "production.yaml", `
application:
  host: 0.0.0.0
export:
  filename_format: fixed
`)

	cfg, err := LoadFrom(dir, "Production")
	require.NoError(t, err)

	assert.Equal(t, EnvironmentProduction, cfg.Environment)
	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, "/tmp/base", cfg.Export.Dir)
	assert.Equal(t, "fixed", cfg.Export.FilenameFormat)
	assert.Equal(t, time.Hour, cfg.Export.Interval)
}

func TestLoadFromEnvOverridesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "application:\n  port: 8000\nlog_level: info\n")

	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EXPORT_INTERVAL", "30m")

	cfg, err := LoadFrom(dir, "local")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Application.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Minute, cfg.Export.Interval)
}

func TestLoadFromErrors(t *testing.T) {
	tests := []struct {
		name        string
		base        string
		environment string
	}{
		{name: "unknown environment", environment: "staging"},
		{name: "malformed yaml", base: "application: [", environment: "local"},
		{name: "bad filename format", base: "export:\n  filename_format: iso\n", environment: "local"},
		{name: "port out of range", base: "application:\n  port: 70000\n", environment: "local"},
		{name: "negative interval", base: "export:\n  interval: -1s\n", environment: "local"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.base != "" {
				writeFile(t, dir, "base.yaml", tc.base)
			}
			_, err := LoadFrom(dir, tc.environment)
			assert.Error(t, err)
		})
	}
}

func TestLoadUsesConfigDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "application:\n  port: 8123\n")
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("APP_ENVIRONMENT", "local")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8123, cfg.Application.Port)
}
