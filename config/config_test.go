package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.True(t, cfg.DemoFallback)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8000, cfg.DemoPort)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROADSIGHT_BACKEND_URL", "http://backend.internal:9000")
	t.Setenv("ROADSIGHT_LOG_LEVEL", "debug")
	t.Setenv("ROADSIGHT_DEMO_FALLBACK", "false")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://backend.internal:9000", cfg.BackendURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.DemoFallback)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("backend_url: http://from-file:8000\nmax_attempts: 5\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://from-file:8000", cfg.BackendURL)
	assert.Equal(t, 5, cfg.MaxAttempts)
	// Untouched keys keep their defaults.
	assert.Equal(t, 30, cfg.TimeoutSeconds)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("backend_url: http://from-file:8000\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	t.Setenv("ROADSIGHT_BACKEND_URL", "http://from-env:9000")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:9000", cfg.BackendURL)
}
