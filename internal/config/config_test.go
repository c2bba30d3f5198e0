package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(DirEnv, t.TempDir())
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SERVICE_NAME", "")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "", cfg.Log.File)
	assert.Equal(t, 100, cfg.History.Limit)
	assert.Equal(t, "furnedit", cfg.Service.Name)
	assert.False(t, cfg.Autosave)
	assert.Empty(t, cfg.OTLP.Endpoint)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DirEnv, dir)
	yaml := "autosave: true\nlog:\n  level: debug\n  file: /tmp/furnedit.log\nhistory:\n  limit: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("FURNEDIT_LOG_LEVEL", "warn")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.True(t, cfg.Autosave)
	assert.Equal(t, "warn", cfg.Log.Level, "env overrides file")
	assert.Equal(t, "/tmp/furnedit.log", cfg.Log.File)
	assert.Equal(t, 5, cfg.History.Limit)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_OTLPEndpointFallback(t *testing.T) {
	t.Setenv(DirEnv, t.TempDir())
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "localhost:4318", cfg.OTLP.Endpoint)
}

func TestLoad_ServiceNameFromOTelEnv(t *testing.T) {
	t.Setenv(DirEnv, t.TempDir())
	t.Setenv("OTEL_SERVICE_NAME", "furni-studio")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "furni-studio", cfg.Service.Name)

	t.Setenv("FURNEDIT_SERVICE_NAME", "explicit")
	cfg, err = Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "explicit", cfg.Service.Name)
}
