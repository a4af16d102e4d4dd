package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultRegion, cfg.Region)
	assert.Equal(t, defaultModel, cfg.Model)
	assert.Empty(t, cfg.ProjectID)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GCP_PROJECT_ID", "")
	t.Setenv("UPLOAD_PER_MINUTE", "")
	t.Setenv("MAX_EXTENT", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
port = "9000"
gcp_project_id = "my-project"
place_per_second = 10
max_extent = 50
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "my-project", cfg.ProjectID)
	assert.Equal(t, 10, cfg.PlacePerSecond)
	assert.Equal(t, uint(50), cfg.MaxExtent)
	assert.Equal(t, defaultUploadPerMinute, cfg.UploadPerMinute, "unset keys keep defaults")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`port = "9000"`), 0o600))
	t.Setenv("PORT", "7000")
	t.Setenv("GEMINI_MODEL", "gemini-test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "gemini-test", cfg.Model)
}

func TestApplyEnv_Limits(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{
		"UPLOAD_PER_MINUTE": "12",
		"PLACE_PER_SECOND":  "30",
		"MAX_EXTENT":        "200",
	}
	require.NoError(t, cfg.applyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, 12, cfg.UploadPerMinute)
	assert.Equal(t, 30, cfg.PlacePerSecond)
	assert.Equal(t, uint(200), cfg.MaxExtent)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`port = `), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	for _, key := range []string{"UPLOAD_PER_MINUTE", "PLACE_PER_SECOND", "MAX_EXTENT"} {
		t.Run(key, func(t *testing.T) {
			for _, bad := range []string{"fast", "0", "-3"} {
				cfg := DefaultConfig()
				env := map[string]string{key: bad}
				err := cfg.applyEnv(func(k string) string { return env[k] })
				assert.Error(t, err, bad)
				assert.Equal(t, DefaultConfig(), cfg, "config untouched on error")
			}
		})
	}
}
