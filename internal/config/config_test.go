package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidFile(t *testing.T) {
	path := writeConfig(t, `{
		"backend_url": "http://localhost:8000",
		"aptitude_url": "http://localhost:8002",
		"top_n": 10,
		"poll_interval_ms": 500,
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, "http://localhost:8002", cfg.AptitudeURL)
	assert.Equal(t, 10, cfg.TopN)
	assert.Equal(t, 500, cfg.PollIntervalMS)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"backend_url": `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate_RejectsNegativeValues(t *testing.T) {
	assert.Error(t, (&Config{TopN: -1}).Validate())
	assert.Error(t, (&Config{PollIntervalMS: -1}).Validate())
	assert.Error(t, (&Config{MaxPolls: -1}).Validate())
	assert.NoError(t, (&Config{TopN: 5, PollIntervalMS: 2000}).Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{BackendURL: "http://custom:9000"}
	defaults := Config{
		BackendURL:     "http://localhost:8000",
		AptitudeURL:    "http://localhost:8002",
		JDGenURL:       "http://localhost:8001",
		TopN:           5,
		PollIntervalMS: 2000,
		MaxPolls:       900,
	}

	merged := cfg.MergeWithDefaults(defaults)
	assert.Equal(t, "http://custom:9000", merged.BackendURL, "explicit value wins")
	assert.Equal(t, "http://localhost:8002", merged.AptitudeURL)
	assert.Equal(t, "http://localhost:8001", merged.JDGenURL)
	assert.Equal(t, 5, merged.TopN)
	assert.Equal(t, 2000, merged.PollIntervalMS)
	assert.Equal(t, 900, merged.MaxPolls)
}

func TestFromEnv_FillsOnlyUnsetEndpoints(t *testing.T) {
	t.Setenv("RECRUIT_BACKEND_URL", "http://env-backend:8000")
	t.Setenv("RECRUIT_APTITUDE_URL", "http://env-aptitude:8002")

	cfg := Config{BackendURL: "http://explicit:8000"}
	cfg.FromEnv()
	assert.Equal(t, "http://explicit:8000", cfg.BackendURL)
	assert.Equal(t, "http://env-aptitude:8002", cfg.AptitudeURL)
}
