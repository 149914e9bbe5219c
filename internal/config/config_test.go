package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"data_path": "/tmp/cards.db",
		"camera_url": "http://192.168.1.20:8081/stream",
		"port": 9090,
		"scan_timeout_seconds": 30
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/tmp/cards.db", cfg.DataPath)
	assert.Equal(t, "http://192.168.1.20:8081/stream", cfg.CameraURL)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30, cfg.ScanTimeoutSeconds)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_BadCameraURL(t *testing.T) {
	cfg := &Config{
		CameraURL: "not a url",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CameraURL")
}

func TestValidate_BadPort(t *testing.T) {
	cfg := &Config{
		Port: 70000,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Port")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DataPath:            "cards.db",
		Port:                8080,
		ScanTimeoutSeconds:  60,
		SuccessResetSeconds: 3,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Defaults()

	partial := Config{
		DataPath: "custom.db",
		Port:     9999,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom.db", merged.DataPath)
	assert.Equal(t, 9999, merged.Port)

	// Default values should fill in empty fields
	assert.Equal(t, defaults.ScanTimeoutSeconds, merged.ScanTimeoutSeconds)
	assert.Equal(t, defaults.SuccessResetSeconds, merged.SuccessResetSeconds)
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "cardpulse.db", cfg.DataPath)
	assert.Equal(t, 8080, cfg.Port)
	assert.NoError(t, cfg.Validate())
}
