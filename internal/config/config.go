// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Paths
	DataPath string `json:"data_path,omitempty" validate:"omitempty"` // Path to the SQLite snapshot database

	// Capture
	CameraURL string `json:"camera_url,omitempty" validate:"omitempty,url"` // MJPEG camera stream URL for live mode

	// Behavior
	APIKey              string `json:"api_key,omitempty"`                                   // Gemini API key
	Port                int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"` // HTTP server port
	ScanTimeoutSeconds  int    `json:"scan_timeout_seconds,omitempty" validate:"min=0"`     // Bound on the extraction call
	SuccessResetSeconds int    `json:"success_reset_seconds,omitempty" validate:"min=0"`    // Delay before success clears to idle
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		DataPath:            "cardpulse.db",
		Port:                8080,
		ScanTimeoutSeconds:  60,
		SuccessResetSeconds: 3,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("config error: field %q fails %q validation", first.Field(), first.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataPath == "" {
		result.DataPath = defaults.DataPath
	}
	if result.CameraURL == "" {
		result.CameraURL = defaults.CameraURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.ScanTimeoutSeconds == 0 {
		result.ScanTimeoutSeconds = defaults.ScanTimeoutSeconds
	}
	if result.SuccessResetSeconds == 0 {
		result.SuccessResetSeconds = defaults.SuccessResetSeconds
	}

	return result
}
