// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Backend endpoints
	BackendURL  string `json:"backend_url,omitempty"`  // Screening backend base URL
	AptitudeURL string `json:"aptitude_url,omitempty"` // Aptitude generator base URL
	JDGenURL    string `json:"jdgen_url,omitempty"`    // JD generator base URL

	// Analysis defaults
	TopN           int `json:"top_n,omitempty"`            // Shortlist size
	PollIntervalMS int `json:"poll_interval_ms,omitempty"` // Delay between status polls
	MaxPolls       int `json:"max_polls,omitempty"`        // Poll attempt bound; 0 = unbounded

	// Behavior
	StatePath  string `json:"state_path,omitempty"`  // Prefill state file location
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job pages
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
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
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.TopN < 0 {
		return fmt.Errorf("config error: 'top_n' must be non-negative")
	}
	if c.PollIntervalMS < 0 {
		return fmt.Errorf("config error: 'poll_interval_ms' must be non-negative")
	}
	if c.MaxPolls < 0 {
		return fmt.Errorf("config error: 'max_polls' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.BackendURL == "" {
		result.BackendURL = defaults.BackendURL
	}
	if result.AptitudeURL == "" {
		result.AptitudeURL = defaults.AptitudeURL
	}
	if result.JDGenURL == "" {
		result.JDGenURL = defaults.JDGenURL
	}
	if result.StatePath == "" {
		result.StatePath = defaults.StatePath
	}

	// Int fields: use default if zero
	if result.TopN == 0 {
		result.TopN = defaults.TopN
	}
	if result.PollIntervalMS == 0 {
		result.PollIntervalMS = defaults.PollIntervalMS
	}
	if result.MaxPolls == 0 {
		result.MaxPolls = defaults.MaxPolls
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv fills endpoint fields from environment variables when unset.
// Flags and config file values take priority.
func (c *Config) FromEnv() {
	if c.BackendURL == "" {
		c.BackendURL = os.Getenv("RECRUIT_BACKEND_URL")
	}
	if c.AptitudeURL == "" {
		c.AptitudeURL = os.Getenv("RECRUIT_APTITUDE_URL")
	}
	if c.JDGenURL == "" {
		c.JDGenURL = os.Getenv("RECRUIT_JDGEN_URL")
	}
}
