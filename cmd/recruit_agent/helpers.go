package main

import (
	"fmt"

	"github.com/hirestack/recruit-agent/internal/config"
)

// serviceDefaults are the fallback values applied after the config file,
// CLI flags, and environment have all had their say.
var serviceDefaults = config.Config{
	BackendURL:     "http://localhost:8000",
	AptitudeURL:    "http://localhost:8001",
	JDGenURL:       "http://localhost:8002",
	TopN:           5,
	PollIntervalMS: 2000,
	MaxPolls:       900,
}

// resolveConfig loads the optional config file, then fills remaining gaps
// from the environment and the service defaults. Flag overrides are applied
// by the caller before defaults are merged, so the precedence is
// flags > config file > environment > defaults.
func resolveConfig(path string, applyFlags func(*config.Config)) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return cfg, err
		}
		cfg = *loaded
	}

	if applyFlags != nil {
		applyFlags(&cfg)
	}

	cfg.FromEnv()
	return cfg.MergeWithDefaults(serviceDefaults), nil
}
