package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load discovers a config file, merges it with defaults, applies environment
// variable overrides, validates the result, and returns the final config.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom loads config using the given directory as the root for file
// discovery. This is the testable entry point — Load() calls it with os.Getwd().
func LoadFrom(dir string) (*Config, error) {
	cfg := DefaultConfig()

	path, err := discoverConfigPath(dir)
	if err != nil {
		return nil, fmt.Errorf("config discovery: %w", err)
	}

	if path != "" {
		override, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		merge(&cfg, override)
	}

	applyEnvOverrides(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigPath searches the discovery chain and returns the first config
// file that exists. Returns empty string if none found (defaults-only mode).
func discoverConfigPath(dir string) (string, error) {
	// 1. ./stashhub.yaml (relative to the working dir)
	local := filepath.Join(dir, "stashhub.yaml")
	if _, err := os.Stat(local); err == nil {
		return local, nil
	}

	// 2. ~/.config/stashhub/config.yaml
	home, err := os.UserHomeDir()
	if err != nil {
		return "", nil // can't resolve home, skip
	}
	user := filepath.Join(home, ".config", "stashhub", "config.yaml")
	if _, err := os.Stat(user); err == nil {
		return user, nil
	}

	return "", nil
}

// loadFromFile reads and unmarshals a YAML config file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	return &cfg, nil
}

// merge overlays override onto base. Scalar fields override when non-zero.
func merge(base *Config, override *Config) {
	if override.Backend.URL != "" {
		base.Backend.URL = override.Backend.URL
	}
	if override.Backend.TimeoutSeconds != 0 {
		base.Backend.TimeoutSeconds = override.Backend.TimeoutSeconds
	}

	if override.Poll.IntervalSeconds != 0 {
		base.Poll.IntervalSeconds = override.Poll.IntervalSeconds
	}
	if override.Poll.TimeoutSeconds != 0 {
		base.Poll.TimeoutSeconds = override.Poll.TimeoutSeconds
	}

	if override.UI.ScrapeMessage != "" {
		base.UI.ScrapeMessage = override.UI.ScrapeMessage
	}
	if override.UI.ReportMessage != "" {
		base.UI.ReportMessage = override.UI.ReportMessage
	}

	if override.Log.Path != "" {
		base.Log.Path = override.Log.Path
	}
	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
}

// applyEnvOverrides applies STASHHUB_* environment variables on top of the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("STASHHUB_URL"); v != "" {
		cfg.Backend.URL = v
	}
	if v := os.Getenv("STASHHUB_POLL_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Poll.IntervalSeconds = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: STASHHUB_POLL_INTERVAL=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("STASHHUB_POLL_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Poll.TimeoutSeconds = n
		} else {
			fmt.Fprintf(os.Stderr, "warning: STASHHUB_POLL_TIMEOUT=%q is not a valid integer, ignoring\n", v)
		}
	}
	if v := os.Getenv("STASHHUB_LOG_FILE"); v != "" {
		cfg.Log.Path = v
	}
	if v := os.Getenv("STASHHUB_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
