package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError collects multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// validate checks the config for internal consistency and returns a
// ValidationError if any checks fail. All checks run — errors are collected,
// not short-circuited.
func validate(cfg *Config) error {
	var errs []string

	// Backend URL must be an absolute http(s) URL
	u, err := url.Parse(cfg.Backend.URL)
	switch {
	case cfg.Backend.URL == "":
		errs = append(errs, "backend.url must be set")
	case err != nil:
		errs = append(errs, fmt.Sprintf("backend.url %q is not a valid URL: %v", cfg.Backend.URL, err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Sprintf("backend.url %q must use http or https", cfg.Backend.URL))
	case u.Host == "":
		errs = append(errs, fmt.Sprintf("backend.url %q is missing a host", cfg.Backend.URL))
	}

	// Positive value checks
	if cfg.Backend.TimeoutSeconds <= 0 {
		errs = append(errs, "backend.timeout_seconds must be positive")
	}
	if cfg.Poll.IntervalSeconds <= 0 {
		errs = append(errs, "poll.interval_seconds must be positive")
	}
	if cfg.Poll.TimeoutSeconds <= 0 {
		errs = append(errs, "poll.timeout_seconds must be positive")
	}
	if cfg.Poll.TimeoutSeconds > 0 && cfg.Poll.IntervalSeconds > 0 &&
		cfg.Poll.TimeoutSeconds <= cfg.Poll.IntervalSeconds {
		errs = append(errs, "poll.timeout_seconds must be larger than poll.interval_seconds")
	}

	// Log level must be a known value
	switch cfg.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q must be one of \"trace\", \"debug\", \"info\", \"warn\", \"error\"", cfg.Log.Level))
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
