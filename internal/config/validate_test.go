package config

import (
	"strings"
	"testing"
)

func TestValidateDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := validate(&cfg); err != nil {
		t.Fatalf("DefaultConfig() should pass validation, got: %v", err)
	}
}

func TestValidateEmptyURL(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.URL = ""

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for empty backend URL")
	}
	if !strings.Contains(err.Error(), "backend.url") {
		t.Errorf("expected error about backend.url, got: %v", err)
	}
}

func TestValidateBadScheme(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.URL = "ftp://example.com"

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for non-http scheme")
	}
	if !strings.Contains(err.Error(), "http or https") {
		t.Errorf("expected error about the scheme, got: %v", err)
	}
}

func TestValidateZeroInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Poll.IntervalSeconds = 0

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for zero interval_seconds")
	}
	if !strings.Contains(err.Error(), "interval_seconds") {
		t.Errorf("expected error about interval_seconds, got: %v", err)
	}
}

func TestValidateTimeoutNotLargerThanInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Poll.IntervalSeconds = 30
	cfg.Poll.TimeoutSeconds = 30

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for timeout <= interval")
	}
	if !strings.Contains(err.Error(), "larger than") {
		t.Errorf("expected error about timeout vs interval, got: %v", err)
	}
}

func TestValidateUnknownLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Level = "loud"

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for unknown log level")
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("expected error about log.level, got: %v", err)
	}
}

func TestValidateMultipleErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.URL = ""
	cfg.Poll.IntervalSeconds = 0
	cfg.Log.Level = "loud"

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation errors")
	}

	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}

	if len(ve.Errors) != 3 {
		t.Errorf("expected 3 validation errors, got %d: %v", len(ve.Errors), ve.Errors)
	}
}

func TestValidateNegativeRequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.TimeoutSeconds = -5

	err := validate(&cfg)
	if err == nil {
		t.Fatal("expected validation error for negative timeout_seconds")
	}
	if !strings.Contains(err.Error(), "backend.timeout_seconds") {
		t.Errorf("expected error about backend.timeout_seconds, got: %v", err)
	}
}
