package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SpaceXBaseURL != DefaultSpaceXBaseURL {
		t.Fatalf("SpaceXBaseURL = %q", cfg.SpaceXBaseURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected no timeout by default, got %v", cfg.HTTPTimeout)
	}
	if cfg.PollInterval != 900*time.Second {
		t.Fatalf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.LaunchFilter != "all" {
		t.Fatalf("LaunchFilter = %q", cfg.LaunchFilter)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SPACEX_BASE_URL", "http://localhost:9999/v5")
	t.Setenv("HTTP_TIMEOUT_SECONDS", "7")
	t.Setenv("POLL_INTERVAL", "60")
	t.Setenv("LAUNCH_FILTER", " Failed ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SpaceXBaseURL != "http://localhost:9999/v5" {
		t.Fatalf("SpaceXBaseURL = %q", cfg.SpaceXBaseURL)
	}
	if cfg.HTTPTimeout != 7*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.PollInterval != time.Minute {
		t.Fatalf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.LaunchFilter != "failed" {
		t.Fatalf("LaunchFilter = %q", cfg.LaunchFilter)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"POLL_INTERVAL":        "0",
		"LAUNCH_FILTER":        "partial",
		"HTTP_TIMEOUT_SECONDS": "-1",
		"STORAGE_TTL_SECONDS":  "0",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, val)
			}
		})
	}
}
