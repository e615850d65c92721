package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "LOG_LEVEL", "RATE_LIMIT_REQUESTS",
		"RATE_LIMIT_WINDOW_MINUTES", "KOMOOT_BASE_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Host != "0.0.0.0" {
		t.Errorf("expected default host 0.0.0.0, got %s", cfg.Host)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.RateLimitRequests != 10 || cfg.RateLimitWindowMin != 60 {
		t.Errorf("expected default rate limit 10/60min, got %d/%d",
			cfg.RateLimitRequests, cfg.RateLimitWindowMin)
	}
	if cfg.KomootBaseURL != "" {
		t.Errorf("expected empty default komoot base url, got %s", cfg.KomootBaseURL)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_REQUESTS", "3")
	t.Setenv("RATE_LIMIT_WINDOW_MINUTES", "1")
	t.Setenv("KOMOOT_BASE_URL", "http://localhost:9999")

	cfg := Load()

	if cfg.Host != "127.0.0.1" || cfg.Port != 8080 {
		t.Errorf("unexpected host/port %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug, got %s", cfg.LogLevel)
	}
	if cfg.RateLimitRequests != 3 || cfg.RateLimitWindowMin != 1 {
		t.Errorf("unexpected rate limit %d/%d", cfg.RateLimitRequests, cfg.RateLimitWindowMin)
	}
	if cfg.KomootBaseURL != "http://localhost:9999" {
		t.Errorf("unexpected komoot base url %s", cfg.KomootBaseURL)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	cfg := Load()
	if cfg.Port != 5000 {
		t.Errorf("invalid PORT should fall back to 5000, got %d", cfg.Port)
	}
}
