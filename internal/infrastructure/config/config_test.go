package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/DonghunLouisLee/transaction-handler/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LOG_LEVEL", "HTTP_PORT", "HTTP_READ_TIMEOUT", "HTTP_MAX_BODY_BYTES", "FETCH_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.HTTPReadTimeout != 30*time.Second {
		t.Fatalf("expected default read timeout 30s, got %s", cfg.HTTPReadTimeout)
	}

	if cfg.HTTPMaxBodyBytes != 10485760 {
		t.Fatalf("expected default max body size 10485760, got %d", cfg.HTTPMaxBodyBytes)
	}

	if cfg.FetchTimeout != 30*time.Second {
		t.Fatalf("expected default fetch timeout 30s, got %s", cfg.FetchTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "45s")
	t.Setenv("HTTP_MAX_BODY_BYTES", "1024")
	t.Setenv("FETCH_MAX_ELAPSED_TIME", "90s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("expected logging overrides, got level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.HTTPReadTimeout != 45*time.Second {
		t.Fatalf("expected read timeout override, got %s", cfg.HTTPReadTimeout)
	}

	if cfg.HTTPMaxBodyBytes != 1024 {
		t.Fatalf("expected max body size override, got %d", cfg.HTTPMaxBodyBytes)
	}

	if cfg.FetchMaxElapsedTime != 90*time.Second {
		t.Fatalf("expected fetch elapsed time override, got %s", cfg.FetchMaxElapsedTime)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
