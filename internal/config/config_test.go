package config

import (
	"testing"
	"time"

	"github.com/Hades1710/ThirdWave/internal/models"
)

// setRequiredEnv sets the minimum configuration Load needs to validate.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SMTP_USERNAME", "alerts@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("RICH_CHANNEL_URL", "http://localhost:8000")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RateLimit.Ceiling != 5 {
		t.Errorf("expected ceiling 5, got %d", cfg.RateLimit.Ceiling)
	}
	if cfg.RateLimit.Window != time.Hour {
		t.Errorf("expected window 1h, got %v", cfg.RateLimit.Window)
	}
	if len(cfg.Alerts.DefaultRoles) != 2 ||
		cfg.Alerts.DefaultRoles[0] != models.RelationshipCounselor ||
		cfg.Alerts.DefaultRoles[1] != models.RelationshipParent {
		t.Errorf("expected default roles [counselor parent], got %v", cfg.Alerts.DefaultRoles)
	}
	if !cfg.RichChannel.Enabled || cfg.RichChannel.Timeout != 15*time.Second {
		t.Errorf("unexpected rich channel config: %+v", cfg.RichChannel)
	}
	if cfg.SMTP.From != "alerts@example.com" {
		t.Errorf("expected From to default to the SMTP username, got %s", cfg.SMTP.From)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("RATE_LIMIT_CEILING", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")
	t.Setenv("DEFAULT_ROLES", "Friend, Parent")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.RateLimit.Ceiling != 10 || cfg.RateLimit.Window != 30*time.Minute {
		t.Errorf("unexpected rate limit config: %+v", cfg.RateLimit)
	}
	if len(cfg.Alerts.DefaultRoles) != 2 ||
		cfg.Alerts.DefaultRoles[0] != models.RelationshipFriend ||
		cfg.Alerts.DefaultRoles[1] != models.RelationshipParent {
		t.Errorf("expected roles [friend parent], got %v", cfg.Alerts.DefaultRoles)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("expected text log format, got %s", cfg.Logging.Format)
	}
}

func TestLoad_AlertsDisabledSkipsSMTPValidation(t *testing.T) {
	t.Setenv("ALERTS_ENABLED", "false")
	t.Setenv("RICH_CHANNEL_ENABLED", "false")

	if _, err := Load(); err != nil {
		t.Errorf("expected disabled alerts to pass validation, got %v", err)
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero ceiling", "RATE_LIMIT_CEILING", "0"},
		{"window under a minute", "RATE_LIMIT_WINDOW", "10s"},
		{"bad server port", "SERVER_PORT", "70000"},
		{"smtp username without @", "SMTP_USERNAME", "not-an-address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Errorf("expected validation error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_RichChannelNeedsURL(t *testing.T) {
	t.Setenv("SMTP_USERNAME", "alerts@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("RICH_CHANNEL_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when rich channel is enabled without a URL")
	}
}
