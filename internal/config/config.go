package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Hades1710/ThirdWave/internal/models"
)

type Config struct {
	Server      ServerConfig
	Alerts      AlertsConfig
	RichChannel RichChannelConfig
	RateLimit   RateLimitConfig
	SMTP        SMTPConfig
	DB          DatabaseConfig
	Logging     LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type AlertsConfig struct {
	Enabled      bool
	DefaultRoles []models.Relationship
}

type RichChannelConfig struct {
	BaseURL string
	Enabled bool
	Timeout time.Duration
}

type RateLimitConfig struct {
	Ceiling int           // allowed dispatch attempts per user per window
	Window  time.Duration // rolling window
	HTTPRPS int           // global request/s ceiling for the HTTP surface
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Alerts: AlertsConfig{
			Enabled:      getEnvBool("ALERTS_ENABLED", true),
			DefaultRoles: getEnvRoles("DEFAULT_ROLES", models.DefaultRelationships()),
		},
		RichChannel: RichChannelConfig{
			BaseURL: getEnv("RICH_CHANNEL_URL", ""),
			Enabled: getEnvBool("RICH_CHANNEL_ENABLED", true),
			Timeout: getEnvDuration("RICH_CHANNEL_TIMEOUT", 15*time.Second),
		},
		RateLimit: RateLimitConfig{
			Ceiling: getEnvInt("RATE_LIMIT_CEILING", 5),
			Window:  getEnvDuration("RATE_LIMIT_WINDOW", time.Hour),
			HTTPRPS: getEnvInt("HTTP_RATE_LIMIT_RPS", 5),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("DEFAULT_FROM", ""),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/alerts.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.RateLimit.Ceiling < 1 {
		return fmt.Errorf("rate limit ceiling must be at least 1, got %d", c.RateLimit.Ceiling)
	}
	if c.RateLimit.Window < time.Minute {
		return fmt.Errorf("rate limit window must be at least 1 minute")
	}

	if len(c.Alerts.DefaultRoles) == 0 {
		return fmt.Errorf("DEFAULT_ROLES must name at least one relationship")
	}

	if c.RichChannel.Enabled && c.RichChannel.BaseURL == "" {
		return fmt.Errorf("RICH_CHANNEL_URL must be set when the rich channel is enabled")
	}

	if c.Alerts.Enabled {
		if c.SMTP.Username == "" || c.SMTP.Password == "" {
			return fmt.Errorf("SMTP_USERNAME and SMTP_PASSWORD must be set when alerts are enabled")
		}
		if !strings.Contains(c.SMTP.Username, "@") {
			return fmt.Errorf("SMTP_USERNAME must be a valid email address")
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvRoles(key string, fallback []models.Relationship) []models.Relationship {
	if val := os.Getenv(key); val != "" {
		if roles := models.ParseRelationships(val); len(roles) > 0 {
			return roles
		}
	}
	return fallback
}
