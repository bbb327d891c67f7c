package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr  string
	LogLevel  string
	LogFormat string // json|console

	// Optional. When set, every relay call is recorded in Postgres and
	// GET /api/generations is mounted.
	DatabaseURL string

	// Provider. The key is never logged or echoed back to callers.
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	UpstreamTimeout time.Duration
}

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required")

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:  getenv("HTTP_ADDR", ":8080"),
		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(getenv("LOG_FORMAT", "json")),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		OpenAIAPIKey:  strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIBaseURL: getenv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
	}

	timeout, err := time.ParseDuration(getenv("UPSTREAM_TIMEOUT", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("UPSTREAM_TIMEOUT must be positive, got %s", timeout)
	}
	cfg.UpstreamTimeout = timeout

	if cfg.OpenAIAPIKey == "" {
		return Config{}, ErrMissingAPIKey
	}
	return cfg, nil
}

// HistoryEnabled reports whether generation history should be persisted.
func (c Config) HistoryEnabled() bool { return c.DatabaseURL != "" }

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
