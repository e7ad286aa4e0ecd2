// Package config reads process configuration from the environment, with an
// optional .env file loaded first.
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rusq/osenv/v2"
)

// Config is the configuration shared by every binary. Each binary validates
// the subset it needs.
type Config struct {
	Port        string
	AgentPort   string
	Env         string
	LogLevel    string
	DatabaseURL string
	RedisAddr   string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	SessionSecret      string
	FrontendURL        string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	BackendURL    string

	SyncConcurrency int
}

// Load reads the configuration. A missing .env file is not an error.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("error loading .env file", "error", err)
	}

	return &Config{
		Port:        osenv.Value("PORT", "4000"),
		AgentPort:   osenv.Value("AGENT_PORT", "3001"),
		Env:         osenv.Value("APP_ENV", "development"),
		LogLevel:    osenv.Value("LOG_LEVEL", "info"),
		DatabaseURL: osenv.Secret("DATABASE_URL", ""),
		RedisAddr:   osenv.Value("REDIS_ADDR", ""),

		GoogleClientID:     osenv.Value("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: osenv.Secret("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  osenv.Value("GOOGLE_REDIRECT_URI", ""),
		SessionSecret:      osenv.Secret("SESSION_SECRET", "your-secret-key"),
		FrontendURL:        strings.TrimRight(osenv.Value("FRONTEND_URL", "http://localhost:5173"), "/"),

		OpenAIAPIKey:  osenv.Secret("OPENAI_API_KEY", ""),
		OpenAIBaseURL: osenv.Value("OPENAI_BASE_URL", ""),
		OpenAIModel:   osenv.Value("OPENAI_MODEL", "gpt-4"),
		BackendURL:    strings.TrimRight(osenv.Value("BACKEND_URL", "http://localhost:4000"), "/"),

		SyncConcurrency: positiveInt(osenv.Value("SYNC_CONCURRENCY", ""), 4),
	}
}

// Production reports whether the process runs in production mode.
func (c *Config) Production() bool {
	return strings.EqualFold(c.Env, "production")
}

// ValidateServer checks the settings the backend cannot start without.
func (c *Config) ValidateServer() error {
	var missing []string
	if c.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.GoogleClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if c.GoogleRedirectURI == "" {
		missing = append(missing, "GOOGLE_REDIRECT_URI")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// ValidateAgent checks the settings the agent service cannot start without.
func (c *Config) ValidateAgent() error {
	if c.OpenAIAPIKey == "" {
		return errors.New("missing required environment variable: OPENAI_API_KEY")
	}
	return nil
}

// ValidateWorker checks the settings the background worker cannot start without.
func (c *Config) ValidateWorker() error {
	var missing []string
	if c.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.GoogleClientID == "" || c.GoogleClientSecret == "" || c.GoogleRedirectURI == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID/GOOGLE_CLIENT_SECRET/GOOGLE_REDIRECT_URI")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
