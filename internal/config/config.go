// Package config loads pokesearch settings from the environment and an optional .env file
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/pokesearch/internal/clients/pokeapi"
	"github.com/KirkDiggler/pokesearch/internal/errors"
	"github.com/KirkDiggler/pokesearch/internal/orchestrators/lookup"
)

// Config is the full runtime configuration
type Config struct {
	API     APIConfig
	Lookup  LookupConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

// APIConfig configures the upstream client
type APIConfig struct {
	BaseURL        string
	HTTPTimeout    time.Duration
	RetryAttempts  int
	RetryBaseDelay time.Duration
}

// LookupConfig configures aggregation and suggestions
type LookupConfig struct {
	MaxConcurrency int
	RosterLimit    int
	RosterTTL      time.Duration
}

// RedisConfig selects the Redis roster store. An empty Addr keeps the roster in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level string
	File  string
}

// Load reads .env files (when present) then the environment
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{
		API: APIConfig{
			BaseURL:        getEnv("POKESEARCH_BASE_URL", pokeapi.DefaultBaseURL),
			HTTPTimeout:    getEnvDuration("POKESEARCH_HTTP_TIMEOUT", pokeapi.DefaultHTTPTimeout),
			RetryAttempts:  getEnvInt("POKESEARCH_RETRY_ATTEMPTS", 1),
			RetryBaseDelay: getEnvDuration("POKESEARCH_RETRY_BASE_DELAY", pokeapi.DefaultRetryBaseDelay),
		},
		Lookup: LookupConfig{
			MaxConcurrency: getEnvInt("POKESEARCH_MAX_CONCURRENCY", lookup.DefaultMaxConcurrency),
			RosterLimit:    getEnvInt("POKESEARCH_ROSTER_LIMIT", lookup.DefaultRosterLimit),
			RosterTTL:      getEnvDuration("POKESEARCH_ROSTER_TTL", lookup.DefaultRosterTTL),
		},
		Redis: RedisConfig{
			Addr:     getEnv("POKESEARCH_REDIS_ADDR", ""),
			Password: getEnv("POKESEARCH_REDIS_PASSWORD", ""),
			DB:       getEnvInt("POKESEARCH_REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("POKESEARCH_BASE_URL", c.API.BaseURL, vb)
	if c.API.HTTPTimeout <= 0 {
		vb.Field("POKESEARCH_HTTP_TIMEOUT", "must be positive")
	}
	errors.ValidatePositive("POKESEARCH_RETRY_ATTEMPTS", c.API.RetryAttempts, vb)
	if c.API.RetryBaseDelay < 0 {
		vb.Field("POKESEARCH_RETRY_BASE_DELAY", "cannot be negative")
	}
	errors.ValidatePositive("POKESEARCH_MAX_CONCURRENCY", c.Lookup.MaxConcurrency, vb)
	errors.ValidatePositive("POKESEARCH_ROSTER_LIMIT", c.Lookup.RosterLimit, vb)
	if c.Lookup.RosterTTL < 0 {
		vb.Field("POKESEARCH_ROSTER_TTL", "cannot be negative")
	}
	if c.Redis.DB < 0 {
		vb.Field("POKESEARCH_REDIS_DB", "cannot be negative")
	}

	return vb.Build()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
