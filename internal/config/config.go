// Package config loads service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fxola/trivia-api/internal/database"
	"github.com/fxola/trivia-api/internal/pagination"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the service configuration
type Config struct {
	HTTPAddr string
	PageSize int

	StoreDriver string
	DatabaseURL string
	Postgres    *database.PostgresConfig
	SQLitePath  string

	Redis      *database.RedisConfig
	RateLimit  int
	RateWindow time.Duration

	LogLevel string
	LogFile  string
}

// Load reads the configuration from environment variables, falling back to defaults
func Load() *Config {
	return &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		PageSize: getEnvInt("PAGE_SIZE", pagination.DefaultPageSize),

		StoreDriver: getEnv("STORE_DRIVER", DriverSQLite),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Postgres: &database.PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", "postgres"),
			DBName:   getEnv("POSTGRES_DB", "trivia"),
		},
		SQLitePath: getEnv("SQLITE_PATH", "trivia.db"),

		Redis: &database.RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RateLimit:  getEnvInt("RATE_LIMIT", 30),
		RateWindow: getEnvDuration("RATE_WINDOW", time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),
	}
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if c.Redis != nil && c.Redis.Addr != "" {
		if c.RateLimit < 1 {
			return fmt.Errorf("rate limit must be positive, got %d", c.RateLimit)
		}
		if c.RateWindow <= 0 {
			return fmt.Errorf("rate window must be positive, got %s", c.RateWindow)
		}
	}
	return nil
}

// PostgresURL returns DATABASE_URL when set, otherwise a URL built from the POSTGRES_* variables
func (c *Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.Postgres.URL()
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
