// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/chronax-dev/chronax/internal/domain"
)

// Config holds application configuration
type Config struct {
	Port     int
	LogLevel string
	DevMode  bool

	// DetectorTimeout overrides the per-detector budget of the
	// change-point ensemble when positive.
	DetectorTimeout time.Duration
}

// Load reads configuration from the environment, after loading a .env
// file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("CHRONAX_PORT", 8080),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		DetectorTimeout: getEnvAsDuration("DETECTOR_TIMEOUT", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return domain.NewValidationError("port must be in (0, 65535], got %d", c.Port)
	}
	if c.DetectorTimeout < 0 {
		return domain.NewValidationError("detector timeout must be non-negative")
	}
	return nil
}

// AnalysisConfig returns the canonical analysis defaults for a series
// type with the environment overrides applied.
func (c *Config) AnalysisConfig(t domain.SeriesType) domain.AnalysisConfig {
	cfg := domain.ConfigFor(t)
	if c.DetectorTimeout > 0 {
		cfg.DetectorTimeout = c.DetectorTimeout
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
