// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the server configuration, sourced from environment variables.
type Config struct {
	Port        int
	DatabaseURL string // PostgreSQL connection URL (required)
	RedisURL    string // Redis connection URL for counters (optional)
	GeminiKey   string // Gemini API key for interview practice (optional)
	JWT         *JWTConfig
}

// Load reads configuration from the environment.
// DATABASE_URL and JWT_SECRET are required; everything else has a default
// or is optional.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        8080,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		cfg.Port = port
	}

	jwtCfg, err := NewJWTConfig()
	if err != nil {
		return nil, err
	}
	cfg.JWT = jwtCfg

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: PORT must be between 1 and 65535, got: %d", c.Port)
	}
	return nil
}
