package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limiting rule for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching for paths ending in "/")
	Method string        // HTTP method
	Limit  int           // Maximum requests per window; <= 0 means unlimited
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Allowlist:       parseIPList(os.Getenv("RATE_LIMIT_ALLOWLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Allowlist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultEndpointConfigs returns the per-endpoint rules. LLM-backed practice
// endpoints carry the strictest limits; writes sit in a middle tier; reads
// fall through to the default.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: LLM-backed operations
		{Path: "/practice/", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},

		// Tier 2: write operations
		{Path: "/jobs", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "PATCH", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/applications/", Method: "PATCH", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/companies/", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/candidates/", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},

		// Tier 3: reads fall through to the default limit.
		// Health checks are unlimited via the matcher's special case.
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
