package ratelimit

import "strings"

// MatchEndpoint matches a request path and method to an endpoint rule.
// Returns nil when no rule matches. Paths ending in "/" match by prefix
// (e.g. "/jobs/" matches "/jobs/{id}/applications").
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never limited.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") &&
			strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
