package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the rate limit for one endpoint. A Path ending in "/"
// matches by prefix, so "/api/applications/" covers the item routes.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per window
	Window time.Duration
	Burst  int           // burst capacity, defaults to Limit
}

// LoadConfig builds the limiter configuration from environment variables:
// RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT, RATE_LIMIT_DEFAULT_WINDOW,
// RATE_LIMIT_CLEANUP_INTERVAL, RATE_LIMIT_WHITELIST, RATE_LIMIT_BLACKLIST.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseClientList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseClientList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint limits. LLM-backed
// endpoints get the tightest budgets since every request costs model
// calls; tracker writes sit in a moderate tier; reads fall through to the
// default limit; /health is unlimited via the matcher.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// LLM-backed operations
		{Path: "/api/tailor", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/api/research", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/api/agent/run", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/api/agent/run/stream", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/api/ask", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/api/messages", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/api/search", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},

		// Account creation and login
		{Path: "/auth/register", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},

		// Tracker writes
		{Path: "/api/applications", Method: "POST", Limit: 100, Window: time.Minute, Burst: 20},
		{Path: "/api/applications/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 20},
		{Path: "/api/applications/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 20},
		{Path: "/api/applications/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 20},
		{Path: "/api/contacts", Method: "POST", Limit: 100, Window: time.Minute, Burst: 20},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// parseClientList parses a comma-separated client list into a set.
func parseClientList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			result[entry] = true
		}
	}
	return result
}
