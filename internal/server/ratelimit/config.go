package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadConfig reads the limiter settings from environment variables,
// falling back to the built-in endpoint tiers.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules tiers the API by cost: document processing is the
// expensive path, login gets brute-force protection, requirement writes
// sit in between, and reads ride the default limit.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/process", Method: "POST", PerWindow: 30, Window: time.Hour, Burst: 5},
		{Path: "/process/send", Method: "POST", PerWindow: 30, Window: time.Hour, Burst: 5},
		{Path: "/process/preview", Method: "POST", PerWindow: 120, Window: time.Hour, Burst: 10},

		{Path: "/auth/login", Method: "POST", PerWindow: 10, Window: time.Minute, Burst: 3},

		{Path: "/requirements", Method: "POST", PerWindow: 100, Window: time.Minute, Burst: 10},
		{Path: "/requirements/", Method: "PUT", PerWindow: 100, Window: time.Minute, Burst: 10},
		{Path: "/requirements/", Method: "DELETE", PerWindow: 100, Window: time.Minute, Burst: 10},
	}
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// clientSet parses a comma-separated client list into a lookup set.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			set[entry] = true
		}
	}
	return set
}
