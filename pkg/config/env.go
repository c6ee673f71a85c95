// Package config provides helpers for reading configuration from environment
// variables. Parse failures never abort startup: the helpers log a warning and
// fall back to the default so a typo in one variable cannot take the service
// down.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// GetEnvString returns the environment variable's value, or defaultValue when
// unset or empty.
func GetEnvString(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvInt returns the environment variable parsed as an integer.
// Unset, empty, or unparseable values yield the default with a warning.
func GetEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		warnInvalid(key, raw, err)
		return defaultValue
	}
	return value
}

// GetEnvFloat returns the environment variable parsed as a float64.
// Unset, empty, or unparseable values yield the default with a warning.
func GetEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		warnInvalid(key, raw, err)
		return defaultValue
	}
	return value
}

// GetEnvBool returns the environment variable parsed as a boolean, accepting
// the strconv.ParseBool forms ("1", "t", "true", "0", "f", "false", any case).
// Unset, empty, or unparseable values yield the default with a warning.
func GetEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		warnInvalid(key, raw, err)
		return defaultValue
	}
	return value
}

// GetEnvDuration returns the environment variable parsed as a Go duration
// string ("500ms", "30s", "1h"). Unset, empty, or unparseable values yield
// the default with a warning.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		warnInvalid(key, raw, err)
		return defaultValue
	}
	return value
}

// GetEnvStringList returns the environment variable split on commas with
// whitespace trimmed and empty elements dropped.
func GetEnvStringList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func warnInvalid(key, raw string, err error) {
	slog.Warn("invalid value for environment variable, using default",
		slog.String("key", key),
		slog.String("value", raw),
		slog.String("error", err.Error()))
}
