package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// GetEnv returns the trimmed value of key, or "" when unset.
func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// GetEnvDefault returns the value of key or def when it is unset or blank.
func GetEnvDefault(key, def string) string {
	if v := GetEnv(key); v != "" {
		return v
	}
	return def
}

// GetEnvInt parses key as an int. Invalid values are logged and replaced by def.
func GetEnvInt(key string, def int) int {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		Logger.Warn("Invalid integer environment variable, using default",
			zap.String("key", key),
			zap.String("value", v),
			zap.Int("default", def),
		)
		return def
	}
	return n
}

// GetEnvDuration parses key with time.ParseDuration ("30s", "24h").
func GetEnvDuration(key string, def time.Duration) time.Duration {
	v := GetEnv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		Logger.Warn("Invalid duration environment variable, using default",
			zap.String("key", key),
			zap.String("value", v),
			zap.Duration("default", def),
		)
		return def
	}
	return d
}
