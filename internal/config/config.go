package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"spending/internal/core"
)

type Config struct {
	// HTTP Server
	Port           string
	MaxUploadBytes int64

	// Dashboard
	MonthlyIncome string

	// Upload cache
	UploadCacheSize      int
	UploadTTL            time.Duration
	CacheCleanupInterval time.Duration
	UploadRatePerMinute  int

	LogLevel string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),

		MonthlyIncome: getEnv("MONTHLY_INCOME", "1150"),

		UploadCacheSize:      getEnvInt("UPLOAD_CACHE_SIZE", 64),
		UploadTTL:            getEnvDuration("UPLOAD_TTL", 30*time.Minute),
		CacheCleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", 5*time.Minute),
		UploadRatePerMinute:  getEnvInt("UPLOAD_RATE_PER_MINUTE", 30),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if _, err := core.ParseAmount(c.MonthlyIncome); err != nil {
		errors = append(errors, fmt.Sprintf("invalid monthly income '%s': must be a decimal number", c.MonthlyIncome))
	}

	if c.MaxUploadBytes < 1024 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at least 1024 bytes", c.MaxUploadBytes))
	} else if c.MaxUploadBytes > 100<<20 {
		errors = append(errors, fmt.Sprintf("invalid max upload size %d: must be at most 100MiB", c.MaxUploadBytes))
	}

	if c.UploadCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid upload cache size %d: must be at least 1", c.UploadCacheSize))
	} else if c.UploadCacheSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid upload cache size %d: must be at most 10000", c.UploadCacheSize))
	}

	if c.UploadTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid upload TTL %v: must be at least 1 minute", c.UploadTTL))
	} else if c.UploadTTL > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid upload TTL %v: must be at most 24 hours", c.UploadTTL))
	}

	if c.CacheCleanupInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache cleanup interval %v: must be at least 1 second", c.CacheCleanupInterval))
	}

	if c.UploadRatePerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid upload rate %d: must be at least 1 per minute", c.UploadRatePerMinute))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// DefaultIncome returns the monthly income pre-filled in the dashboard form.
// Call Validate first; an unparsable value yields zero.
func (c *Config) DefaultIncome() decimal.Decimal {
	d, err := core.ParseAmount(c.MonthlyIncome)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
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
