// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Input policies for malformed form values.
const (
	InputPolicyCoerce = "coerce"
	InputPolicyReject = "reject"
)

type Config struct {
	// HTTP Server
	Port           int
	AllowedOrigins []string

	// Presets
	PresetBackend string
	DBPath        string
	PresetsFile   string

	// Logging
	LogLevel  string
	LogFormat string

	// Projection cache
	CacheSize       int
	CacheTTL        time.Duration
	CleanupInterval time.Duration

	// Calculator
	InputPolicy   string
	DefaultLocale string
}

// LoadEnvFile reads .env style files into the process environment.
// Variables already set win. Missing files are ignored.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func Load() *Config {
	return &Config{
		Port:           getEnvInt("PORT", 8080),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),

		PresetBackend: getEnv("PRESET_BACKEND", "sqlite"),
		DBPath:        getEnv("SQLITE_DB_PATH", "accrual.db"),
		PresetsFile:   getEnv("PRESETS_FILE", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		CacheSize:       getEnvInt("CACHE_SIZE", 1024),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		CleanupInterval: getEnvDuration("CACHE_CLEANUP_INTERVAL", time.Minute),

		InputPolicy:   getEnv("INPUT_POLICY", InputPolicyCoerce),
		DefaultLocale: getEnv("DEFAULT_LOCALE", "en"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.Port < 1 || c.Port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Port))
	}

	switch c.PresetBackend {
	case "memory":
	case "sqlite":
		if c.DBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid preset backend '%s': must be one of [memory sqlite]", c.PresetBackend))
	}

	if c.PresetsFile != "" {
		if _, err := os.Stat(c.PresetsFile); err != nil {
			errors = append(errors, fmt.Sprintf("presets file %s is not readable: %v", c.PresetsFile, err))
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of [debug info warn error]", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be 'text' or 'json'", c.LogFormat))
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}
	if c.CleanupInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache cleanup interval %v: must be at least 1 second", c.CleanupInterval))
	}

	if c.InputPolicy != InputPolicyCoerce && c.InputPolicy != InputPolicyReject {
		errors = append(errors, fmt.Sprintf("invalid input policy '%s': must be '%s' or '%s'",
			c.InputPolicy, InputPolicyCoerce, InputPolicyReject))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
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

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
