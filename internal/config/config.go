package config

import (
	"os"
	"strconv"
	"time"

	"edaviz/internal"
	"edaviz/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	API       APIConfig
	Upload    UploadConfig
	Session   SessionConfig
	Profiling ProfilingConfig
	LogLevel  internal.LogLevel
}

// ServerConfig holds page server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// APIConfig holds JSON API settings
type APIConfig struct {
	Port string
}

// UploadConfig bounds what a single upload may hold
type UploadConfig struct {
	MaxBytes int64
	MaxRows  int
}

// SessionConfig controls the in-memory session store
type SessionConfig struct {
	TTL        time.Duration
	CookieName string
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	level, ok := internal.ParseLogLevel(getEnvOrDefault("LOG_LEVEL", "INFO"))
	if !ok {
		return nil, errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
	}

	config := &Config{
		Server:    *loadServerConfig(),
		API:       APIConfig{Port: getEnvOrDefault("API_PORT", "8081")},
		Upload:    *loadUploadConfig(),
		Session:   *loadSessionConfig(),
		Profiling: *loadProfilingConfig(),
		LogLevel:  level,
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadUploadConfig() *UploadConfig {
	return &UploadConfig{
		MaxBytes: getEnvInt64OrDefault("UPLOAD_MAX_BYTES", 50<<20),
		MaxRows:  getEnvIntOrDefault("UPLOAD_MAX_ROWS", 1_000_000),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		TTL:        getEnvDurationOrDefault("SESSION_TTL", 30*time.Minute),
		CookieName: getEnvOrDefault("SESSION_COOKIE", "eda_session"),
	}
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_BYTES must be positive")
	}
	if config.Upload.MaxRows <= 0 {
		return errors.ConfigInvalid("UPLOAD_MAX_ROWS must be positive")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if config.Session.CookieName == "" {
		return errors.ConfigInvalid("SESSION_COOKIE is required")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
