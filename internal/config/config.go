package config

import (
	"os"
	"strconv"

	"posthoc/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Engine EngineConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds table input settings for the CLI
type DataConfig struct {
	TableFile string
	Sheet     string
}

// EngineConfig holds analysis defaults, overridable per request
type EngineConfig struct {
	Test       string
	Correction string
	Digits     int
	Parallel   bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Data: DataConfig{
			TableFile: getEnvOrDefault("TABLE_FILE", ""),
			Sheet:     getEnvOrDefault("TABLE_SHEET", "Sheet1"),
		},
		Engine: EngineConfig{
			Test:       getEnvOrDefault("POSTHOC_TEST", "chi-square"),
			Correction: getEnvOrDefault("POSTHOC_CORRECTION", "fdr"),
			Digits:     getEnvIntOrDefault("POSTHOC_DIGITS", 4),
			Parallel:   getEnvBoolOrDefault("POSTHOC_PARALLEL", false),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Engine.Digits < 0 || config.Engine.Digits > 15 {
		return errors.ConfigInvalid("POSTHOC_DIGITS must be between 0 and 15")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
