package config

import (
	"os"
	"strconv"

	"gostop/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Simulation SimulationConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds database connection settings. Persistence is
// optional; an empty URL disables it.
type DatabaseConfig struct {
	URL string
}

// SimulationConfig holds defaults for sweeps started without explicit
// parameters
type SimulationConfig struct {
	DefaultN      int
	DefaultTrials int
	BaseSeed      int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Simulation: SimulationConfig{
			DefaultN:      getEnvIntOrDefault("DEFAULT_N", 100),
			DefaultTrials: getEnvIntOrDefault("DEFAULT_TRIALS", 10000),
			BaseSeed:      getEnvInt64OrDefault("BASE_SEED", 42),
		},
	}

	if config.Simulation.DefaultN < 1 {
		return nil, errors.ConfigInvalid("DEFAULT_N must be at least 1")
	}
	if config.Simulation.DefaultTrials < 1 {
		return nil, errors.ConfigInvalid("DEFAULT_TRIALS must be at least 1")
	}

	return config, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
