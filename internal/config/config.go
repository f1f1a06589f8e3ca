package config

import (
	"os"
	"strconv"

	"merchops/internal/errors"
)

// DataSource selects where the dataset snapshot comes from.
type DataSource string

const (
	SourceFixture  DataSource = "fixture"
	SourceJSON     DataSource = "json"
	SourceExcel    DataSource = "excel"
	SourcePostgres DataSource = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Logging LoggingConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds data source settings. Exactly one source is active; the
// path or URL it needs must be present for that source.
type DataConfig struct {
	Source      DataSource
	JSONDir     string
	ExcelFile   string
	DatabaseURL string
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Data: DataConfig{
			Source:      DataSource(getEnvOrDefault("DATA_SOURCE", string(SourceFixture))),
			JSONDir:     getEnvOrDefault("DATA_JSON_DIR", ""),
			ExcelFile:   getEnvOrDefault("EXCEL_FILE", ""),
			DatabaseURL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Pretty: getEnvBoolOrDefault("LOG_PRETTY", true),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	switch config.Data.Source {
	case SourceFixture:
	case SourceJSON:
		if config.Data.JSONDir == "" {
			return errors.ConfigInvalid("DATA_JSON_DIR is required for the json data source")
		}
	case SourceExcel:
		if config.Data.ExcelFile == "" {
			return errors.ConfigInvalid("EXCEL_FILE is required for the excel data source")
		}
	case SourcePostgres:
		if config.Data.DatabaseURL == "" {
			return errors.ConfigInvalid("DATABASE_URL is required for the postgres data source")
		}
	default:
		return errors.ConfigInvalid("DATA_SOURCE must be one of fixture, json, excel, postgres")
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
