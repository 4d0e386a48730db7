// Package common provides shared utilities for Horizon
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Horizon
type Config struct {
	Environment string         `toml:"environment"`
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Clients     ClientsConfig  `toml:"clients"`
	Forecast    ForecastConfig `toml:"forecast"`
	Logging     LoggingConfig  `toml:"logging"`
	Auth        AuthConfig     `toml:"auth"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration for the 2 storage areas.
type StorageConfig struct {
	Internal AreaConfig `toml:"internal"` // User accounts + system KV (BadgerHold)
	User     AreaConfig `toml:"user"`     // Portfolio documents + forecast snapshots (BadgerHold)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"` // requests per second to the research provider
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *GeminiConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 90 * time.Second
	}
	return d
}

// ForecastConfig holds defaults for forecast runs.
type ForecastConfig struct {
	DefaultCurrency string `toml:"default_currency"`
	DefaultYears    int    `toml:"default_years"`
}

// AuthConfig holds authentication configuration for JWT issuance/validation.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level    string   `toml:"level"`
	Format   string   `toml:"format"`
	Outputs  []string `toml:"outputs"`
	FilePath string   `toml:"file_path"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8090,
		},
		Storage: StorageConfig{
			Internal: AreaConfig{Path: "data/internal"},
			User:     AreaConfig{Path: "data/user"},
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model:     "gemini-2.0-flash",
				RateLimit: 5,
				Timeout:   "90s",
			},
		},
		Forecast: ForecastConfig{
			DefaultCurrency: "INR",
			DefaultYears:    10,
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "console",
			Outputs:  []string{"console"},
			FilePath: "./logs/horizon.log",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)
	validateForecastDefaults(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("HORIZON_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("HORIZON_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("HORIZON_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("HORIZON_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("HORIZON_DATA_PATH"); path != "" {
		config.Storage.Internal.Path = filepath.Join(path, "internal")
		config.Storage.User.Path = filepath.Join(path, "user")
	}

	if v := os.Getenv("HORIZON_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("HORIZON_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}

	if v := os.Getenv("HORIZON_GEMINI_MODEL"); v != "" {
		config.Clients.Gemini.Model = v
	}

	if cur := os.Getenv("HORIZON_DEFAULT_CURRENCY"); cur != "" {
		config.Forecast.DefaultCurrency = strings.ToUpper(cur)
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

// ResolveAPIKey resolves an API key from environment, the system KV store, or fallback
func ResolveAPIKey(getKV func(key string) (string, error), name string, fallback string) (string, error) {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key": {"GEMINI_API_KEY", "HORIZON_GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	// Check environment variables first (highest priority)
	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue, nil
			}
		}
	}

	// System KV store (medium priority)
	if getKV != nil {
		if apiKey, err := getKV(name); err == nil && apiKey != "" {
			return apiKey, nil
		}
	}

	// Fallback (lowest priority)
	if fallback != "" {
		return fallback, nil
	}

	return "", fmt.Errorf("API key '%s' not found in environment or store", name)
}

// validateForecastDefaults clamps forecast defaults into the supported range.
func validateForecastDefaults(config *Config) {
	if config.Forecast.DefaultYears < 1 || config.Forecast.DefaultYears > 50 {
		config.Forecast.DefaultYears = 10
	}
	if strings.TrimSpace(config.Forecast.DefaultCurrency) == "" {
		config.Forecast.DefaultCurrency = "INR"
	}
	config.Forecast.DefaultCurrency = strings.ToUpper(config.Forecast.DefaultCurrency)
}
