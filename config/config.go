// Package config handles loading application configuration from environment
// variables via viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
	JwtSecretKey   string
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ConnectionString returns a lib/pq keyword/value connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	// NewRelicLicenseKey enables request instrumentation when set.
	NewRelicLicenseKey string
}

// Load reads configuration from environment variables, applying defaults
// suitable for local development.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "splitmate")
	v.SetDefault("DB_SSL_MODE", "disable")

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			AllowedOrigins: v.GetStringSlice("ALLOWED_ORIGINS"),
			JwtSecretKey:   v.GetString("JWT_SECRET_KEY"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		NewRelicLicenseKey: v.GetString("NEW_RELIC_LICENSE_KEY"),
	}

	if cfg.Server.JwtSecretKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY is required")
	}

	return cfg, nil
}
