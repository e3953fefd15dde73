// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"APP_PORT" envDefault:"8080"`
	Env  string `env:"APP_ENV" envDefault:"development"` // "development", "production", "testing"

	// Allowed cross-origin hosts for the JSON API. In development an empty
	// list means "allow everything"; in production the list is enforced.
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// PostgreSQL connection
	DBHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	DBUser     string `env:"POSTGRES_USER" envDefault:"postforge"`
	DBPassword string `env:"POSTGRES_PASSWORD" envDefault:"changeme"`
	DBName     string `env:"POSTGRES_DB" envDefault:"postforge"`

	// Valkey (Redis-compatible cache)
	ValkeyHost     string `env:"VALKEY_HOST" envDefault:"localhost"`
	ValkeyPort     string `env:"VALKEY_PORT" envDefault:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// Gemini AI service
	GeminiKey        string `env:"GEMINI_API_KEY"`
	GeminiModel      string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	GeminiImageModel string `env:"GEMINI_MODEL_IMAGE" envDefault:"gemini-2.5-flash-image"`
	GeminiBaseURL    string `env:"GEMINI_BASE_URL"`

	// Social-scheduling vendor (GoHighLevel) OAuth app settings.
	GHLClientID     string `env:"GHL_CLIENT_ID"`
	GHLClientSecret string `env:"GHL_CLIENT_SECRET"`
	GHLRedirectURI  string `env:"GHL_REDIRECT_URI"`
	GHLBaseURL      string `env:"GHL_BASE_URL"`

	// S3-compatible object storage for generated images (optional).
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" envDefault:"postforge-media"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config parse: %w", err)
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AllowedOrigins returns the cross-origin hosts the API accepts. In
// development with no explicit list, all origins are allowed.
func (c *Config) AllowedOrigins() []string {
	if len(c.CORSOrigins) == 0 && c.IsDev() {
		return []string{"*"}
	}
	return c.CORSOrigins
}
