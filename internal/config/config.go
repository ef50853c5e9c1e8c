// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles,
// with an optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// DefaultUploadcarePublicKey is the public upload key the storefront has always sent.
const DefaultUploadcarePublicKey = "8d5189298f8465f7079f"

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"5000"`

	// Document store and identity directory (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Geolocation lookup cache (Redis). Empty disables caching.
	RedisURL string `env:"REDIS_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// TrustProxy honors X-Forwarded-For / X-Real-IP from the upstream proxy.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"true"`

	// Comma-separated list of allowed origins; "*" allows any origin.
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`

	// Request body limits in bytes
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
	MaxUploadSize      int64 `env:"MAX_UPLOAD_SIZE" envDefault:"20971520"`

	// Image hosting (Cloudinary)
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME,required"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY,required"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET,required"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"hyjain-products"`

	// Generic file hosting (Uploadcare)
	UploadcareUploadURL string `env:"UPLOADCARE_UPLOAD_URL" envDefault:"https://upload.uploadcare.com/base/"`
	UploadcarePublicKey string `env:"UPLOADCARE_PUBLIC_KEY" envDefault:"8d5189298f8465f7079f"`

	// Mail relay (SMTP)
	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	MailUsername string `env:"MAIL_USERNAME,required"`
	MailPassword string `env:"MAIL_PASSWORD,required"`
	MailFromName string `env:"MAIL_FROM_NAME" envDefault:"Hyjain"`

	// Brand shown in email subjects and sign-offs, independent of the From name.
	BrandName string `env:"BRAND_NAME" envDefault:"Hyjain"`

	// Geolocation enrichment
	IPEchoURL       string        `env:"IP_ECHO_URL" envDefault:"https://api.ipify.org?format=json"`
	GeoLookupURL    string        `env:"GEO_LOOKUP_URL" envDefault:"http://ip-api.com/json"`
	GeoCacheTTL     time.Duration `env:"GEO_CACHE_TTL" envDefault:"24h"`
	OutboundTimeout time.Duration `env:"OUTBOUND_TIMEOUT" envDefault:"15s"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// UsesDefaultUploadcareKey reports whether the built-in public upload key is in use.
func (c *Config) UsesDefaultUploadcareKey() bool {
	return c.UploadcarePublicKey == DefaultUploadcarePublicKey
}

// Load reads an optional .env file, then parses environment variables into a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv paths. Missing files are skipped;
// variables already present in the environment are never overridden.
func LoadFiles(paths ...string) (*Config, error) {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
