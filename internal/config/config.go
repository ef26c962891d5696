// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultDBPassword is the development Postgres password; production
// refuses to start with it.
const defaultDBPassword = "changeme"

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string `env:"APP_HOST" env-default:"127.0.0.1"`
	Port string `env:"APP_PORT" env-default:"8080"`
	Env  string `env:"APP_ENV" env-default:"development"` // "development", "production", "testing"

	// AppSecret seals stored API keys. Required in production.
	AppSecret string `env:"APP_SECRET"`

	// Database: "sqlite" (default, file at DBPath) or "postgres".
	DBDriver   string `env:"DB_DRIVER" env-default:"sqlite"`
	DBPath     string `env:"DB_PATH" env-default:"marketdash.db"`
	DBHost     string `env:"POSTGRES_HOST" env-default:"localhost"`
	DBPort     string `env:"POSTGRES_PORT" env-default:"5432"`
	DBUser     string `env:"POSTGRES_USER" env-default:"marketdash"`
	DBPassword string `env:"POSTGRES_PASSWORD" env-default:"changeme"`
	DBName     string `env:"POSTGRES_DB" env-default:"marketdash"`

	// Valkey (Redis-compatible). When ValkeyHost is set the application
	// context is stored there instead of the database.
	ValkeyHost     string `env:"VALKEY_HOST"`
	ValkeyPort     string `env:"VALKEY_PORT" env-default:"6379"`
	ValkeyPassword string `env:"VALKEY_PASSWORD"`

	// AI provider settings
	AIProvider string `env:"AI_PROVIDER" env-default:"openrouter"`

	OpenRouterKey     string `env:"OPENROUTER_API_KEY"`
	OpenRouterModel   string `env:"OPENROUTER_MODEL" env-default:"google/gemini-2.0-flash-lite-001"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" env-default:"https://openrouter.ai/api/v1"`
	OpenRouterReferer string `env:"OPENROUTER_REFERER" env-default:"http://localhost:8080"`

	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1"`

	ClaudeKey     string `env:"CLAUDE_API_KEY"`
	ClaudeModel   string `env:"CLAUDE_MODEL" env-default:"claude-sonnet-4-6"`
	ClaudeBaseURL string `env:"CLAUDE_BASE_URL" env-default:"https://api.anthropic.com"`

	GeminiKey     string `env:"GEMINI_API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" env-default:"gemini-2.0-flash-lite"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com"`

	MistralKey     string `env:"MISTRAL_API_KEY"`
	MistralModel   string `env:"MISTRAL_MODEL" env-default:"mistral-small-latest"`
	MistralBaseURL string `env:"MISTRAL_BASE_URL" env-default:"https://api.mistral.ai/v1"`

	// Image generation. The key may also be entered at runtime.
	ImageModel   string `env:"IMAGE_MODEL" env-default:"dall-e-3"`
	ImageBaseURL string `env:"IMAGE_BASE_URL"`

	// S3-compatible storage for mirrored images (optional).
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3Region    string `env:"S3_REGION" env-default:"us-east-1"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET" env-default:"marketdash-images"`
	S3PublicURL string `env:"S3_PUBLIC_URL"`
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver)
	}

	if c.Env == "production" {
		if c.AppSecret == "" {
			return errors.New("APP_SECRET must be set in production")
		}
		if c.DBDriver == "postgres" && (c.DBPassword == "" || c.DBPassword == defaultDBPassword) {
			return errors.New("POSTGRES_PASSWORD must be set in production")
		}
	}
	return nil
}

// DSN returns the connection string for the configured driver: the file
// path for sqlite, a postgres URL otherwise.
func (c *Config) DSN() string {
	if c.DBDriver != "postgres" {
		return c.DBPath
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ValkeyAddr returns the Valkey host:port.
func (c *Config) ValkeyAddr() string {
	return net.JoinHostPort(strings.TrimSpace(c.ValkeyHost), c.ValkeyPort)
}

// UseValkey reports whether the application context is kept in Valkey.
func (c *Config) UseValkey() bool {
	return strings.TrimSpace(c.ValkeyHost) != ""
}
