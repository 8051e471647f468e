package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters, loaded from environment
// variables (main loads .env first via godotenv).
type Config struct {
	Port       string        `env:"PORT" envDefault:"8080"`
	Env        string        `env:"APP_ENV" envDefault:"development"`
	LogLevel   int           `env:"LOG_LEVEL" envDefault:"0"`
	CORSOrigin string        `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`
	Database   Database      `envPrefix:"DATABASE_"`
	JWT        JWT           `envPrefix:"JWT_"`
	AI         AI            `envPrefix:"GEMINI_"`
	RateLimit  int           `env:"RATE_LIMIT" envDefault:"60"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
}

// Database contains connection parameters.
type Database struct {
	DSN string `env:"DSN" envDefault:"host=localhost user=postgres password=postgres dbname=jobtrack port=5432 sslmode=disable"`
}

// JWT contains credential signing parameters. Secret has no default on
// purpose: an empty secret makes auth endpoints answer 500 instead of
// silently signing with a guessable key.
type JWT struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"168h"`
}

// AI contains model-inference parameters.
type AI struct {
	APIKey string `env:"API_KEY"`
	Model  string `env:"MODEL" envDefault:"gemini-2.5-flash"`
}

// Production reports whether the server runs in production mode.
// Outside production, error causes are logged in full.
func (c *Config) Production() bool {
	return c.Env == "production"
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
