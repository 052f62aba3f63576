// Package config loads process configuration from the environment, with
// an optional .env file for local development. The resulting Config is
// passed explicitly to the server, database and auth layers so nothing
// reads secrets from globals after startup.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders the keyword/value connection string both the gorm and the
// raw database/sql connections use.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type Config struct {
	Env       Environment
	Port      string
	JWTSecret string
	TokenTTL  time.Duration
	Database  DatabaseConfig
}

// IsDev reports whether error responses may carry internal detail.
func (c Config) IsDev() bool {
	return c.Env == EnvDevelopment
}

// Load reads .env (if present) and the process environment.
func Load() (Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := Config{
		Env:       EnvProduction,
		Port:      getenv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  30 * 24 * time.Hour,
		Database: DatabaseConfig{
			Host:     getenv("DB_HOST", "localhost"),
			Port:     getenv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
			SSLMode:  getenv("DB_SSLMODE", "disable"),
		},
	}

	if os.Getenv("APP_ENV") == string(EnvDevelopment) {
		cfg.Env = EnvDevelopment
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
