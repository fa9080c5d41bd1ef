// Package config loads and validates villaimport configuration from
// config file, environment, and flags (via viper).
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application-level configuration. AllowedOrigins is
// static data injected at startup, not mutable state: leaving it empty
// keeps the importer's built-in allow-list.
type Config struct {
	ListenAddr     string        `mapstructure:"listen_addr" validate:"required"`
	DatabaseURL    string        `mapstructure:"database_url"`
	FetchMode      string        `mapstructure:"fetch_mode" validate:"oneof=static dynamic"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent      string        `mapstructure:"user_agent"`
	AllowedOrigins []string      `mapstructure:"allowed_origins" validate:"omitempty,dive,url"`
}

// Load reads configuration from a .env file (if present), environment
// variables, and any viper-bound config file/flags, then validates it.
func Load() (*Config, error) {
	// Optional .env for local development; real deployments set env vars
	_ = godotenv.Load()

	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("fetch_mode", "static")
	viper.SetDefault("timeout", 30*time.Second)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
