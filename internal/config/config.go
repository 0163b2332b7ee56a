// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported record store engines.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// Administrator credentials. The password has no default.
	AdminUsername string `env:"SIGNUP_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"SIGNUP_ADMIN_PASSWORD,required"`

	SessionLifetime time.Duration `env:"SIGNUP_SESSION_LIFETIME" envDefault:"24h"`

	// Record store
	DBDriver    string `env:"SIGNUP_DB_DRIVER" envDefault:"sqlite"`
	DBPath      string `env:"SIGNUP_DB_PATH" envDefault:"./data/formdata.db"`
	DatabaseURL string `env:"SIGNUP_DATABASE_URL"`

	RedisURL string `env:"SIGNUP_REDIS_URL"` // Optional Redis URL for session storage

	ServerHost string `env:"SIGNUP_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SIGNUP_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SIGNUP_ENV" envDefault:"development"`
	LogLevel   string `env:"SIGNUP_LOG_LEVEL" envDefault:"info"`

	ExportRequiresAuth bool `env:"SIGNUP_EXPORT_REQUIRES_AUTH" envDefault:"false"`
	MetricsEnabled     bool `env:"SIGNUP_METRICS_ENABLED" envDefault:"true"`
	DoSeed             bool `env:"SIGNUP_DO_SEED" envDefault:"false"` // Insert demo records into an empty store
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UsePostgres returns true if records are stored in Postgres.
func (c Config) UsePostgres() bool {
	return c.DBDriver == DriverPostgres
}

// UseRedisSessions returns true if sessions are stored in Redis.
func (c Config) UseRedisSessions() bool {
	return c.RedisURL != ""
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.AdminUsername) == "" {
		return errors.New("SIGNUP_ADMIN_USERNAME must not be empty")
	}
	if c.AdminPassword == "" {
		return errors.New("SIGNUP_ADMIN_PASSWORD must not be empty")
	}

	if c.SessionLifetime <= 0 {
		return fmt.Errorf("SIGNUP_SESSION_LIFETIME must be positive, got %s", c.SessionLifetime)
	}

	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("SIGNUP_DATABASE_URL is required when SIGNUP_DB_DRIVER is postgres")
		}
	default:
		return fmt.Errorf("SIGNUP_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.DBDriver)
	}

	return nil
}
