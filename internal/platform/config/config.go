// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct. A local .env file, when present, is loaded first with 'joho/godotenv'
so development setups do not need exported variables.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components via constructors.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the insecure fallback used when JWT_SECRET is unset.
const DefaultJWTSecret = "your-secret-key"

// # Configuration Schema

// Config holds all runtime configuration for the nico-cal API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"PORT"         envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Session signing
	JWTSecret string `env:"JWT_SECRET" envDefault:"your-secret-key"`

	// Cross-Origin Resource Sharing
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	// Optional token denylist. Empty disables server-side revocation.
	RedisURL string `env:"REDIS_URL"`

	// Seed data
	SeedDemoData bool `env:"SEED_DEMO_DATA" envDefault:"true"`
	SeedTestData bool `env:"SEED_TEST_DATA" envDefault:"false"`

	// StrictLoginSchema enables the extended credential rules.
	StrictLoginSchema bool `env:"LOGIN_STRICT_SCHEMA" envDefault:"false"`
}

// # Configuration Loading

// Load reads an optional .env file and parses environment variables into a [Config].
func Load() (*Config, error) {

	// A missing .env is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	return Parse()
}

// Parse maps the current process environment into a [Config] without touching .env.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UsesDefaultSecret reports whether tokens are signed with the built-in fallback secret.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}

// RevocationEnabled reports whether a Redis-backed token denylist is configured.
func (c *Config) RevocationEnabled() bool {
	return c.RedisURL != ""
}
