// Package config handles loading and validating runtime configuration for the
// Golfbook API. Values like the database URL and port are read from environment
// variables rather than being hardcoded, so the same binary runs in dev,
// staging, and production with nothing but different env vars.
package config

import (
	"os"
	"time"

	// godotenv reads a .env file and loads its key=value pairs into the process
	// environment. Convenient in development; in production real env vars are
	// set by the deployment platform and no .env file exists.
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port               string        // TCP port the HTTP server listens on (e.g. "8080")
	DatabaseURL        string        // PostgreSQL connection string
	AuthSecretKey      string        // Secret key for verifying identity-provider tokens server-side
	ProcessorSecretKey string        // Payment processor API secret, used when reconciling captures
	ScoreCacheTTL      time.Duration // How long cached settlement results stay fresh
	Env                string        // "development", "staging", or "production"
}

// Load reads configuration from environment variables and returns a populated
// Config. A .env file is loaded first if present; the error is intentionally
// ignored because a missing .env is normal outside development.
func Load() *Config {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}

	// Settlement results are recomputed on every score edit anyway; the cache
	// only has to absorb repeated reads between edits.
	cacheTTL := 30 * time.Second
	if raw := os.Getenv("SCORE_CACHE_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cacheTTL = d
		}
	}

	return &Config{
		Port:               port,
		DatabaseURL:        os.Getenv("DATABASE_URL"), // Required — server will fail to start without it
		AuthSecretKey:      os.Getenv("AUTH_SECRET_KEY"),
		ProcessorSecretKey: os.Getenv("PROCESSOR_SECRET_KEY"),
		ScoreCacheTTL:      cacheTTL,
		Env:                env,
	}
}
