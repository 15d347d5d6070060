// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Env names the deployment environment. Defaults to "development".
	// A .env file is only read outside "production".
	Env string

	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret is the HS256 key shared with the identity service. Required.
	JWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// PolicyFile optionally points at a YAML budget policy. Empty means
	// the built-in defaults.
	PolicyFile string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// DBMaxConns caps the pgx pool size. Zero keeps pgx's default.
	DBMaxConns int32

	// CategoryConcurrency bounds parallel catalog lookups per package request.
	// Defaults to 4.
	CategoryConcurrency int

	// DestinationCacheTTL is how long resolved destinations stay cached.
	// Defaults to 5m; 0 disables the cache.
	DestinationCacheTTL time.Duration

	// MigrateOnStart applies pending migrations before serving. Defaults to false.
	MigrateOnStart bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or any
// variable whose value cannot be parsed.
func Load() (Config, error) {
	cfg := Config{
		Env:         getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PolicyFile:  os.Getenv("POLICY_FILE"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64); err != nil || cfg.MaxBodyBytes <= 0 {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "0"), 10, 32)
	if err != nil || maxConns < 0 {
		invalid = append(invalid, "DB_MAX_CONNS")
	}
	cfg.DBMaxConns = int32(maxConns)
	if cfg.CategoryConcurrency, err = strconv.Atoi(getEnv("CATEGORY_CONCURRENCY", "4")); err != nil || cfg.CategoryConcurrency < 1 {
		invalid = append(invalid, "CATEGORY_CONCURRENCY")
	}
	if cfg.DestinationCacheTTL, err = time.ParseDuration(getEnv("DESTINATION_CACHE_TTL", "5m")); err != nil || cfg.DestinationCacheTTL < 0 {
		invalid = append(invalid, "DESTINATION_CACHE_TTL")
	}
	if cfg.MigrateOnStart, err = strconv.ParseBool(getEnv("MIGRATE_ON_START", "false")); err != nil {
		invalid = append(invalid, "MIGRATE_ON_START")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid values for environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

// IsProduction reports whether the server runs in the production environment.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
