package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the server
type Config struct {
	ListenAddr      string
	SessionSecret   string
	CookieSecure    bool
	SessionTTL      time.Duration
	JanitorInterval time.Duration
}

// Load reads configuration from .env (when present) and the
// environment. SESSION_SECRET is the only required value.
func Load() (*Config, error) {
	// A missing .env is fine - the environment may carry everything
	_ = godotenv.Load()

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is not set")
	}

	cfg := &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		SessionSecret:   secret,
		CookieSecure:    getEnvBool("COOKIE_SECURE", true),
		SessionTTL:      getEnvDuration("SESSION_TTL_HOURS", 24*365) * time.Hour,
		JanitorInterval: getEnvDuration("JANITOR_INTERVAL_HOURS", 24) * time.Hour,
	}
	return cfg, nil
}

// getEnv returns the variable's value or a default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvBool parses a boolean variable, falling back on parse errors
func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// getEnvDuration parses an integer hour count, falling back on errors
func getEnvDuration(key string, fallback int) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return time.Duration(fallback)
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return time.Duration(fallback)
	}
	return time.Duration(parsed)
}
