// Package config loads application configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting.  Required variables are enforced by
// must(); the rest fall back to sane development defaults.
type Config struct {
	Env           string        // application environment (dev/test/prod)
	Port          string        // HTTP port to listen on
	JWTSecret     string        // secret used to sign session tokens
	SessionTTLMin int           // session token time-to-live in minutes
	BcryptCost    int           // bcrypt cost for the mock account hashes
	AuthLatency   time.Duration // simulated backend delay for login/register
	LogLevel      string        // zap level: debug, info, warn, error
	SummaryURL    string        // optional upstream review summarizer
	EventsEnabled bool          // start the AMQP events consumer
	RateLimitRPM  int           // per-client requests per minute; 0 disables
}

// Load reads the environment (after autoloading .env if present) and
// returns the configuration.  Missing required variables are fatal.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		JWTSecret:     must("JWT_SECRET"),
		SessionTTLMin: atoi(getenv("SESSION_TTL_MIN", "60")),
		BcryptCost:    atoi(getenv("BCRYPT_COST", "10")),
		AuthLatency:   time.Duration(atoi(getenv("AUTH_LATENCY_MS", "1000"))) * time.Millisecond,
		LogLevel:      getenv("LOG_LEVEL", "info"),
		SummaryURL:    os.Getenv("REVIEW_SUMMARY_URL"),
		EventsEnabled: getenv("EVENTS_ENABLED", "false") == "true",
		RateLimitRPM:  atoi(getenv("RATE_LIMIT_RPM", "120")),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int value: %q", s)
	}
	return n
}
