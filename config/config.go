package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all process-wide settings. It is resolved exactly once at
// startup and passed by pointer into every component that needs it; nothing
// reads the environment after Load returns.
type Config struct {
	Port           string
	AllowedOrigins []string

	// Postgres
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string
	PGSSLMode  string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Google Cloud providers. Empty GeminiAPIKey means generation is not
	// configured and the fallback responder answers every request.
	GeminiAPIKey    string
	GeminiModel     string
	LanguageAPIKey  string
	TranslateAPIKey string
	ProviderTimeout time.Duration

	// Safety policy: when true the crisis gate answers 503 instead of
	// letting a request through after a classifier-internal failure.
	SafetyFailClosed bool

	// Rate limiting
	RedisURL            string
	RateLimitPerMin     int
	GenerateLimitPerMin int
}

// Load resolves the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           env("PORT", "8080"),
		AllowedOrigins: []string{env("FRONTEND_ORIGIN", "http://localhost:5173"), "http://localhost:3000"},

		PGHost:     env("PG_HOST", "localhost"),
		PGPort:     env("PG_PORT", "5432"),
		PGUser:     env("PG_USER", "postgres"),
		PGPassword: os.Getenv("PG_PASSWORD"),
		PGDatabase: env("PG_DATABASE", "moody"),
		PGSSLMode:  env("PG_SSL_MODE", "disable"),

		JWTSecret: os.Getenv("JWT_SECRET_KEY"),
		TokenTTL:  7 * 24 * time.Hour,

		GeminiAPIKey:    env("GOOGLE_GEMINI_API_KEY", os.Getenv("GEMINI_API_KEY")),
		GeminiModel:     env("GEMINI_MODEL", "gemini-1.5-flash"),
		LanguageAPIKey:  os.Getenv("GOOGLE_LANGUAGE_API_KEY"),
		TranslateAPIKey: os.Getenv("GOOGLE_TRANSLATE_API_KEY"),
		ProviderTimeout: 8 * time.Second,

		SafetyFailClosed: envBool("SAFETY_FAIL_CLOSED", false),

		RedisURL:            os.Getenv("REDIS_URL"),
		RateLimitPerMin:     envInt("RATE_LIMIT_PER_MIN", 60),
		GenerateLimitPerMin: envInt("GENERATE_LIMIT_PER_MIN", 10),
	}

	if t := os.Getenv("PROVIDER_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, fmt.Errorf("parse PROVIDER_TIMEOUT: %w", err)
		}
		cfg.ProviderTimeout = d
	}

	return cfg, nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
