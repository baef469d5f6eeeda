package main

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is loaded once at startup from the environment.
type Config struct {
	Port           string
	DatabaseURL    string
	ConnectTimeout time.Duration

	JWTSecret string

	// Allowed browser origins for CORS, comma separated in CLIENT_URL.
	ClientOrigins []string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	// "production" tightens cookie flags, hides the seed/reset routes and
	// makes a failed database connection fatal.
	Env string
}

func loadConfig() *Config {
	return &Config{
		Port:           getEnv("PORT", "4000"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT_MS", 5000*time.Millisecond),

		JWTSecret: getEnv("JWT_SECRET", "dev_secret"),

		ClientOrigins: splitOrigins(getEnv("CLIENT_URL", "http://localhost:5173")),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", ""),

		Env: getEnv("APP_ENV", "development"),
	}
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

// ClientURL is the primary SPA origin, used for OAuth redirects.
func (c *Config) ClientURL() string {
	if len(c.ClientOrigins) > 0 {
		return c.ClientOrigins[0]
	}
	return "http://localhost:5173"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration reads a millisecond count from the environment.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

func splitOrigins(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}
