package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to an
// environment variable. Apart from the JWT secret everything has a sensible
// default so a development instance starts with nothing but JWT_SECRET set.
type Config struct {
	Env             string   // application environment ("development", "production")
	Port            string   // HTTP port to listen on
	DBPath          string   // path to the SQLite database file
	UploadDir       string   // directory where sport images are stored
	JWTSecret       string   // secret used to sign JWTs
	TokenTTLDays    int      // access token time-to-live in days
	BcryptCost      int      // bcrypt cost for password hashing
	FrontendOrigins []string // allowed CORS origins
}

// Load reads configuration values from environment variables and returns a
// Config. JWT_SECRET is enforced by must(); a missing value causes the
// program to exit with a fatal log message. Everything else falls back to
// development defaults.
func Load() Config {
	return Config{
		Env:             getenv("APP_ENV", "development"),
		Port:            getenv("PORT", "3001"),
		DBPath:          getenv("DB_PATH", "nylose.db"),
		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		JWTSecret:       must("JWT_SECRET"),
		TokenTTLDays:    envInt("TOKEN_TTL_DAYS", 7),
		BcryptCost:      envInt("BCRYPT_COST", 10),
		FrontendOrigins: splitOrigins(getenv("FRONTEND_URL", "http://localhost:3000,http://localhost:8000")),
	}
}

// IsProduction reports whether the app runs with production hardening
// (strict security headers, rate limiting, generic error bodies).
func (c Config) IsProduction() bool { return c.Env == "production" }

// splitOrigins parses a comma-separated origin list, dropping empty entries.
func splitOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
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

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil {
		return dur
	}
	return d
}
