package config

import (
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config captures process-level configuration, read once at startup and
// passed by reference into the server wiring. No ambient globals.
type Config struct {
	Addr          string
	DatabaseURL   string
	JWTSigningKey string
	TokenTTL      time.Duration
	BcryptCost    int
}

// FromEnv builds a Config from environment variables so main stays lean.
// Defaults match local development; the signing key default is an insecure
// placeholder and must be overridden in any real deployment.
func FromEnv() Config {
	addr := os.Getenv("AGRIGATE_ADDR")
	if addr == "" {
		addr = ":5000"
	}

	databaseURL := os.Getenv("DATABASE_URL")

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := 7 * 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			tokenTTL = d
		}
	}

	return Config{
		Addr:          addr,
		DatabaseURL:   databaseURL,
		JWTSigningKey: jwtSigningKey,
		TokenTTL:      tokenTTL,
		BcryptCost:    bcrypt.DefaultCost,
	}
}
