package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration
	UploadDir   string
	DevUsername string
	DevPassword string
}

// Load reads configuration from the environment with minimal validation.
// The dev credential pair defaults to admin/admin; set MARKET_DEV_USER to
// an empty value to disable the static login entirely.
func Load() (Config, error) {
	cfg := Config{
		Addr:        fallback(os.Getenv("MARKET_ADDR"), ":8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   fallback(os.Getenv("JWT_ISSUER"), "marketplace-backend"),
		UploadDir:   fallback(os.Getenv("UPLOAD_DIR"), "./uploads"),
		DevUsername: envOrDefault("MARKET_DEV_USER", "admin"),
		DevPassword: envOrDefault("MARKET_DEV_PASSWORD", "admin"),
	}

	hours := fallback(os.Getenv("JWT_TTL_HOURS"), "72")
	if ttlHours, err := strconv.Atoi(hours); err == nil && ttlHours > 0 {
		cfg.JWTTTL = time.Duration(ttlHours) * time.Hour
	} else {
		cfg.JWTTTL = 72 * time.Hour
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

// envOrDefault keeps an explicitly-set empty value, unlike fallback.
func envOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.TrimSpace(v)
	}
	return def
}
