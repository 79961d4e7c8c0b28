package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

type Config struct {
	HTTPAddr string

	// DatabaseURL is optional: without it the scheduler runs with an empty
	// in-memory ledger and no booking log or staff dashboard.
	DatabaseURL string

	// Session keys for the staff dashboard cookie (base64). Required only
	// when the dashboard is served.
	SessionHashKey  []byte
	SessionBlockKey []byte

	DevMode bool
}

func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:    envDefault("HTTP_ADDR", ":8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DevMode:     strings.TrimSpace(os.Getenv("DEV_MODE")) == "1",
	}

	var err error
	cfg.SessionHashKey, err = optionalB64("SESSION_HASH_KEY")
	if err != nil {
		return cfg, err
	}
	cfg.SessionBlockKey, err = optionalB64("SESSION_BLOCK_KEY")
	if err != nil {
		return cfg, err
	}
	if (cfg.SessionHashKey == nil) != (cfg.SessionBlockKey == nil) {
		return cfg, fmt.Errorf("SESSION_HASH_KEY and SESSION_BLOCK_KEY must be set together")
	}
	return cfg, nil
}

// DashboardEnabled reports whether the staff dashboard can be served:
// it needs both the booking log and session keys.
func (c Config) DashboardEnabled() bool {
	return c.DatabaseURL != "" && c.SessionHashKey != nil
}

func envDefault(k, d string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	return v
}

func optionalB64(k string) ([]byte, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return nil, nil
	}
	if b, err := base64.StdEncoding.DecodeString(v); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", k, err)
	}
	return b, nil
}
