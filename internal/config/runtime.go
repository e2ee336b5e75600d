package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultAddr               = ":8080"
	defaultDatabaseURL        = "file:resort.db?cache=shared"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultJWTAccessTTL       = "24h"
	defaultModerationInterval = "15m"
	defaultTierInterval       = "24h"
	defaultContractSignGrace  = "24h"
)

type RuntimeConfig struct {
	AppEnv       string
	Addr         string
	DatabaseURL  string
	JWTSecret    string
	JWTAccessTTL time.Duration

	// Reconciliation scheduler cadence.
	ModerationInterval time.Duration
	TierInterval       time.Duration

	// How long a customer has to sign a contract before the moderation sweep
	// auto-rejects the booking.
	ContractSignGrace time.Duration
}

func Load() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Addr = getEnv("ADDR", defaultAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.ModerationInterval, err = parseDurationEnv("MODERATION_INTERVAL", defaultModerationInterval)
	if err != nil {
		return nil, err
	}
	cfg.TierInterval, err = parseDurationEnv("TIER_INTERVAL", defaultTierInterval)
	if err != nil {
		return nil, err
	}
	cfg.ContractSignGrace, err = parseDurationEnv("CONTRACT_SIGN_GRACE", defaultContractSignGrace)
	if err != nil {
		return nil, err
	}

	if cfg.AppEnv != "dev" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set outside dev")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}
