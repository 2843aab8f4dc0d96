package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIBaseURL          = "TRADEBOARD_API_URL"
	EnvMaxAttempts         = "TRADEBOARD_MAX_ATTEMPTS"
	EnvBaseDelay           = "TRADEBOARD_BASE_DELAY"
	EnvMaxDelay            = "TRADEBOARD_MAX_DELAY"
	EnvRequestTimeout      = "TRADEBOARD_REQUEST_TIMEOUT"
	EnvSessionDBPath       = "TRADEBOARD_SESSION_DB"
	EnvLogLevel            = "TRADEBOARD_LOG_LEVEL"
	EnvOnlineCheckInterval = "TRADEBOARD_ONLINE_CHECK_INTERVAL"
	EnvMetricsAddr         = "TRADEBOARD_METRICS_ADDR"
)

// parseEnv loads .env from the working directory when present (without
// overriding variables already set) and overlays TRADEBOARD_* values.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		panic(err)
	}
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(EnvAPIBaseURL, &cfg.APIBaseURL)
	str(EnvSessionDBPath, &cfg.SessionDBPath)
	str(EnvLogLevel, &cfg.LogLevel)
	str(EnvMetricsAddr, &cfg.MetricsAddr)

	if v, ok := lookup(EnvMaxAttempts); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxAttempts, err)
		}
		cfg.MaxAttempts = n
	}

	for key, dst := range map[string]*time.Duration{
		EnvBaseDelay:           &cfg.BaseDelay,
		EnvMaxDelay:            &cfg.MaxDelay,
		EnvRequestTimeout:      &cfg.RequestTimeout,
		EnvOnlineCheckInterval: &cfg.OnlineCheckInterval,
	} {
		if err := dur(key, dst); err != nil {
			return err
		}
	}
	return nil
}
