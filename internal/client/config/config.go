package config

import "time"

// Config holds runtime settings for the tradeboard CLI.
type Config struct {
	APIBaseURL          string
	MaxAttempts         int
	BaseDelay           time.Duration
	MaxDelay            time.Duration
	RequestTimeout      time.Duration
	SessionDBPath       string
	LogLevel            string
	OnlineCheckInterval time.Duration
	MetricsAddr         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.MaxAttempts = 5
	c.BaseDelay = time.Second
	c.MaxDelay = 5 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "tradeboard.db"
	c.LogLevel = "warn"
	c.OnlineCheckInterval = 5 * time.Second
	c.MetricsAddr = ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a config file (if given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
