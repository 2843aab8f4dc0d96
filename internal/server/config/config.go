// Package config handles configuration for the development backend,
// including defaults, a JSON or YAML file overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the development backend.
//
// SecretKey signs HS256 tokens; the default is for local use only. When
// AdminEmail or ModeratorEmail is set, the account is created at startup.
// An empty DatabaseDSN keeps all data in memory.
type Config struct {
	EndpointAddr      string
	DatabaseDSN       string
	SecretKey         string
	TokenValidity     time.Duration
	AdminEmail        string
	AdminPassword     string
	AdminName         string
	ModeratorEmail    string
	ModeratorPassword string
	ModeratorName     string
	RateLimitRPS      float64
	RateLimitBurst    int
	LogLevel          string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.TokenValidity = 24 * time.Hour
	c.AdminEmail = "admin@tradeboard.local"
	c.AdminPassword = "admin123"
	c.AdminName = "Admin"
	c.ModeratorEmail = ""
	c.ModeratorPassword = ""
	c.ModeratorName = "Moderator"
	c.RateLimitRPS = 20
	c.RateLimitBurst = 40
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
