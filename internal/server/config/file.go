package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tradeboard/internal/flagx"
	"github.com/dmitrijs2005/tradeboard/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape. Empty values keep the current setting.
type FileConfig struct {
	EndpointAddr      string         `json:"endpoint_addr" yaml:"endpoint_addr"`
	DatabaseDSN       string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey         string         `json:"secret_key" yaml:"secret_key"`
	TokenValidity     timex.Duration `json:"token_validity" yaml:"token_validity"`
	AdminEmail        string         `json:"admin_email" yaml:"admin_email"`
	AdminPassword     string         `json:"admin_password" yaml:"admin_password"`
	AdminName         string         `json:"admin_name" yaml:"admin_name"`
	ModeratorEmail    string         `json:"moderator_email" yaml:"moderator_email"`
	ModeratorPassword string         `json:"moderator_password" yaml:"moderator_password"`
	ModeratorName     string         `json:"moderator_name" yaml:"moderator_name"`
	RateLimitRPS      float64        `json:"rate_limit_rps" yaml:"rate_limit_rps"`
	RateLimitBurst    int            `json:"rate_limit_burst" yaml:"rate_limit_burst"`
	LogLevel          string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file passed with -c/-config into config. It panics if
// the file cannot be read or decoded.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.AdminEmail, c.AdminEmail)
	setString(&config.AdminPassword, c.AdminPassword)
	setString(&config.AdminName, c.AdminName)
	setString(&config.ModeratorEmail, c.ModeratorEmail)
	setString(&config.ModeratorPassword, c.ModeratorPassword)
	setString(&config.ModeratorName, c.ModeratorName)
	setString(&config.LogLevel, c.LogLevel)
	if c.TokenValidity.Duration != 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.RateLimitRPS != 0 {
		config.RateLimitRPS = c.RateLimitRPS
	}
	if c.RateLimitBurst != 0 {
		config.RateLimitBurst = c.RateLimitBurst
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
