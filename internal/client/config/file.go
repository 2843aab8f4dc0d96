package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/tradeboard/internal/flagx"
	"github.com/dmitrijs2005/tradeboard/internal/timex"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape, shared by the JSON and YAML loaders.
type fileConfig struct {
	APIBaseURL          string         `json:"api_base_url" yaml:"api_base_url"`
	MaxAttempts         int            `json:"max_attempts" yaml:"max_attempts"`
	BaseDelay           timex.Duration `json:"base_delay" yaml:"base_delay"`
	MaxDelay            timex.Duration `json:"max_delay" yaml:"max_delay"`
	RequestTimeout      timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	SessionDBPath       string         `json:"session_db_path" yaml:"session_db_path"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	MetricsAddr         string         `json:"metrics_addr" yaml:"metrics_addr"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on read
// or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}
	if err := loadFile(cfg, path); err != nil {
		panic(err)
	}
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	case ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	if fc.APIBaseURL != "" {
		cfg.APIBaseURL = fc.APIBaseURL
	}
	if fc.MaxAttempts != 0 {
		cfg.MaxAttempts = fc.MaxAttempts
	}
	if fc.BaseDelay.Duration != 0 {
		cfg.BaseDelay = fc.BaseDelay.Duration
	}
	if fc.MaxDelay.Duration != 0 {
		cfg.MaxDelay = fc.MaxDelay.Duration
	}
	if fc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.SessionDBPath != "" {
		cfg.SessionDBPath = fc.SessionDBPath
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.OnlineCheckInterval.Duration != 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.MetricsAddr != "" {
		cfg.MetricsAddr = fc.MetricsAddr
	}
}
