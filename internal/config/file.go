package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the YAML configuration file. Zero values leave the
// defaults in place.
type fileConfig struct {
	LogLevel       string            `yaml:"log_level"`
	JSONLog        bool              `yaml:"json_log"`
	Timeout        string            `yaml:"timeout"`
	UserAgent      string            `yaml:"user_agent"`
	Proxy          string            `yaml:"proxy"`
	Headers        map[string]string `yaml:"headers"`
	BaseURL        string            `yaml:"base_url"`
	FiscalYearPath bool              `yaml:"fiscal_year_path"`
	NotFoundMarker string            `yaml:"not_found_marker"`
	Category       string            `yaml:"category"`
	OutputDir      string            `yaml:"output_dir"`
	Strict         bool              `yaml:"strict"`
	RateLimit      struct {
		RPS   float64 `yaml:"rps"`
		Burst int     `yaml:"burst"`
	} `yaml:"rate_limit"`
}

// loadFile reads a YAML config file and applies its values over cfg
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.JSONLog {
		cfg.JSONLog = true
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", fc.Timeout, err)
		}
		cfg.HTTPTimeout = d
	}
	if fc.UserAgent != "" {
		cfg.UserAgent = fc.UserAgent
	}
	if fc.Proxy != "" {
		cfg.Proxy = fc.Proxy
	}
	for k, v := range fc.Headers {
		cfg.Headers[k] = v
	}
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.FiscalYearPath {
		cfg.FiscalYearPath = true
	}
	if fc.NotFoundMarker != "" {
		cfg.NotFoundMarker = fc.NotFoundMarker
	}
	if fc.Category != "" {
		cfg.Category = fc.Category
	}
	if fc.OutputDir != "" {
		cfg.OutputDir = fc.OutputDir
	}
	if fc.Strict {
		cfg.Strict = true
	}
	if fc.RateLimit.RPS != 0 {
		cfg.RateLimitRPS = fc.RateLimit.RPS
	}
	if fc.RateLimit.Burst != 0 {
		cfg.RateLimitBurst = fc.RateLimit.Burst
	}
	return nil
}
