package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Config holds application configuration values
type Config struct {
	// Logging
	LogLevel string
	JSONLog  bool

	// HTTP
	HTTPTimeout time.Duration
	UserAgent   string
	Proxy       string
	Headers     map[string]string

	// Bulletin source
	BaseURL        string
	FiscalYearPath bool
	NotFoundMarker string

	// Extraction and export
	Category  string
	OutputDir string
	Strict    bool

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// Default returns a Config populated with the built-in defaults
func Default() *Config {
	return &Config{
		LogLevel:       DefaultLogLevel,
		JSONLog:        DefaultJSONLog,
		HTTPTimeout:    DefaultHTTPTimeout,
		UserAgent:      DefaultUserAgent,
		Headers:        make(map[string]string),
		BaseURL:        DefaultBaseURL,
		NotFoundMarker: DefaultNotFoundMarker,
		Category:       DefaultCategory,
		OutputDir:      DefaultOutputDir,
		RateLimitRPS:   DefaultRateLimitRPS,
		RateLimitBurst: DefaultRateLimitBurst,
	}
}

// Load builds a Config by combining defaults, an optional YAML file, environment
// variables, and CLI flags, in that order of precedence (flags win).
// Caller should pass the executing *cobra.Command so flags can be read.
func Load(cmd *cobra.Command) (*Config, error) {
	cfg := Default()

	configPath := os.Getenv("BULLETIN_CONFIG")
	if cmd != nil {
		if f := cmd.Flags().Lookup("config"); f != nil && f.Value.String() != "" {
			configPath = f.Value.String()
		}
	}
	if configPath != "" {
		if err := loadFile(configPath, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if cmd != nil {
		if err := applyFlags(cmd, cfg); err != nil {
			return nil, err
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BULLETIN_USER_AGENT"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("BULLETIN_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("BULLETIN_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("BULLETIN_CATEGORY"); v != "" {
		cfg.Category = v
	}
	if v := os.Getenv("BULLETIN_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("BULLETIN_RATE_LIMIT"); v != "" {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = rps
		}
	}
}

func applyFlags(cmd *cobra.Command, cfg *Config) error {
	flags := cmd.Flags()

	str := func(name string, dst *string) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	boolean := func(name string, dst *bool) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String() == "true"
		}
	}

	str("user-agent", &cfg.UserAgent)
	str("proxy", &cfg.Proxy)
	str("base-url", &cfg.BaseURL)
	str("category", &cfg.Category)
	str("output-dir", &cfg.OutputDir)
	boolean("json", &cfg.JSONLog)
	boolean("fiscal-year-path", &cfg.FiscalYearPath)
	boolean("strict", &cfg.Strict)

	if f := flags.Lookup("timeout"); f != nil && f.Changed {
		d, err := time.ParseDuration(f.Value.String())
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", f.Value.String(), err)
		}
		cfg.HTTPTimeout = d
	}

	if f := flags.Lookup("header"); f != nil {
		if hs, err := flags.GetStringArray("header"); err == nil {
			for k, v := range ParseHeaders(hs) {
				cfg.Headers[k] = v
			}
		}
	}

	if f := flags.Lookup("quiet"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "error"
	}
	if f := flags.Lookup("verbose"); f != nil && f.Value.String() == "true" {
		cfg.LogLevel = "debug"
	}

	return nil
}

// ParseHeaders converts "Key: Value" strings into a map, ignoring malformed entries
func ParseHeaders(h []string) map[string]string {
	m := make(map[string]string)
	for _, hdr := range h {
		parts := strings.SplitN(hdr, ":", 2)
		if len(parts) == 2 {
			m[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
		}
	}
	return m
}
