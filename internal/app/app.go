// Package app provides the core application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/law-makers/bulletin/internal/bulletin"
	"github.com/law-makers/bulletin/internal/config"
	"github.com/law-makers/bulletin/internal/export"
	"github.com/law-makers/bulletin/internal/pipeline"
	"github.com/law-makers/bulletin/internal/ratelimit"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Application holds all application dependencies and manages their lifecycle.
//
// It is created once per invocation and shared by the CLI commands.
// Use Close() to release idle connections on shutdown.
type Application struct {
	Config      *config.Config
	Logger      *zerolog.Logger
	HTTPClient  *http.Client
	RateLimiter ratelimit.RateLimiter
	Fetcher     *bulletin.Fetcher
	Writer      *export.Writer
	Runner      *pipeline.Runner
	startTime   time.Time
}

// New creates and initializes a new Application with all dependencies.
//
// It performs the following initialization steps:
//   - Configures logging based on the provided config
//   - Creates the per-host rate limiter
//   - Initializes the HTTP client with timeout and proxy
//   - Creates the fetcher, the CSV writer and the pipeline runner
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := newLogger(cfg, os.Stderr)
	log.Logger = logger

	logger.Debug().
		Str("level", cfg.LogLevel).
		Bool("json", cfg.JSONLog).
		Msg("Logger initialized")

	rateLimiter := ratelimit.NewHostLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	logger.Debug().
		Float64("rps", cfg.RateLimitRPS).
		Int("burst", cfg.RateLimitBurst).
		Msg("Rate limiter initialized")

	httpClient, err := newHTTPClient(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Dur("timeout", cfg.HTTPTimeout).
		Str("proxy", cfg.Proxy).
		Msg("HTTP client initialized")

	fetcher := bulletin.NewFetcher(httpClient, rateLimiter, bulletin.FetcherOptions{
		BaseURL:        cfg.BaseURL,
		FiscalYearPath: cfg.FiscalYearPath,
		UserAgent:      cfg.UserAgent,
		Headers:        cfg.Headers,
		NotFoundMarker: cfg.NotFoundMarker,
	})

	writer := export.NewWriter(export.NewDestinations(cfg.OutputDir, cfg.Category))

	app := &Application{
		Config:      cfg,
		Logger:      &logger,
		HTTPClient:  httpClient,
		RateLimiter: rateLimiter,
		Fetcher:     fetcher,
		Writer:      writer,
		startTime:   time.Now(),
	}
	app.Runner = app.RunnerFor(cfg.OutputDir)

	logger.Debug().
		Str("category", cfg.Category).
		Str("output_dir", cfg.OutputDir).
		Msg("Application initialized")
	return app, nil
}

// RunnerFor returns a pipeline runner that writes into dir, sharing the
// application's fetcher and rate limiter.
func (a *Application) RunnerFor(dir string) *pipeline.Runner {
	w := a.Writer
	if w == nil || dir != a.Config.OutputDir {
		w = export.NewWriter(export.NewDestinations(dir, a.Config.Category))
	}
	return pipeline.New(a.Fetcher, w, bulletin.ExtractOptions{
		Category: a.Config.Category,
		Strict:   a.Config.Strict,
	})
}

// Close releases the application's resources.
func (a *Application) Close(ctx context.Context) error {
	if a.HTTPClient != nil {
		a.HTTPClient.CloseIdleConnections()
	}

	a.Logger.Debug().Dur("uptime", a.Uptime()).Msg("Application shutdown complete")
	return nil
}

// Uptime returns how long the application has been running.
func (a *Application) Uptime() time.Duration {
	return time.Since(a.startTime)
}

func newLogger(cfg *config.Config, out io.Writer) zerolog.Logger {
	// Info logs stay hidden unless -v is used; the CLI prints its own progress
	level := zerolog.WarnLevel
	switch cfg.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	var w io.Writer = out
	if !cfg.JSONLog {
		w = zerolog.ConsoleWriter{Out: out}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

func newHTTPClient(cfg *config.Config) (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     90 * time.Second,
	}
	if cfg.Proxy != "" {
		proxyURL, err := url.Parse(cfg.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: transport,
	}, nil
}
