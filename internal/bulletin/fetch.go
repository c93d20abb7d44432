// Package bulletin fetches visa bulletin pages and extracts their category tables.
package bulletin

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/law-makers/bulletin/internal/ratelimit"
	"github.com/law-makers/bulletin/pkg/models"
	"github.com/rs/zerolog/log"
)

// DefaultNotFoundMarker is the text the bulletin host renders in place of a missing bulletin
const DefaultNotFoundMarker = "Page Not Found"

// FetcherOptions configures a Fetcher
type FetcherOptions struct {
	BaseURL        string
	FiscalYearPath bool
	UserAgent      string
	Headers        map[string]string
	NotFoundMarker string
}

// Fetcher retrieves bulletin pages over plain HTTP and parses them with goquery
type Fetcher struct {
	client  *http.Client
	limiter ratelimit.RateLimiter
	opts    FetcherOptions
}

// NewFetcher creates a Fetcher. A nil limiter disables throttling.
func NewFetcher(client *http.Client, lim ratelimit.RateLimiter, opts FetcherOptions) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.NotFoundMarker == "" {
		opts.NotFoundMarker = DefaultNotFoundMarker
	}
	return &Fetcher{
		client:  client,
		limiter: lim,
		opts:    opts,
	}
}

// URL returns the page URL the fetcher would request for m
func (f *Fetcher) URL(m models.Month) string {
	return BuildURL(f.opts.BaseURL, m, f.opts.FiscalYearPath)
}

// Fetch issues a single GET for the bulletin of month m.
//
// Transport failures and unexpected statuses are returned as *Error. A 404, or
// a page whose text carries the not-found marker, yields ErrPageNotFound
// wrapped in an *Error with code NOT_FOUND.
func (f *Fetcher) Fetch(ctx context.Context, m models.Month) (*models.Page, error) {
	start := time.Now()
	pageURL := f.URL(m)

	log.Debug().
		Str("url", pageURL).
		Str("month", m.String()).
		Msg("Starting fetch")

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, pageURL); err != nil {
			return nil, NewError(ErrCodeNetworkError, "rate limiter wait aborted", err).
				WithDetail("url", pageURL)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, NewError(ErrCodeNetworkError, "failed to fetch bulletin", err).
			WithDetail("url", pageURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, NewError(ErrCodeNotFound, pageURL, ErrPageNotFound).
			WithDetail("status", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewError(ErrCodeHTTPStatus, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil).
			WithDetail("url", pageURL).
			WithDetail("status", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, NewError(ErrCodeParseError, "failed to parse HTML", err)
	}

	if strings.Contains(doc.Text(), f.opts.NotFoundMarker) {
		return nil, NewError(ErrCodeNotFound, pageURL, ErrPageNotFound).
			WithDetail("status", resp.StatusCode)
	}

	responseTime := time.Since(start).Milliseconds()

	log.Debug().
		Str("url", pageURL).
		Int("status", resp.StatusCode).
		Int64("response_time_ms", responseTime).
		Int("tables", doc.Find("table").Length()).
		Msg("Fetch completed")

	return &models.Page{
		URL:          pageURL,
		Month:        m,
		StatusCode:   resp.StatusCode,
		FetchedAt:    time.Now(),
		ResponseTime: responseTime,
		Doc:          doc,
	}, nil
}
