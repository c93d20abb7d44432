// Package pipeline runs the fetch -> extract -> export pass for one bulletin month.
package pipeline

import (
	"context"
	"time"

	"github.com/law-makers/bulletin/internal/bulletin"
	"github.com/law-makers/bulletin/internal/runctx"
	"github.com/law-makers/bulletin/pkg/models"
	"github.com/rs/zerolog/log"
)

// Fetcher retrieves the bulletin page for a month
type Fetcher interface {
	Fetch(ctx context.Context, m models.Month) (*models.Page, error)
	URL(m models.Month) string
}

// TableWriter persists extracted tables
type TableWriter interface {
	WriteTables(tables []models.Table) ([]models.OutputFile, error)
}

// Result summarizes one run
type Result struct {
	RunID    string
	Month    models.Month
	URL      string
	Tables   []models.Table
	Files    []models.OutputFile
	Duration time.Duration
}

// Runner wires the three stages together
type Runner struct {
	fetcher Fetcher
	writer  TableWriter
	extract bulletin.ExtractOptions
}

// New creates a Runner
func New(f Fetcher, w TableWriter, opts bulletin.ExtractOptions) *Runner {
	return &Runner{
		fetcher: f,
		writer:  w,
		extract: opts,
	}
}

// Run fetches, extracts and writes the bulletin for month m.
//
// A missing bulletin is reported as bulletin.ErrPageNotFound before any file
// is touched. Extraction completes for every table before the first write.
func (r *Runner) Run(ctx context.Context, m models.Month) (*Result, error) {
	ctx = runctx.With(ctx, m)
	res, err := r.preview(ctx, m)
	if err != nil {
		return res, err
	}

	files, err := r.writer.WriteTables(res.Tables)
	res.Files = files
	res.Duration = runctx.From(ctx).Elapsed()
	if err != nil {
		return res, err
	}

	log.Info().
		Str("run_id", res.RunID).
		Str("month", m.String()).
		Int("files", len(files)).
		Dur("duration", res.Duration).
		Msg("Run complete")
	return res, nil
}

// Preview fetches and extracts without writing anything
func (r *Runner) Preview(ctx context.Context, m models.Month) (*Result, error) {
	return r.preview(runctx.With(ctx, m), m)
}

func (r *Runner) preview(ctx context.Context, m models.Month) (*Result, error) {
	run := runctx.From(ctx)

	res := &Result{
		RunID: run.ID,
		Month: m,
		URL:   r.fetcher.URL(m),
	}
	logger := log.With().Str("run_id", run.ID).Str("month", m.String()).Logger()

	page, err := r.fetcher.Fetch(ctx, m)
	if err != nil {
		res.Duration = run.Elapsed()
		logger.Debug().Err(err).Msg("Fetch failed")
		return res, err
	}

	tables, err := bulletin.Extract(page.Doc, r.extract)
	res.Tables = tables
	res.Duration = run.Elapsed()
	if err != nil {
		return res, err
	}

	logger.Debug().
		Str("url", page.URL).
		Int("tables", len(tables)).
		Msg("Extraction complete")
	return res, nil
}
