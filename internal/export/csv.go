// Package export writes extracted bulletin tables to their CSV destinations.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/law-makers/bulletin/pkg/models"
	"github.com/rs/zerolog/log"
)

// Destinations are the two fixed CSV slots, selected by table ordinal
type Destinations struct {
	A string
	B string
}

// NewDestinations derives the slot paths for a category, e.g. family_a.csv and family_b.csv
func NewDestinations(dir, category string) Destinations {
	prefix := strings.ToLower(strings.TrimSpace(category))
	return Destinations{
		A: filepath.Join(dir, prefix+"_a.csv"),
		B: filepath.Join(dir, prefix+"_b.csv"),
	}
}

// For returns the slot name and path for a table ordinal. ok is false past slot B.
func (d Destinations) For(ordinal int) (name, path string, ok bool) {
	switch ordinal {
	case 0:
		return "A", d.A, true
	case 1:
		return "B", d.B, true
	default:
		return "", "", false
	}
}

// Writer persists tables to Destinations, overwriting existing files
type Writer struct {
	dest Destinations
}

// NewWriter creates a Writer for the given destinations
func NewWriter(dest Destinations) *Writer {
	return &Writer{dest: dest}
}

// Destinations returns the configured slots
func (w *Writer) Destinations() Destinations {
	return w.dest
}

// WriteTables writes each table to the slot picked by its ordinal. Tables
// beyond the second slot are skipped with a warning.
func (w *Writer) WriteTables(tables []models.Table) ([]models.OutputFile, error) {
	var written []models.OutputFile

	for _, t := range tables {
		if len(t.Rows) == 0 {
			continue
		}

		name, path, ok := w.dest.For(t.Ordinal)
		if !ok {
			log.Warn().
				Int("table", t.Index).
				Int("ordinal", t.Ordinal).
				Int("rows", len(t.Rows)).
				Msg("No destination for qualifying table, skipping")
			continue
		}

		if err := SaveCSV(t.Rows, path); err != nil {
			return written, fmt.Errorf("failed to write destination %s: %w", name, err)
		}

		log.Debug().
			Str("destination", name).
			Str("file", path).
			Int("rows", len(t.Rows)).
			Msg("Table exported")

		written = append(written, models.OutputFile{
			Destination: name,
			Path:        path,
			Rows:        len(t.Rows),
		})
	}

	return written, nil
}

// SaveCSV writes rows to filepath, creating the parent directory if needed.
func SaveCSV(rows []models.Row, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(file, rows); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteCSV encodes the fixed header followed by one record per row
func WriteCSV(out io.Writer, rows []models.Row) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(models.Columns); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.Record()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
