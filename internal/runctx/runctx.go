// Package runctx tags a single extraction run so its log lines can be correlated.
package runctx

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/law-makers/bulletin/pkg/models"
)

type key int

const runKey key = 0

// Run describes one fetch -> extract -> export pass
type Run struct {
	ID        string
	Month     models.Month
	StartTime time.Time
}

// With attaches a new Run for month m to ctx
func With(ctx context.Context, m models.Month) context.Context {
	return context.WithValue(ctx, runKey, &Run{
		ID:        newID(),
		Month:     m,
		StartTime: time.Now(),
	})
}

// From returns the Run attached to ctx, or a placeholder when there is none
func From(ctx context.Context) *Run {
	if r, ok := ctx.Value(runKey).(*Run); ok {
		return r
	}
	return &Run{ID: "unknown", StartTime: time.Now()}
}

// Elapsed returns the time since the run started
func (r *Run) Elapsed() time.Duration {
	return time.Since(r.StartTime)
}

func newID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
