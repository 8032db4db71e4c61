package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the catalog.
type Metrics struct {
	// TotalBooks is the number of books in the catalog
	TotalBooks int64 `json:"total_books"`

	// GenreCounts maps genre to the number of books in that genre
	GenreCounts map[string]int64 `json:"genre_counts"`

	// CoverKinds maps cover shape (empty, inline, reference) to record count
	CoverKinds map[string]int64 `json:"cover_kinds"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the catalog store.
type Collector interface {
	// Collect gathers current metrics from the store
	Collect(ctx context.Context) (Metrics, error)

	// GetTotalBooks returns the number of books in the catalog
	GetTotalBooks(ctx context.Context) (int64, error)

	// GetGenreCounts returns the count of books per genre
	GetGenreCounts(ctx context.Context) (map[string]int64, error)

	// GetCoverKinds returns the count of books per cover shape
	GetCoverKinds(ctx context.Context) (map[string]int64, error)
}
