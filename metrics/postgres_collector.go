package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/marcelsud/book-catalog/book/cover"
)

// PostgresCollector implements the Collector interface against the books table
type PostgresCollector struct {
	db *sql.DB
}

// NewPostgresCollector creates a Postgres-backed metrics collector
func NewPostgresCollector(db *sql.DB) *PostgresCollector {
	return &PostgresCollector{db: db}
}

// Collect gathers all catalog metrics
func (c *PostgresCollector) Collect(ctx context.Context) (Metrics, error) {
	total, err := c.GetTotalBooks(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting total books: %w", err)
	}

	genres, err := c.GetGenreCounts(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting genre counts: %w", err)
	}

	kinds, err := c.GetCoverKinds(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("getting cover kinds: %w", err)
	}

	return Metrics{
		TotalBooks:  total,
		GenreCounts: genres,
		CoverKinds:  kinds,
		Timestamp:   time.Now(),
	}, nil
}

// GetTotalBooks returns the number of books in the catalog
func (c *PostgresCollector) GetTotalBooks(ctx context.Context) (int64, error) {
	var total int64
	err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("counting books: %w", err)
	}
	return total, nil
}

// GetGenreCounts returns the count of books per genre
func (c *PostgresCollector) GetGenreCounts(ctx context.Context) (map[string]int64, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT genre, COUNT(*) FROM books GROUP BY genre")
	if err != nil {
		return nil, fmt.Errorf("counting genres: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var genre string
		var count int64
		if err := rows.Scan(&genre, &count); err != nil {
			return nil, fmt.Errorf("scanning genre count: %w", err)
		}
		counts[genre] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating genre counts: %w", err)
	}

	return counts, nil
}

/* GetCoverKinds classifies stored covers through the cover package
 * so the metric shares the resolver's notion of shape
 */
func (c *PostgresCollector) GetCoverKinds(ctx context.Context) (map[string]int64, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT cover FROM books")
	if err != nil {
		return nil, fmt.Errorf("selecting covers: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scanning cover: %w", err)
		}
		counts[cover.Parse(raw).Kind().String()]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating covers: %w", err)
	}

	return counts, nil
}
