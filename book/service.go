package book

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// DefaultStoreTimeout bounds every repository call made by the service
const DefaultStoreTimeout = 5 * time.Second

// UseCase defines the business operations for catalog management
type UseCase interface {
	List(ctx context.Context) ([]Book, error)
	Get(ctx context.Context, id string) (Book, error)
	Create(ctx context.Context, title, author, genre string, year int, cover string) (Book, error)
	Update(ctx context.Context, id, title, author, genre string, year int, cover string) (Book, error)
	Delete(ctx context.Context, id string) error
	SeedIfEmpty(ctx context.Context) (int, error)
}

type Service struct {
	Repo    Repository
	Catalog []Book // starter catalog used by SeedIfEmpty
	Timeout time.Duration
}

// NewService creates a new catalog service with dependency injection
func NewService(repo Repository) *Service {
	return NewServiceWithTimeout(repo, DefaultStoreTimeout)
}

// NewServiceWithTimeout creates a catalog service with a custom store timeout
func NewServiceWithTimeout(repo Repository, timeout time.Duration) *Service {
	return &Service{
		Repo:    repo,
		Catalog: StarterCatalog(),
		Timeout: timeout,
	}
}

// List returns every book in the catalog, newest-created-first
func (s *Service) List(ctx context.Context) ([]Book, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	all, err := s.Repo.SelectAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", err)
	}
	return all, nil
}

// Get returns a single book by id
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	b, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting book: %w", err)
	}
	return b, nil
}

// Create validates the input, assigns identity and timestamps, and persists the book
func (s *Service) Create(ctx context.Context, title, author, genre string, year int, cover string) (Book, error) {
	if err := validate(title, author, genre, year); err != nil {
		return Book{}, err
	}

	now := time.Now()
	b := Book{
		ID:        uuid.New().String(),
		Title:     title,
		Author:    author,
		Genre:     genre,
		Year:      year,
		Cover:     cover,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.Repo.Insert(ctx, b); err != nil {
		return Book{}, fmt.Errorf("inserting book: %w", err)
	}
	return b, nil
}

// Update replaces the scalar fields and cover of an existing book
func (s *Service) Update(ctx context.Context, id, title, author, genre string, year int, cover string) (Book, error) {
	if err := validate(title, author, genre, year); err != nil {
		return Book{}, err
	}

	b := Book{
		ID:        id,
		Title:     title,
		Author:    author,
		Genre:     genre,
		Year:      year,
		Cover:     cover,
		UpdatedAt: time.Now(),
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.Repo.Update(ctx, b); err != nil {
		return Book{}, fmt.Errorf("updating book: %w", err)
	}
	// CreatedAt is owned by the store; re-read so callers get the full record
	updated, err := s.Repo.Select(ctx, id)
	if err != nil {
		return Book{}, fmt.Errorf("selecting updated book: %w", err)
	}
	return updated, nil
}

// Delete removes a book. A second delete of the same id reports ErrNotFound
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting book: %w", err)
	}
	return nil
}

/* SeedIfEmpty inserts the starter catalog only when the store is empty
 * Safe to call repeatedly: a non-empty store yields ErrAlreadySeeded
 */
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	now := time.Now()
	records := make([]Book, 0, len(s.Catalog))
	for _, b := range s.Catalog {
		b.ID = uuid.New().String()
		b.CreatedAt = now
		b.UpdatedAt = now
		records = append(records, b)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	count, err := s.Repo.Seed(ctx, records)
	if err != nil {
		return 0, fmt.Errorf("seeding catalog: %w", err)
	}
	return count, nil
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func validate(title, author, genre string, year int) error {
	if title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if author == "" {
		return &ValidationError{Field: "author", Reason: "must not be empty"}
	}
	if genre == "" {
		return &ValidationError{Field: "genre", Reason: "must not be empty"}
	}
	// No range check on year; only presence is required
	if year == 0 {
		return &ValidationError{Field: "year", Reason: "is required"}
	}
	return nil
}
