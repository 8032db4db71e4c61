package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	"github.com/marcelsud/book-catalog/book"
)

/* PostgreSQL implementation of book.Repository
 * Row ids are uuids assigned by the service; the id column is the only
 * identifier that ever crosses this boundary
 */

type Repository struct {
	DB *sql.DB
}

// NewRepository creates a PostgreSQL repository with the default pool (25, 5, 5 min)
func NewRepository(connectionString string) (*Repository, error) {
	return NewRepositoryWithPoolConfig(connectionString, 25, 5, 5)
}

// NewRepositoryWithPoolConfig creates a PostgreSQL repository with a custom pool
// maxOpenConns: maximum simultaneous connections (0 = unlimited)
// maxIdleConns: maximum idle connections kept in the pool
// maxLifeMinutes: maximum minutes a connection may be reused
func NewRepositoryWithPoolConfig(connectionString string, maxOpenConns, maxIdleConns, maxLifeMinutes int) (*Repository, error) {
	db, err := sql.Open("pgx", connectionString)
	if err != nil {
		return nil, fmt.Errorf("opening postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging postgres: %w", unavailable(err))
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
	if maxLifeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(maxLifeMinutes) * time.Minute)
	}

	return &Repository{
		DB: db,
	}, nil
}

// Select fetches a book by id
func (r *Repository) Select(ctx context.Context, id string) (book.Book, error) {
	query := "SELECT id, title, author, genre, year, cover, created_at, updated_at FROM books WHERE id = $1"

	var b book.Book
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.Year,
		&b.Cover,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return book.Book{}, book.ErrNotFound
	}
	if err != nil {
		return book.Book{}, fmt.Errorf("selecting book: %w", unavailable(err))
	}

	return b, nil
}

// SelectAll returns every book, newest-created-first
func (r *Repository) SelectAll(ctx context.Context) ([]book.Book, error) {
	query := "SELECT id, title, author, genre, year, cover, created_at, updated_at FROM books ORDER BY created_at DESC"

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("selecting books: %w", unavailable(err))
	}
	defer rows.Close()

	books := []book.Book{}

	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year, &b.Cover, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning book: %w", err)
		}
		books = append(books, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating books: %w", unavailable(err))
	}

	return books, nil
}

// Count returns the number of books in the catalog
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting books: %w", unavailable(err))
	}
	return count, nil
}

// Insert persists a new book
func (r *Repository) Insert(ctx context.Context, b book.Book) error {
	query := `
		INSERT INTO books (id, title, author, genre, year, cover, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.DB.ExecContext(ctx, query, b.ID, b.Title, b.Author, b.Genre, b.Year, b.Cover, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting book: %w", unavailable(err))
	}

	return nil
}

// Update replaces the scalar fields and cover of an existing book
// created_at is never touched after insert
func (r *Repository) Update(ctx context.Context, b book.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, genre = $3, year = $4, cover = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := r.DB.ExecContext(ctx, query, b.Title, b.Author, b.Genre, b.Year, b.Cover, b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("updating book: %w", unavailable(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return book.ErrNotFound
	}

	return nil
}

// Delete removes a book by id
func (r *Repository) Delete(ctx context.Context, id string) error {
	query := "DELETE FROM books WHERE id = $1"

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting book: %w", unavailable(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return book.ErrNotFound
	}

	return nil
}

/* Seed bulk-inserts the starter catalog inside a single transaction
 * The table lock serializes concurrent seeds: at READ COMMITTED two
 * transactions could otherwise both observe count 0 and both commit
 */
func (r *Repository) Seed(ctx context.Context, books []book.Book) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", unavailable(err))
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "LOCK TABLE books IN EXCLUSIVE MODE"); err != nil {
		return 0, fmt.Errorf("locking books table: %w", unavailable(err))
	}

	var count int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM books").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting books: %w", unavailable(err))
	}
	if count > 0 {
		return 0, book.ErrAlreadySeeded
	}

	query := `
		INSERT INTO books (id, title, author, genre, year, cover, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, b := range books {
		if _, err := tx.ExecContext(ctx, query, b.ID, b.Title, b.Author, b.Genre, b.Year, b.Cover, b.CreatedAt, b.UpdatedAt); err != nil {
			return 0, fmt.Errorf("inserting catalog book: %w", unavailable(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", unavailable(err))
	}

	return len(books), nil
}

// Close closes the database connection
func (r *Repository) Close(ctx context.Context) error {
	if r.DB != nil {
		return r.DB.Close()
	}
	return nil
}

// CreateTable creates the books table (useful for tests and first boot)
func (r *Repository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			genre TEXT NOT NULL,
			year INTEGER NOT NULL,
			cover TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`

	if _, err := r.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating table: %w", err)
	}

	return nil
}

// DropTable removes the books table (useful for tests)
func (r *Repository) DropTable(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, "DROP TABLE IF EXISTS books CASCADE"); err != nil {
		return fmt.Errorf("dropping table: %w", err)
	}

	return nil
}

/* unavailable tags driver failures so the HTTP layer can map them to a
 * stable store_unavailable error code without inspecting driver internals
 */
func unavailable(err error) error {
	return errors.Join(book.ErrStoreUnavailable, err)
}
