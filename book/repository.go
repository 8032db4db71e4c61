package book

import "context"

/* Small, focused interfaces
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations for the catalog
type Reader interface {
	/* Context is always the first parameter in functions that do I/O
	 * This allows for cancellation, timeouts, and shared values
	 */
	Select(ctx context.Context, id string) (Book, error)
	// SelectAll returns every book, newest-created-first
	SelectAll(ctx context.Context) ([]Book, error)
	Count(ctx context.Context) (int64, error)
}

// Writer provides write operations for the catalog
type Writer interface {
	Insert(ctx context.Context, b Book) error
	// Update replaces the scalar fields and cover of an existing record
	Update(ctx context.Context, b Book) error
	Delete(ctx context.Context, id string) error
	/* Seed bulk-inserts the starter catalog only if the store is empty
	 * The emptiness check and the insert must be atomic
	 */
	Seed(ctx context.Context, books []Book) (int, error)
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
	Close(ctx context.Context) error
}
