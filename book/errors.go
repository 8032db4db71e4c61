package book

import (
	"errors"
	"fmt"
)

/* Sentinel errors for the catalog
 * Callers match them with errors.Is, the HTTP layer maps them to status codes
 */
var (
	// ErrNotFound is returned when an operation targets an id that does not exist
	ErrNotFound = errors.New("book not found")

	// ErrAlreadySeeded is returned when Seed is called on a non-empty store
	ErrAlreadySeeded = errors.New("catalog already seeded")

	// ErrStoreUnavailable is returned when the underlying store is unreachable
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports a missing or malformed required field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
