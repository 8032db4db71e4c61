package book

import "time"

/* Book represents a catalog entry in the system
 * Uses value semantics as it represents data, not behavior
 */
type Book struct {
	ID        string
	Title     string
	Author    string
	Genre     string
	Year      int
	Cover     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
