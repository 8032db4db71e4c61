package book_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcelsud/book-catalog/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarterCatalog(t *testing.T) {
	catalog := book.StarterCatalog()

	require.Len(t, catalog, 9)
	for _, b := range catalog {
		assert.NotEmpty(t, b.Title)
		assert.NotEmpty(t, b.Author)
		assert.NotEmpty(t, b.Genre)
		assert.NotZero(t, b.Year)
		// Identity and timestamps belong to the store, not the catalog
		assert.Empty(t, b.ID)
		assert.True(t, b.CreatedAt.IsZero())
	}
}

func TestLoadCatalog(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
		return path
	}

	t.Run("valid file", func(t *testing.T) {
		path := writeFile(t, `
books:
  - title: Neuromancer
    author: William Gibson
    genre: Cyberpunk
    year: 1984
    cover: /covers/neuromancer.jpg
  - title: Snow Crash
    author: Neal Stephenson
    genre: Cyberpunk
    year: 1992
`)
		books, err := book.LoadCatalog(path)

		require.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Neuromancer", books[0].Title)
		assert.Equal(t, "/covers/neuromancer.jpg", books[0].Cover)
		assert.Empty(t, books[1].Cover)
	})

	t.Run("missing required field", func(t *testing.T) {
		path := writeFile(t, `
books:
  - title: Neuromancer
    genre: Cyberpunk
    year: 1984
`)
		_, err := book.LoadCatalog(path)

		require.Error(t, err)
		assert.True(t, book.IsValidation(err))
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, "books: []\n")

		_, err := book.LoadCatalog(path)

		require.Error(t, err)
	})

	t.Run("file does not exist", func(t *testing.T) {
		_, err := book.LoadCatalog(filepath.Join(t.TempDir(), "nope.yaml"))

		require.Error(t, err)
	})
}
