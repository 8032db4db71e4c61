//go:build integration

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/marcelsud/book-catalog/book"
	"github.com/marcelsud/book-catalog/book/mocks"
	bookredis "github.com/marcelsud/book-catalog/book/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleBook(id string) book.Book {
	now := time.Now().Truncate(time.Second)
	return book.Book{
		ID:        id,
		Title:     "The Hobbit",
		Author:    "J.R.R. Tolkien",
		Genre:     "Fantasy",
		Year:      1937,
		Cover:     "/covers/hobbit.jpg",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCache_Select_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("second read is served from cache", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		inner := mocks.NewRepository(t)
		cache, err := bookredis.NewCache(redisContainer.Addr, "", 0, time.Minute, inner)
		require.NoError(t, err)

		b := sampleBook("book-1")
		// The inner repository must be hit exactly once
		inner.On("Select", mock.Anything, "book-1").Return(b, nil).Once()

		first, err := cache.Select(ctx, "book-1")
		require.NoError(t, err)
		second, err := cache.Select(ctx, "book-1")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.Title, second.Title)
		inner.AssertExpectations(t)
	})

	t.Run("miss falls through to the store error", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		inner := mocks.NewRepository(t)
		cache, err := bookredis.NewCache(redisContainer.Addr, "", 0, time.Minute, inner)
		require.NoError(t, err)

		inner.On("Select", mock.Anything, "missing").Return(book.Book{}, book.ErrNotFound)

		_, err = cache.Select(ctx, "missing")

		require.ErrorIs(t, err, book.ErrNotFound)
	})
}

func TestCache_SelectAll_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("listing is cached until a write invalidates it", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		inner := mocks.NewRepository(t)
		cache, err := bookredis.NewCache(redisContainer.Addr, "", 0, time.Minute, inner)
		require.NoError(t, err)

		listing := []book.Book{sampleBook("book-2"), sampleBook("book-1")}
		inner.On("SelectAll", mock.Anything).Return(listing, nil).Twice()
		inner.On("Insert", mock.Anything, mock.AnythingOfType("book.Book")).Return(nil).Once()

		// First read populates the cache, second is a hit
		first, err := cache.SelectAll(ctx)
		require.NoError(t, err)
		require.Len(t, first, 2)
		_, err = cache.SelectAll(ctx)
		require.NoError(t, err)

		// A write drops the listing, forcing the next read back to the store
		require.NoError(t, cache.Insert(ctx, sampleBook("book-3")))
		_, err = cache.SelectAll(ctx)
		require.NoError(t, err)

		inner.AssertExpectations(t)
	})
}

func TestCache_Delete_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("delete invalidates the cached record", func(t *testing.T) {
		redisContainer, cleanup := SetupRedisContainer(t, ctx)
		defer cleanup()

		inner := mocks.NewRepository(t)
		cache, err := bookredis.NewCache(redisContainer.Addr, "", 0, time.Minute, inner)
		require.NoError(t, err)

		b := sampleBook("book-1")
		inner.On("Select", mock.Anything, "book-1").Return(b, nil).Once()
		inner.On("Delete", mock.Anything, "book-1").Return(nil).Once()
		inner.On("Select", mock.Anything, "book-1").Return(book.Book{}, book.ErrNotFound).Once()

		_, err = cache.Select(ctx, "book-1")
		require.NoError(t, err)

		require.NoError(t, cache.Delete(ctx, "book-1"))

		_, err = cache.Select(ctx, "book-1")
		require.ErrorIs(t, err, book.ErrNotFound)
		inner.AssertExpectations(t)
	})
}
