package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/marcelsud/book-catalog/book"
	"github.com/redis/go-redis/v9"
)

/* Redis read-through cache implementing book.Repository
 * Wraps a durable repository; reads are served from Redis when possible,
 * every write invalidates the affected keys (delete-on-write)
 * Cache failures degrade to the inner repository and never surface
 */

const (
	listKey    = "books:all" // cached newest-first listing
	recordKey  = "book"      // record keys: book:{id}
	pingWindow = 5 * time.Second
)

type Cache struct {
	client *redis.Client
	inner  book.Repository
	ttl    time.Duration
}

// NewCache creates a caching repository in front of inner
func NewCache(addr, password string, db int, ttl time.Duration, inner book.Repository) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingWindow)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Cache{
		client: client,
		inner:  inner,
		ttl:    ttl,
	}, nil
}

/* record mirrors book.Book for cache serialization
 * Kept separate so the domain entity carries no storage tags
 */
type record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Genre     string    `json:"genre"`
	Year      int       `json:"year"`
	Cover     string    `json:"cover"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRecord(b book.Book) record {
	return record(b)
}

func (r record) toBook() book.Book {
	return book.Book(r)
}

// Select returns a book from cache, falling back to the inner repository
func (c *Cache) Select(ctx context.Context, id string) (book.Book, error) {
	key := fmt.Sprintf("%s:%s", recordKey, id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var rec record
		if err := json.Unmarshal(data, &rec); err == nil {
			return rec.toBook(), nil
		}
		// Corrupt entry: drop it and fall through to the store
		c.client.Del(ctx, key)
	}

	b, err := c.inner.Select(ctx, id)
	if err != nil {
		return book.Book{}, err
	}
	c.store(ctx, key, toRecord(b))
	return b, nil
}

// SelectAll returns the listing from cache, falling back to the inner repository
func (c *Cache) SelectAll(ctx context.Context) ([]book.Book, error) {
	data, err := c.client.Get(ctx, listKey).Bytes()
	if err == nil {
		var recs []record
		if err := json.Unmarshal(data, &recs); err == nil {
			books := make([]book.Book, 0, len(recs))
			for _, rec := range recs {
				books = append(books, rec.toBook())
			}
			return books, nil
		}
		c.client.Del(ctx, listKey)
	}

	books, err := c.inner.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	recs := make([]record, 0, len(books))
	for _, b := range books {
		recs = append(recs, toRecord(b))
	}
	c.store(ctx, listKey, recs)
	return books, nil
}

// Count always hits the inner repository; the seed guard must not trust a stale cache
func (c *Cache) Count(ctx context.Context) (int64, error) {
	return c.inner.Count(ctx)
}

// Insert writes through and invalidates the listing
func (c *Cache) Insert(ctx context.Context, b book.Book) error {
	if err := c.inner.Insert(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, b.ID)
	return nil
}

// Update writes through and invalidates the record and the listing
func (c *Cache) Update(ctx context.Context, b book.Book) error {
	if err := c.inner.Update(ctx, b); err != nil {
		return err
	}
	c.invalidate(ctx, b.ID)
	return nil
}

// Delete writes through and invalidates the record and the listing
func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// Seed writes through and drops the cached listing
func (c *Cache) Seed(ctx context.Context, books []book.Book) (int, error) {
	count, err := c.inner.Seed(ctx, books)
	if err != nil {
		return 0, err
	}
	c.client.Del(ctx, listKey)
	return count, nil
}

// Close closes the Redis client and the inner repository
func (c *Cache) Close(ctx context.Context) error {
	return errors.Join(c.client.Close(), c.inner.Close(ctx))
}

func (c *Cache) store(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	// Best effort: an unreachable cache must not fail the read
	c.client.Set(ctx, key, data, c.ttl)
}

func (c *Cache) invalidate(ctx context.Context, id string) {
	c.client.Del(ctx, listKey, fmt.Sprintf("%s:%s", recordKey, id))
}
