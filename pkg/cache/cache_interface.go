package cache

import (
	"context"
	"time"
)

// Key prefixes of the cached list pages.
// Every catalog write drops both, since book views embed author summaries.
const (
	AuthorListPrefix = "authors:list:"
	BookListPrefix   = "books:list:"
)

// Cache interface định nghĩa contract cho cache layer
// Cho phép swap implementation (Redis, no-op)
type Cache interface {
	// Get lấy data từ cache và unmarshal vào dest
	// Returns: (found bool, error)
	// - found = true: cache hit, data đã unmarshal vào dest
	// - found = false: cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set lưu data vào cache với TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete xóa các keys khỏi cache
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern xóa tất cả keys match glob pattern (vd: "books:list:*")
	DeletePattern(ctx context.Context, pattern string) error

	// Ping kiểm tra connection
	Ping(ctx context.Context) error
}

// InvalidateLists drops every cached list page
func InvalidateLists(ctx context.Context, c Cache) error {
	if err := c.DeletePattern(ctx, AuthorListPrefix+"*"); err != nil {
		return err
	}
	return c.DeletePattern(ctx, BookListPrefix+"*")
}
