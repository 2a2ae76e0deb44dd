package redis

import "github.com/redis/rueidis"

// NewCacheForTest creates a Cache with the provided rueidis client (test-only).
func NewCacheForTest(c rueidis.Client) *Cache {
	return &Cache{client: c}
}
