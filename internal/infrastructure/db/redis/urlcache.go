package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheTTL stays well below the 1h presigned URL lifetime so a cached URL is
// always still valid when served.
const cacheTTL = 50 * time.Minute

// URLCache caches presigned poster URLs by storage key.
// Key format: poster_url:<storage_key>
type URLCache struct {
	client *redis.Client
}

// NewURLCache creates a URLCache wrapping the given Redis client.
func NewURLCache(client *redis.Client) *URLCache {
	return &URLCache{client: client}
}

// Get returns the cached URL for key, or "" on a miss.
func (c *URLCache) Get(ctx context.Context, key string) (string, error) {
	url, err := c.client.Get(ctx, c.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("url cache get: %w", err)
	}
	return url, nil
}

// Set stores a freshly signed URL (expires after cacheTTL).
func (c *URLCache) Set(ctx context.Context, key, url string) error {
	return c.client.Set(ctx, c.key(key), url, cacheTTL).Err()
}

func (c *URLCache) key(storageKey string) string {
	return "poster_url:" + storageKey
}
