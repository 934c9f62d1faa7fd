package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache memoizes classification verdicts in process memory.
// Verdicts expire after their TTL so a rules change does not serve
// stale labels forever within a long-lived process.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache builds a verdict cache. cleanupInterval controls how
// often expired verdicts are swept.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get returns the cached verdict bytes for a denial-reason key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a verdict under the denial-reason key for the given TTL
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete drops one memoized verdict
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear drops every memoized verdict
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
