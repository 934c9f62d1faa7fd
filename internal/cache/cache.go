// Package cache provides memoization for classification results so a
// denial reason is classified at most once per run even when a remote
// provider backs the fallback seam.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a normalized denial reason
func Key(reason string) string {
	hash := sha256.Sum256([]byte(reason))
	return "claimsift:v1:" + hex.EncodeToString(hash[:])
}
