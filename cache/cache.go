package cache

import "time"

// Cache interface for the in-memory response cache
type Cache interface {
	// Get retrieves data for a key; the second return reports whether it was found
	Get(key string) ([]byte, bool)

	// Set stores data under a key with the specified TTL.
	// If ttl is 0, the cache's default expiration is used.
	Set(key string, data []byte, ttl time.Duration)

	// Delete removes a key from the cache
	Delete(key string)
}
