package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// GoCache simple in-memory cache implementation using go-cache
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a new GoCache instance
// defaultExpiration: default expiration time for items
// cleanupInterval: interval for cleaning up expired items
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves the value for a key, reporting whether it was found
func (gc *GoCache) Get(key string) ([]byte, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return nil, false
	}

	data, ok := value.([]byte)
	if !ok {
		// Stored value is not []byte, treat as missing
		return nil, false
	}

	return data, true
}

// Set stores a value with the specified timeout
// If timeout is 0, uses cache's default expiration
func (gc *GoCache) Set(key string, data []byte, timeout time.Duration) {
	gc.cache.Set(key, data, timeout)
}

// Delete removes an item from cache by key
func (gc *GoCache) Delete(key string) {
	gc.cache.Delete(key)
}

// Clear removes all items from cache
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of items in cache
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
