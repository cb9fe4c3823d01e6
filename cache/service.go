package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/status-im/coinglass-proxy/metrics"
)

// Service implements Cache interface with go-cache only
type Service struct {
	goCache *GoCache
	config  Config
}

// NewService creates a new cache service with the given configuration
func NewService(config Config) *Service {
	var goCache *GoCache

	if config.GoCache.Enabled {
		goCache = NewGoCache(config.GoCache.DefaultExpiration, config.GoCache.CleanupInterval)
	} else {
		// Create a minimal cache even if disabled for consistency
		goCache = NewGoCache(1*time.Minute, 2*time.Minute)
	}

	return &Service{
		goCache: goCache,
		config:  config,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.goCache != nil {
		s.goCache.Clear()
	}
}

// Healthy returns true when the underlying cache is available
func (s *Service) Healthy() bool {
	return s.goCache != nil
}

// Get retrieves data for a key, recording a hit or miss metric
func (s *Service) Get(key string) ([]byte, bool) {
	data, found := s.goCache.Get(key)
	metrics.RecordCacheOperation(found)
	return data, found
}

// Set stores data under a key with the specified TTL
func (s *Service) Set(key string, data []byte, ttl time.Duration) {
	s.goCache.Set(key, data, ttl)
}

// Delete removes a key from the cache
func (s *Service) Delete(key string) {
	s.goCache.Delete(key)
}

// ItemCount returns the number of cached items
func (s *Service) ItemCount() int {
	return s.goCache.ItemCount()
}
