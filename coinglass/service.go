package coinglass

import (
	"context"
	"fmt"
	"log"

	"github.com/status-im/coinglass-proxy/cache"
	"github.com/status-im/coinglass-proxy/config"
)

const (
	// Cache key prefix for proxied responses
	PROXY_CACHE_PREFIX = "coinglass_proxy"

	// Cache status values reported to the handler
	CacheStatusHit  = "hit"
	CacheStatusMiss = "miss"
)

// APIClient abstracts the upstream client for the proxy service
//
//go:generate mockgen -destination=mocks/api_client.go -package=mocks . APIClient
type APIClient interface {
	Fetch(ctx context.Context, req ProxyRequest) (Outcome, error)
	Healthy() bool
}

// Service provides proxied Coinglass data with response caching.
// Successful payloads are cached for the configured TTL so repeated
// identical queries inside the window skip the upstream call; plan-limited
// and failed outcomes are never cached.
type Service struct {
	cache     cache.Cache
	config    *config.Config
	apiClient APIClient
}

// NewService creates a new Coinglass proxy service with the given cache and config
func NewService(cache cache.Cache, config *config.Config) *Service {
	return &Service{
		cache:     cache,
		config:    config,
		apiClient: NewClient(config),
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
}

// Healthy returns true if the upstream client has fetched successfully
func (s *Service) Healthy() bool {
	return s.apiClient.Healthy()
}

// Proxy resolves a request from cache or the upstream API.
// The returned cache status is "hit" or "miss" for the Cache-Status header.
func (s *Service) Proxy(ctx context.Context, preq ProxyRequest) (Outcome, string, error) {
	cacheKey := s.createCacheKey(preq)

	if data, found := s.cache.Get(cacheKey); found {
		log.Printf("Coinglass: Returning cached response for %s", preq.Endpoint)
		return Outcome{Kind: OutcomeSuccess, Payload: data}, CacheStatusHit, nil
	}

	outcome, err := s.apiClient.Fetch(ctx, preq)
	if err != nil {
		return Outcome{}, CacheStatusMiss, err
	}

	if outcome.Kind == OutcomeSuccess {
		s.cache.Set(cacheKey, outcome.Payload, s.config.Coinglass.CacheTTL)
	}

	return outcome, CacheStatusMiss, nil
}

// createCacheKey derives the cache key from the translated path and
// parameters so equivalent inbound queries share one entry
func (s *Service) createCacheKey(preq ProxyRequest) string {
	requestBuilder := NewProxyRequestBuilder("", preq)
	return fmt.Sprintf("%s:%s", PROXY_CACHE_PREFIX, requestBuilder.BuildURL())
}
