package core

import (
	"context"

	"github.com/status-im/coinglass-proxy/cache"
	"github.com/status-im/coinglass-proxy/coinglass"
	"github.com/status-im/coinglass-proxy/config"
	"github.com/status-im/coinglass-proxy/ratelimit"
)

// Services holds the gateway's wired components
type Services struct {
	Cache     *cache.Service
	RateLimit *ratelimit.Service
	Coinglass *coinglass.Service
}

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, *Services, error) {
	registry := NewRegistry()

	// Create Cache service
	cacheService := cache.NewService(cfg.Cache)
	registry.Register(cacheService)

	// Create the per-client rate limit service
	rateLimitService := ratelimit.NewService(cfg.RateLimit)
	registry.Register(rateLimitService)

	// Create the Coinglass proxy service with its cache dependency
	coinglassService := coinglass.NewService(cacheService, cfg)
	registry.Register(coinglassService)

	services := &Services{
		Cache:     cacheService,
		RateLimit: rateLimitService,
		Coinglass: coinglassService,
	}

	return registry, services, nil
}
