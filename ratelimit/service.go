package ratelimit

import (
	"context"
	"log"

	"github.com/status-im/coinglass-proxy/config"
	"github.com/status-im/coinglass-proxy/metrics"
	"github.com/status-im/coinglass-proxy/scheduler"
)

// Service wraps the limiter with a periodic sweep of stale client entries,
// bounding table growth over the life of the process
type Service struct {
	limiter   *Limiter
	config    config.RateLimitConfig
	scheduler *scheduler.Scheduler
}

// NewService creates a new rate limit service from configuration
func NewService(cfg config.RateLimitConfig) *Service {
	s := &Service{
		limiter: NewLimiter(cfg.RequestsPerWindow, cfg.Window),
		config:  cfg,
	}

	s.scheduler = scheduler.New(cfg.EvictionInterval, func(ctx context.Context) {
		s.evictStale()
	})

	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	s.scheduler.Start(ctx, false)
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.scheduler.Stop()
}

// Healthy returns true when the limiter is initialized
func (s *Service) Healthy() bool {
	return s.limiter != nil
}

// Check delegates to the underlying fixed-window limiter
func (s *Service) Check(clientID string) Decision {
	return s.limiter.Check(clientID)
}

func (s *Service) evictStale() {
	evicted := s.limiter.EvictStale(s.config.EvictionAge)
	remaining := s.limiter.ClientCount()
	metrics.RecordRateLimitTrackedClients(remaining)

	if evicted > 0 {
		log.Printf("RateLimit: Evicted %d stale client entries, %d tracked", evicted, remaining)
	}
}
