package config

import (
	"time"
)

// RateLimitConfig configures the per-client fixed-window request budget.
// The defaults mirror the Coinglass Hobbyist plan quota of 30 requests per minute.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests a client may make per window
	RequestsPerWindow int `yaml:"requests_per_window"`

	// Window is the fixed window length
	Window time.Duration `yaml:"window"`

	// EvictionInterval is how often stale client entries are swept
	EvictionInterval time.Duration `yaml:"eviction_interval"`

	// EvictionAge is how long after its window expired a client entry is kept
	EvictionAge time.Duration `yaml:"eviction_age"`
}

// GetDefaultRateLimitConfig returns default rate limit configuration
func GetDefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerWindow: 30,
		Window:            60 * time.Second,
		EvictionInterval:  10 * time.Minute,
		EvictionAge:       30 * time.Minute,
	}
}
