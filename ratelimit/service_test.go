package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/coinglass-proxy/config"
)

func TestService_CheckDelegatesToLimiter(t *testing.T) {
	cfg := config.RateLimitConfig{
		RequestsPerWindow: 2,
		Window:            time.Minute,
		EvictionInterval:  time.Hour,
		EvictionAge:       time.Hour,
	}

	service := NewService(cfg)
	require.NoError(t, service.Start(context.Background()))
	defer service.Stop()

	assert.True(t, service.Check("client-a").Allowed)
	assert.True(t, service.Check("client-a").Allowed)
	assert.False(t, service.Check("client-a").Allowed)
	assert.True(t, service.Healthy())
}

func TestService_StartStop(t *testing.T) {
	service := NewService(config.GetDefaultRateLimitConfig())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, service.Start(ctx))
	assert.True(t, service.scheduler.IsRunning())

	service.Stop()
	assert.False(t, service.scheduler.IsRunning())
	cancel()
}
