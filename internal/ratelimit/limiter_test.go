package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credlens/credlens/internal/monitoring"
)

func fallbackLimiter(cfg Config) *RateLimiter {
	return NewRateLimiter(&RedisClient{enabled: false}, cfg, monitoring.NewMetrics())
}

func TestRateLimiterFallbackMode(t *testing.T) {
	limiter := fallbackLimiter(Config{IPLimitPerMin: 3, BurstMultiplier: 1})
	ctx := context.Background()

	// The fallback bucket carries a burst floor of 5 when
	// limit*multiplier comes in under it.
	for i := 0; i < 5; i++ {
		result, err := limiter.AllowIP(ctx, "198.51.100.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 3, result.Limit)
	}

	result, err := limiter.AllowIP(ctx, "198.51.100.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed, "6th request should be blocked")
	assert.Greater(t, result.RetryAfter, time.Duration(0))
}

func TestRateLimiterBurstMultiplier(t *testing.T) {
	limiter := fallbackLimiter(Config{IPLimitPerMin: 10, BurstMultiplier: 2})
	ctx := context.Background()

	allowed := 0
	for i := 0; i < 30; i++ {
		result, err := limiter.AllowIP(ctx, "198.51.100.2")
		require.NoError(t, err)
		if result.Allowed {
			allowed++
		}
	}

	// Burst capacity is limit times multiplier; refill over a fast loop
	// stays marginal.
	assert.GreaterOrEqual(t, allowed, 20)
	assert.LessOrEqual(t, allowed, 22)
}

func TestRateLimiterIndependentIPs(t *testing.T) {
	limiter := fallbackLimiter(Config{IPLimitPerMin: 3, BurstMultiplier: 1})
	ctx := context.Background()

	// Exhaust the first client's bucket.
	for i := 0; i < 6; i++ {
		_, err := limiter.AllowIP(ctx, "198.51.100.3")
		require.NoError(t, err)
	}
	result, err := limiter.AllowIP(ctx, "198.51.100.3")
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	// A different client keeps its own bucket.
	result, err = limiter.AllowIP(ctx, "198.51.100.4")
	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestRateLimiterConcurrency(t *testing.T) {
	limiter := fallbackLimiter(DefaultConfig())
	ctx := context.Background()

	done := make(chan bool, 20)
	for i := 0; i < 20; i++ {
		go func() {
			for j := 0; j < 10; j++ {
				_, err := limiter.AllowIP(ctx, "198.51.100.5")
				assert.NoError(t, err)
			}
			done <- true
		}()
	}
	for i := 0; i < 20; i++ {
		<-done
	}
}

func TestRateLimiterStats(t *testing.T) {
	limiter := fallbackLimiter(DefaultConfig())
	ctx := context.Background()

	_, _ = limiter.AllowIP(ctx, "198.51.100.6")
	_, _ = limiter.AllowIP(ctx, "198.51.100.7")

	stats := limiter.GetStats()
	assert.False(t, stats["redis_enabled"].(bool))
	assert.Equal(t, 2, stats["fallback_limiters"].(int))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 60, cfg.IPLimitPerMin)
	assert.Equal(t, 2, cfg.BurstMultiplier)
}
