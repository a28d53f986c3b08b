package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	client.FlushDB(ctx)
	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})
	return client
}

func TestLimits_Enabled(t *testing.T) {
	assert.False(t, Limits{}.Enabled())
	assert.True(t, Limits{PerHour: 1}.Enabled())
}

func TestSlidingWindow_PerMinute(t *testing.T) {
	limiter := NewSlidingWindow(setupTestRedis(t), "test")
	ctx := context.Background()
	limits := Limits{PerMinute: 3}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "user:1", limits)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "user:2", limits)
	require.NoError(t, err)
	assert.True(t, allowed, "other keys are unaffected")
}

func TestSlidingWindow_TightestWindowWins(t *testing.T) {
	limiter := NewSlidingWindow(setupTestRedis(t), "test")
	ctx := context.Background()
	limits := Limits{PerMinute: 10, PerHour: 2}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "user:1", limits)
		require.NoError(t, err)
		require.True(t, allowed)
	}
	allowed, err := limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestSlidingWindow_OldEntriesExpire(t *testing.T) {
	limiter := NewSlidingWindow(setupTestRedis(t), "test")
	ctx := context.Background()
	limits := Limits{PerMinute: 1}

	base := time.Now()
	limiter.now = func() time.Time { return base }
	allowed, err := limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	require.True(t, allowed)

	limiter.now = func() time.Time { return base.Add(61 * time.Second) }
	allowed, err = limiter.Allow(ctx, "user:1", limits)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestSlidingWindow_CountAndReset(t *testing.T) {
	limiter := NewSlidingWindow(setupTestRedis(t), "test")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := limiter.Allow(ctx, "user:9", Limits{PerMinute: 5})
		require.NoError(t, err)
	}

	n, err := limiter.Count(ctx, "user:9", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.NoError(t, limiter.Reset(ctx, "user:9"))
	n, err = limiter.Count(ctx, "user:9", time.Minute)
	require.NoError(t, err)
	assert.Zero(t, n)
}
