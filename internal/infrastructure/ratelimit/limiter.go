// Package ratelimit throttles ticket mutations per user with sliding
// windows kept in Redis sorted sets.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limits caps requests per window. A zero value disables that window.
type Limits struct {
	PerMinute int
	PerHour   int
	PerDay    int
}

// Enabled reports whether any window is capped.
func (l Limits) Enabled() bool {
	return l.PerMinute > 0 || l.PerHour > 0 || l.PerDay > 0
}

func (l Limits) windows() []window {
	return []window{
		{time.Minute, l.PerMinute},
		{time.Hour, l.PerHour},
		{24 * time.Hour, l.PerDay},
	}
}

type window struct {
	span  time.Duration
	limit int
}

// SlidingWindow records one entry per request under
// "<prefix>:<key>:<window>" and counts the entries younger than the window.
type SlidingWindow struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

func NewSlidingWindow(client *redis.Client, prefix string) *SlidingWindow {
	return &SlidingWindow{client: client, prefix: prefix, now: time.Now}
}

// Allow records the request and reports whether key is still under every
// capped window. A denied request is still recorded.
func (l *SlidingWindow) Allow(ctx context.Context, key string, limits Limits) (bool, error) {
	now := l.now()
	allowed := true

	for _, w := range limits.windows() {
		if w.limit <= 0 {
			continue
		}
		ok, err := l.checkWindow(ctx, key, w, now)
		if err != nil {
			return false, err
		}
		if !ok {
			allowed = false
		}
	}
	return allowed, nil
}

func (l *SlidingWindow) checkWindow(ctx context.Context, key string, w window, now time.Time) (bool, error) {
	redisKey := l.key(key, w.span)
	windowStart := now.Add(-w.span).UnixNano()

	pipe := l.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	count := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	pipe.Expire(ctx, redisKey, w.span+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to check rate limit window: %w", err)
	}
	return count.Val() < int64(w.limit), nil
}

// Count returns the requests recorded for key within span.
func (l *SlidingWindow) Count(ctx context.Context, key string, span time.Duration) (int64, error) {
	redisKey := l.key(key, span)
	windowStart := l.now().Add(-span).UnixNano()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	count := pipe.ZCard(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to count rate limit window: %w", err)
	}
	return count.Val(), nil
}

// Reset forgets every window of key.
func (l *SlidingWindow) Reset(ctx context.Context, key string) error {
	iter := l.client.Scan(ctx, 0, fmt.Sprintf("%s:%s:*", l.prefix, key), 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}
	return nil
}

func (l *SlidingWindow) key(key string, span time.Duration) string {
	return fmt.Sprintf("%s:%s:%s", l.prefix, key, span)
}
