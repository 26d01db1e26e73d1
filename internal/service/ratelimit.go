package service

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// WindowLimiter is a fixed-window rate limiter. Allow reports whether the
// caller identified by key may proceed; implementations are injected so the
// lifecycle and test isolation are explicit rather than hidden in a
// module-level map.
type WindowLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryLimiter is an in-process fixed-window limiter with bounded TTL
// eviction. Suitable for single-instance deployments and tests.
type MemoryLimiter struct {
	limit  int
	window time.Duration

	mu      sync.Mutex
	windows map[string]*windowState
}

type windowState struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter creates a limiter allowing limit calls per window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		windows: make(map[string]*windowState),
	}
}

// Allow increments the caller's window counter and reports whether the
// call is within quota. Expired windows for other keys are evicted
// opportunistically to bound memory.
func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, k)
		}
	}

	w, ok := l.windows[key]
	if !ok {
		l.windows[key] = &windowState{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}
	w.count++
	return w.count <= l.limit, nil
}

// RedisLimiter is a fixed-window limiter shared across instances, using
// INCR with a TTL set on first increment.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

// NewRedisLimiter creates a Redis-backed limiter allowing limit calls per
// window.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "ratelimit:",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := l.prefix + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		_ = l.client.Expire(ctx, redisKey, l.window).Err()
	}
	return count <= int64(l.limit), nil
}
