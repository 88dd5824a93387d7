package ratelimit

import (
	"context"
	"time"
)

const keyPrefix = "ratelimit:lesson_request:"

// Counter increments a window-scoped counter and returns its value after the
// increment. Implemented by cache.Client.
type Counter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// Limiter is a per-identity fixed-window counter. It gates lesson-request
// creation only; reads and status transitions are never throttled.
type Limiter struct {
	counter Counter
	max     int
	window  time.Duration
}

// New creates a limiter allowing max hits per identity per window.
func New(counter Counter, max int, window time.Duration) *Limiter {
	return &Limiter{counter: counter, max: max, window: window}
}

// Allow reports whether the identity may perform another creation within the
// current window. Fails open when the backing counter is unreachable.
func (l *Limiter) Allow(ctx context.Context, identity string) bool {
	if l == nil || identity == "" {
		return true
	}
	count, err := l.counter.Incr(ctx, keyPrefix+identity, l.window)
	if err != nil {
		return true
	}
	return count <= int64(l.max)
}
