package middleware

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/time/rate"
)

// ErrRateLimited is returned when a key exceeds its allowance.
var ErrRateLimited = errors.New("too many attempts, try again later")

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter keeps one token bucket per key.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

// NewKeyedLimiter allows attempts events per window for each key. Buckets
// idle for longer than window are dropped by Cleanup.
func NewKeyedLimiter(attempts int, window time.Duration) *KeyedLimiter {
	return &KeyedLimiter{
		limiters: make(map[string]*limiterEntry),
		rate:     rate.Every(window / time.Duration(attempts)),
		burst:    attempts,
		idle:     window,
		now:      time.Now,
	}
}

// Allow reports whether one more event for key is permitted now.
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// Cleanup drops buckets that have been idle for a full window. An idle
// bucket is full again, so dropping it does not change behaviour.
func (l *KeyedLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.idle)
	removed := 0
	for key, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, key)
			removed++
		}
	}
	return removed
}

// KeyFunc extracts the rate limit key from a request. ok is false for
// requests that are not limited.
type KeyFunc func(req connect.AnyRequest) (key string, ok bool)

// RateLimit rejects requests whose key is over its allowance with
// ResourceExhausted.
func RateLimit(limiter *KeyedLimiter, keyOf KeyFunc) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			key, ok := keyOf(req)
			if ok && !limiter.Allow(req.Spec().Procedure+"|"+key) {
				slog.Warn("Rate limit exceeded", "procedure", req.Spec().Procedure)
				return nil, connect.NewError(connect.CodeResourceExhausted, ErrRateLimited)
			}
			return next(ctx, req)
		}
	}
}
