// Package ratelimit provides a keyed request pacer built on the token bucket
// algorithm. Each key gets an independent limiter enforcing a minimum
// interval between request starts.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum delay between requests per key. The delay is
// measured from the start of the previous request, not its completion, which
// is what rate.Limiter's token refill gives us with burst 1.
type Pacer struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// New creates a pacer with the given minimum interval between requests.
// A zero or negative interval disables pacing entirely.
func New(interval time.Duration) *Pacer {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Pacer{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until a request for the given key is allowed or the context is
// canceled.
func (p *Pacer) Wait(ctx context.Context, key string) error {
	return p.getLimiter(key).Wait(ctx)
}

// Allow reports whether a request for the key may proceed immediately,
// consuming a slot if so.
func (p *Pacer) Allow(key string) bool {
	return p.getLimiter(key).Allow()
}

// getLimiter returns the limiter for a key, creating one if needed.
func (p *Pacer) getLimiter(key string) *rate.Limiter {
	// Fast path: read lock.
	p.mu.RLock()
	limiter, exists := p.limiters[key]
	p.mu.RUnlock()

	if exists {
		return limiter
	}

	// Slow path: write lock to create.
	p.mu.Lock()
	defer p.mu.Unlock()

	// Double-check after acquiring write lock.
	if limiter, exists = p.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(p.limit, 1)
	p.limiters[key] = limiter
	return limiter
}
