// Package ratelimit implements client-side request pacing.
// The exporter walks hundreds of resources in a tight loop; the pacer
// enforces a minimum interval between consecutive requests so the
// upstream API is not hammered.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum interval between consecutive requests.
// A nil Pacer or a zero interval disables pacing.
type Pacer struct {
	mu       sync.Mutex
	interval time.Duration
	next     time.Time
}

// NewPacer creates a pacer with the given minimum interval between
// requests. An interval <= 0 disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Interval returns the configured minimum interval.
func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	return p.interval
}

// Wait blocks until the pacer's interval has elapsed since the previous
// request. It returns early with the context's error if the context is
// cancelled during the wait.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return nil
	}

	p.mu.Lock()
	now := time.Now()
	var wait time.Duration
	if p.next.After(now) {
		wait = p.next.Sub(now)
	}
	// Reserve the next slot before sleeping so concurrent callers
	// queue up behind each other.
	p.next = now.Add(wait + p.interval)
	p.mu.Unlock()

	if wait == 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
