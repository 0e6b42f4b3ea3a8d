package http

import (
	"sync"
	"time"
)

// RateLimiter is a sliding window limiter keyed by client.
type RateLimiter struct {
	mu       sync.Mutex
	history  map[string][]time.Time
	limit    int
	interval time.Duration
	now      func() time.Time

	lastSweep time.Time
}

func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		history:  make(map[string][]time.Time),
		limit:    limit,
		interval: interval,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	windowStart := now.Add(-rl.interval)

	rl.sweepLocked(windowStart)

	fresh := rl.freshLocked(key, windowStart)
	if len(fresh) >= rl.limit {
		rl.history[key] = fresh
		return false
	}

	rl.history[key] = append(fresh, now)
	return true
}

func (rl *RateLimiter) freshLocked(key string, windowStart time.Time) []time.Time {
	attempts := rl.history[key]
	fresh := make([]time.Time, 0, len(attempts)+1)
	for _, t := range attempts {
		if t.After(windowStart) {
			fresh = append(fresh, t)
		}
	}
	return fresh
}

// sweepLocked forgets clients whose last attempt left the window. It runs at
// most once per interval.
func (rl *RateLimiter) sweepLocked(windowStart time.Time) {
	if windowStart.Before(rl.lastSweep) {
		return
	}
	rl.lastSweep = windowStart.Add(rl.interval)
	for key, attempts := range rl.history {
		if len(attempts) == 0 || !attempts[len(attempts)-1].After(windowStart) {
			delete(rl.history, key)
		}
	}
}
