package providers

import (
	"fmt"
	"sync"
	"time"
)

// RateLimiter caps outbound requests per endpoint over a sliding window so
// the service stays polite to the FPL API.
type RateLimiter struct {
	mu          sync.Mutex
	requests    map[string][]time.Time
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a limiter allowing maxRequests per window for each
// endpoint path.
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		requests:    make(map[string][]time.Time),
		maxRequests: maxRequests,
		window:      window,
	}
}

// Allow records a request against the endpoint, or rejects it when the
// window is already full.
func (rl *RateLimiter) Allow(endpoint string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.cleanupOldRequests(endpoint, now)

	if len(rl.requests[endpoint]) >= rl.maxRequests {
		return fmt.Errorf("rate limit exceeded for %s: maximum %d requests per %v", endpoint, rl.maxRequests, rl.window)
	}

	rl.requests[endpoint] = append(rl.requests[endpoint], now)
	return nil
}

// cleanupOldRequests drops requests outside the window.
func (rl *RateLimiter) cleanupOldRequests(endpoint string, now time.Time) {
	requests, exists := rl.requests[endpoint]
	if !exists {
		return
	}

	cutoff := now.Add(-rl.window)
	valid := make([]time.Time, 0, len(requests))
	for _, req := range requests {
		if req.After(cutoff) {
			valid = append(valid, req)
		}
	}

	if len(valid) == 0 {
		delete(rl.requests, endpoint)
	} else {
		rl.requests[endpoint] = valid
	}
}

// Reset clears all recorded requests.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.requests = make(map[string][]time.Time)
}
