// Package middleware provides HTTP middleware for the chat API.
package middleware

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter throttles chat turns per session key, keeping one noisy
// session from starving the serialized turn queue.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter

	perSecond rate.Limit
	burst     int
}

// NewRateLimiter creates a rate limiter allowing perSecond turns with the
// given burst per session key.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if perSecond <= 0 {
		perSecond = 2
	}
	if burst <= 0 {
		burst = 5
	}
	return &RateLimiter{
		limits:    make(map[string]*rate.Limiter),
		perSecond: rate.Limit(perSecond),
		burst:     burst,
	}
}

func (rl *RateLimiter) getLimiter(sessionID string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[sessionID]; ok {
		return limiter
	}

	limiter := rate.NewLimiter(rl.perSecond, rl.burst)
	rl.limits[sessionID] = limiter
	return limiter
}

// Allow reports whether the session may take another turn now.
func (rl *RateLimiter) Allow(sessionID string) bool {
	return rl.getLimiter(sessionID).Allow()
}
