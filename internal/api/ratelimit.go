package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter tracks per-client token buckets for the public listing
// endpoints.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limit    float64 // requests per minute
	lastScan time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerMinute per key.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		limit:    float64(requestsPerMinute),
		lastScan: time.Now(),
	}
}

// Allow reports whether the key may make a request now.
func (rl *RateLimiter) Allow(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.pruneLocked(now)

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.limit, last: now}
		rl.buckets[key] = b
	}

	// Refill proportionally to elapsed time, capped at the full bucket.
	b.tokens += now.Sub(b.last).Minutes() * rl.limit
	if b.tokens > rl.limit {
		b.tokens = rl.limit
	}
	b.last = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// pruneLocked drops buckets idle long enough to be full again, at most
// once a minute, so the map does not grow with one entry per client
// ever seen.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	if now.Sub(rl.lastScan) < time.Minute {
		return
	}
	rl.lastScan = now
	for key, b := range rl.buckets {
		if now.Sub(b.last) > time.Minute {
			delete(rl.buckets, key)
		}
	}
}

// RateLimit is gin middleware limiting requests per client IP.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, retry later"})
			return
		}
		c.Next()
	}
}
