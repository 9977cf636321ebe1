package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsBurstThenDenies(t *testing.T) {
	rl := NewRateLimiter(5)

	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "request %d should pass", i)
	}
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other clients keep their own bucket.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiterFloorsLimit(t *testing.T) {
	rl := NewRateLimiter(0)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}
