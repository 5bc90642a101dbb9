package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AllowsWithinLimit(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Limit: 5, Window: time.Minute})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("client-1")
		assert.True(t, allowed, "request %d should be allowed", i)
	}
}

func TestLimiter_BlocksOverLimit(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Limit: 3, Window: time.Hour})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("client-1")
		assert.True(t, allowed)
	}

	allowed, info := l.Allow("client-1")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, Limit: 1, Window: time.Hour})
	defer l.Stop()

	allowed, _ := l.Allow("client-1")
	assert.True(t, allowed)
	allowed, _ = l.Allow("client-1")
	assert.False(t, allowed)

	allowed, _ = l.Allow("client-2")
	assert.True(t, allowed)
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false, Limit: 1, Window: time.Hour})
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("client-1")
		assert.True(t, allowed)
	}
}

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	tb := newTokenBucket(1, 100) // 100 tokens/sec for a fast test

	assert.True(t, tb.allow())
	assert.False(t, tb.allow())

	time.Sleep(20 * time.Millisecond)
	assert.True(t, tb.allow())
}
