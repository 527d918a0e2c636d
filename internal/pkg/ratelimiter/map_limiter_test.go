package ratelimiter_test

import (
	"mint-service/internal/pkg/ratelimiter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMapLimiter(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("burst then reject with retry delay", func(t *testing.T) {
		l := ratelimiter.New(1, 2, time.Minute)

		ok, _ := l.Allow("10.0.0.1", now)
		assert.True(t, ok)
		ok, _ = l.Allow("10.0.0.1", now)
		assert.True(t, ok)

		ok, wait := l.Allow("10.0.0.1", now)
		assert.False(t, ok)
		assert.Equal(t, time.Second, wait)

		// other clients have their own bucket
		ok, _ = l.Allow("10.0.0.2", now)
		assert.True(t, ok)
	})

	t.Run("rejected attempts do not drain the bucket", func(t *testing.T) {
		l := ratelimiter.New(1, 1, time.Minute)

		ok, _ := l.Allow("10.0.0.1", now)
		assert.True(t, ok)
		for i := 0; i < 5; i++ {
			ok, _ = l.Allow("10.0.0.1", now.Add(500*time.Millisecond))
			assert.False(t, ok)
		}

		ok, _ = l.Allow("10.0.0.1", now.Add(time.Second))
		assert.True(t, ok)
	})

	t.Run("nil limiter allows", func(t *testing.T) {
		l := ratelimiter.New(0, 0, 0)

		assert.Nil(t, l)
		ok, wait := l.Allow("10.0.0.1", now)
		assert.True(t, ok)
		assert.Zero(t, wait)
	})

	t.Run("idle clients are swept", func(t *testing.T) {
		l := ratelimiter.New(10, 10, time.Minute)
		l.Allow("stale", now)
		l.Allow("fresh", now.Add(30*time.Second))
		assert.Equal(t, 2, l.Len())

		l.Allow("fresh", now.Add(90*time.Second))

		assert.Equal(t, 1, l.Len())
	})
}
