package ratelimiter

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MapLimiter throttles mint requests per client. Each client gets its own
// token bucket; buckets untouched for idleTTL are dropped on the next sweep.
type MapLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// New returns nil when rps or burst is not positive. A nil limiter admits everything.
func New(rps float64, burst int, idleTTL time.Duration) *MapLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &MapLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: idleTTL,
		clients: make(map[string]*client),
	}
}

// Allow takes one token for key. When the bucket is empty it reports how long
// the client should wait before the next attempt.
func (l *MapLimiter) Allow(key string, now time.Time) (bool, time.Duration) {
	if l == nil {
		return true, 0
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return true, 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	c, ok := l.clients[key]
	if !ok {
		c = &client{bucket: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now

	r := c.bucket.ReserveN(now, 1)
	if !r.OK() {
		return false, l.idleTTL
	}
	if wait := r.DelayFrom(now); wait > 0 {
		// the request is rejected, so give the token back
		r.CancelAt(now)
		return false, wait
	}
	return true, 0
}

func (l *MapLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idleTTL {
		return
	}
	l.lastSweep = now

	cutoff := now.Add(-l.idleTTL)
	for k, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, k)
		}
	}
}

// Len is the number of clients currently tracked.
func (l *MapLimiter) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}
