package contact

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

// ClientLimiter provides per-client rate limiting using token buckets.
// A nil *ClientLimiter allows every request.
type ClientLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientBucket
	rps      float64
	burst    int
	now      func() time.Time
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter returns a limiter, or nil when rps is not positive.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		limiters: make(map[string]*clientBucket),
		rps:      rps,
		burst:    burst,
		now:      time.Now,
	}
}

// Allow reports whether the client may make a request now.
func (c *ClientLimiter) Allow(client string) bool {
	if c == nil {
		return true
	}
	c.mu.Lock()
	now := c.now()
	c.pruneLocked(now)
	bucket, ok := c.limiters[client]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(rate.Limit(c.rps), c.burst)}
		c.limiters[client] = bucket
	}
	bucket.lastSeen = now
	c.mu.Unlock()

	return bucket.limiter.AllowN(now, 1)
}

func (c *ClientLimiter) pruneLocked(now time.Time) {
	for key, bucket := range c.limiters {
		if now.Sub(bucket.lastSeen) > limiterIdleTTL {
			delete(c.limiters, key)
		}
	}
}

// Len returns the number of tracked clients.
func (c *ClientLimiter) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.limiters)
}
