package github

import (
	"context"

	"golang.org/x/time/rate"
)

// ProactiveRate is the proactive throttle rate for content writes.
// GitHub's secondary limits tolerate roughly one content mutation per
// second; uploads are user-triggered and rare, so this never bites in
// normal use.
const ProactiveRate = 1.0

// RateLimiter proactively throttles upload requests.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a new rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// Wait blocks until it's safe to make a request or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.bucket.Wait(ctx)
}
