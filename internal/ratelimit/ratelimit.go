// Package ratelimit paces document processing in stream mode.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter caps the number of documents processed per second.
type Limiter struct {
	limiter *rate.Limiter
}

// New uses 0 or negative limit for no rate limiting.
func New(documentsPerSecond float64) *Limiter {
	if documentsPerSecond <= 0 {
		return &Limiter{
			limiter: rate.NewLimiter(rate.Inf, 1),
		}
	}

	// Burst of 1: the first document goes through immediately, subsequent
	// documents wait according to the configured rate.
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(documentsPerSecond), 1),
	}
}

// Wait blocks until the next document may be processed or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow is non-blocking and reports whether a document may be processed now.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
