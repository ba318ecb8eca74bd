package ratelimit

import (
	"context"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	// Allowed indicates whether the attempt is allowed.
	Allowed bool

	// Limit is the maximum number of attempts allowed in the window.
	Limit int

	// Remaining is the number of attempts left in the current window.
	Remaining int

	// ResetAt is when the key may attempt again. For a denied key under
	// backoff it includes the backoff delay.
	ResetAt time.Time

	// Backoff is the extra delay added after the window when the key keeps
	// exhausting its windows. Zero unless backoff is enabled and the attempt
	// was denied.
	Backoff time.Duration

	checkedAt time.Time
}

// RetryAfter returns how long to wait before the next attempt can succeed.
// Returns 0 if the current attempt was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	if r.checkedAt.IsZero() {
		return max(time.Until(r.ResetAt), 0)
	}
	return max(r.ResetAt.Sub(r.checkedAt), 0)
}

// Limiter is implemented by AttemptLimiter and accepted by Middleware.
type Limiter interface {
	// Allow records an attempt for key and reports whether it is allowed.
	Allow(ctx context.Context, key string) (*Result, error)

	// Status reports what Allow would decide without recording an attempt.
	Status(ctx context.Context, key string) (*Result, error)

	// Reset forgets all attempts and backoff state for key.
	Reset(ctx context.Context, key string) error
}
