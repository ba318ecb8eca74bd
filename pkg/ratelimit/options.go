package ratelimit

import (
	"log/slog"
	"time"
)

// Option configures an AttemptLimiter.
type Option func(*AttemptLimiter)

// WithBackoff makes a key that keeps exhausting its windows wait an extra,
// exponentially growing delay after each exhausted window.
func WithBackoff() Option {
	return func(l *AttemptLimiter) {
		l.backoff = true
	}
}

// WithBackoffLimits sets the first backoff delay and its cap. Defaults are
// one window and sixteen windows. Non-positive values are ignored.
func WithBackoffLimits(base, maxDelay time.Duration) Option {
	return func(l *AttemptLimiter) {
		if base > 0 {
			l.backoffBase = base
		}
		if maxDelay > 0 {
			l.backoffMax = maxDelay
		}
	}
}

// WithNow replaces the clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(l *AttemptLimiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIdleEviction starts a background loop that drops keys untouched for
// idleTTL, checking every interval. Stop it with Close.
func WithIdleEviction(interval, idleTTL time.Duration) Option {
	return func(l *AttemptLimiter) {
		if interval > 0 && idleTTL > 0 {
			l.evictInterval = interval
			l.idleTTL = idleTTL
		}
	}
}

// WithShards sets the number of independently locked key shards.
func WithShards(n int) Option {
	return func(l *AttemptLimiter) {
		if n > 0 {
			l.shards = n
		}
	}
}

// WithLogger sets the logger for eviction events. Defaults to discarding.
func WithLogger(logger *slog.Logger) Option {
	return func(l *AttemptLimiter) {
		if logger != nil {
			l.logger = logger
		}
	}
}
