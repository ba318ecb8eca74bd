package csrf

import (
	"io"
	"log/slog"
	"time"
)

// Option configures a Manager.
type Option func(*Manager)

// WithStore replaces the default in-memory store.
func WithStore(store Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithTTL sets how long an issued token stays valid. Defaults to one hour.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithSweepInterval sets the sweep cadence of the default in-memory store.
// It has no effect together with WithStore.
func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.sweepInterval = d
		}
	}
}

// WithNow replaces the clock, mainly for tests.
func WithNow(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithEntropy replaces crypto/rand.Reader as the token source. Only tests
// should need this.
func WithEntropy(r io.Reader) Option {
	return func(m *Manager) {
		if r != nil {
			m.entropy = r
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}
