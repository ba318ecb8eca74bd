package ratelimit

import "time"

// Config holds limiter settings loaded from the environment. The tags carry
// no defaults so a single process can load several policies under different
// prefixes; start from DefaultConfig and let the environment override it.
type Config struct {
	MaxAttempts   int           `env:"RATELIMIT_MAX_ATTEMPTS"`
	Window        time.Duration `env:"RATELIMIT_WINDOW"`
	Backoff       bool          `env:"RATELIMIT_BACKOFF"`
	BackoffBase   time.Duration `env:"RATELIMIT_BACKOFF_BASE"`
	BackoffMax    time.Duration `env:"RATELIMIT_BACKOFF_MAX"`
	EvictInterval time.Duration `env:"RATELIMIT_EVICT_INTERVAL"`
	IdleTTL       time.Duration `env:"RATELIMIT_IDLE_TTL"`
}

// DefaultConfig suits sign-in style endpoints: 5 attempts per 15 minutes
// with backoff, idle keys swept every minute.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:   5,
		Window:        15 * time.Minute,
		Backoff:       true,
		EvictInterval: time.Minute,
		IdleTTL:       time.Hour,
	}
}

// NewFromConfig builds an AttemptLimiter from cfg. Options are applied after
// the ones derived from cfg.
func NewFromConfig(cfg Config, opts ...Option) (*AttemptLimiter, error) {
	derived := []Option{
		WithBackoffLimits(cfg.BackoffBase, cfg.BackoffMax),
		WithIdleEviction(cfg.EvictInterval, cfg.IdleTTL),
	}
	if cfg.Backoff {
		derived = append(derived, WithBackoff())
	}

	return NewAttemptLimiter(cfg.MaxAttempts, cfg.Window, append(derived, opts...)...)
}
