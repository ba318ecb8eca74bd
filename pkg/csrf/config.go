package csrf

import "time"

type Config struct {
	TTL            time.Duration `env:"CSRF_TTL" envDefault:"1h"`
	SweepInterval  time.Duration `env:"CSRF_SWEEP_INTERVAL" envDefault:"5m"`
	RedisKeyPrefix string        `env:"CSRF_REDIS_PREFIX" envDefault:"csrf:"`
}

func DefaultConfig() Config {
	return Config{
		TTL:            time.Hour,
		SweepInterval:  5 * time.Minute,
		RedisKeyPrefix: defaultKeyPrefix,
	}
}

// NewFromConfig creates a Manager from cfg. Options are applied after the
// config values.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := []Option{
		WithTTL(cfg.TTL),
		WithSweepInterval(cfg.SweepInterval),
	}
	return NewManager(append(configOpts, opts...)...)
}
