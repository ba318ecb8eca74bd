package main

import (
	"time"

	"github.com/dmitrymomot/guardkit/pkg/clientip"
	"github.com/dmitrymomot/guardkit/pkg/config"
	"github.com/dmitrymomot/guardkit/pkg/csrf"
	"github.com/dmitrymomot/guardkit/pkg/httpserver"
	"github.com/dmitrymomot/guardkit/pkg/logger"
	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
	"github.com/dmitrymomot/guardkit/pkg/redis"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Service      string `env:"APP_NAME" envDefault:"guardd"`
	MaxBodyBytes int64  `env:"HTTP_MAX_BODY_BYTES" envDefault:"65536"`

	Log      logger.Config
	HTTP     httpserver.Config
	ClientIP clientip.Config
	Redis    redis.Config
	CSRF     csrf.Config

	// IP_RATELIMIT_* guards every API route per client address.
	IPLimit ratelimit.Config `envPrefix:"IP_"`
	// CONTACT_RATELIMIT_* guards contact submissions per sender email.
	ContactLimit ratelimit.Config `envPrefix:"CONTACT_"`
}

func defaultConfig() appConfig {
	return appConfig{
		CSRF: csrf.DefaultConfig(),
		IPLimit: ratelimit.Config{
			MaxAttempts:   120,
			Window:        time.Minute,
			EvictInterval: time.Minute,
			IdleTTL:       10 * time.Minute,
		},
		ContactLimit: ratelimit.DefaultConfig(),
	}
}

// loadConfig reads .env files (the optional default one when none are given)
// and the environment over the defaults.
func loadConfig(files ...string) (appConfig, error) {
	cfg := defaultConfig()
	if err := config.LoadInto(&cfg, files...); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}
