package httpserver

import "time"

// Config holds listener and timeout settings. Zero values fall back to the
// package defaults.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxHeaderBytes    int           `env:"HTTP_MAX_HEADER_BYTES" envDefault:"65536"`
}

// NewFromConfig creates a Server from cfg. Options are applied after the
// config values and win over them.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	configOpts := make([]Option, 0, len(opts)+1)
	configOpts = append(configOpts, func(c *config) {
		if cfg.Addr != "" {
			c.addr = cfg.Addr
		}
		if cfg.ReadHeaderTimeout > 0 {
			c.readHeaderTimeout = cfg.ReadHeaderTimeout
		}
		if cfg.ReadTimeout > 0 {
			c.readTimeout = cfg.ReadTimeout
		}
		if cfg.WriteTimeout > 0 {
			c.writeTimeout = cfg.WriteTimeout
		}
		if cfg.IdleTimeout > 0 {
			c.idleTimeout = cfg.IdleTimeout
		}
		if cfg.ShutdownTimeout > 0 {
			c.shutdownTimeout = cfg.ShutdownTimeout
		}
		if cfg.MaxHeaderBytes > 0 {
			c.maxHeaderBytes = cfg.MaxHeaderBytes
		}
	})
	return New(append(configOpts, opts...)...)
}
