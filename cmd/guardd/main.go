// Command guardd serves the guardkit sanitizers, validators, rate limiters
// and CSRF tokens over HTTP.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/guardkit/internal/httpapi"
	"github.com/dmitrymomot/guardkit/pkg/clientip"
	"github.com/dmitrymomot/guardkit/pkg/csrf"
	"github.com/dmitrymomot/guardkit/pkg/httpserver"
	"github.com/dmitrymomot/guardkit/pkg/logger"
	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
	"github.com/dmitrymomot/guardkit/pkg/redis"
	"github.com/dmitrymomot/guardkit/pkg/requestid"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "guardd: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Service),
		logger.WithLevelName(cfg.Log.Level),
		logger.WithFormat(logger.Format(cfg.Log.Format)),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	var (
		store  csrf.Store
		checks []httpserver.Check
	)
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()

		store = csrf.NewRedisStore(client, csrf.WithKeyPrefix(cfg.CSRF.RedisKeyPrefix))
		checks = append(checks, redis.Healthcheck(client))
		log.InfoContext(ctx, "csrf tokens stored in redis", logger.Component("guardd"))
	}

	tokens := csrf.NewFromConfig(cfg.CSRF, csrf.WithStore(store), csrf.WithLogger(log))

	ipLimiter, err := ratelimit.NewFromConfig(cfg.IPLimit, ratelimit.WithLogger(log))
	if err != nil {
		return fmt.Errorf("ip rate limit: %w", err)
	}
	contactLimiter, err := ratelimit.NewFromConfig(cfg.ContactLimit, ratelimit.WithLogger(log))
	if err != nil {
		_ = ipLimiter.Close()
		return fmt.Errorf("contact rate limit: %w", err)
	}

	api := httpapi.New(tokens, ipLimiter, contactLimiter,
		httpapi.WithLogger(log),
		httpapi.WithClientIP(clientip.NewFromConfig(cfg.ClientIP)),
		httpapi.WithReadyChecks(checks...),
		httpapi.WithMaxBodyBytes(cfg.MaxBodyBytes),
	)

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithSignals(),
		httpserver.WithStopHook(func() {
			_ = tokens.Close()
			_ = ipLimiter.Close()
			_ = contactLimiter.Close()
		}),
	)

	log.InfoContext(ctx, "guardd starting",
		logger.Component("guardd"),
		slog.String("env", cfg.Env),
		slog.Bool("redis", cfg.Redis.Enabled()),
	)
	return srv.Run(ctx, api.Routes())
}
