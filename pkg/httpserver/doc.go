// Package httpserver runs the guardd HTTP listener with sane timeouts and a
// graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithSignals(),
//		httpserver.WithStopHook(func() { _ = limiter.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Run returns nil after a clean shutdown. Listen failures wrap ErrStart and
// drain failures wrap ErrShutdown.
//
// HealthCheckHandler serves liveness and readiness probes; readiness takes
// Check functions such as a Redis ping.
package httpserver
