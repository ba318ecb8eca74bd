// Package logger builds *slog.Logger values for guardkit services and holds
// the attribute helpers the other packages log with.
//
// New returns a JSON logger at info level writing to stdout. Options change
// format, level, output and static attributes, and register ContextExtractor
// callbacks that copy request-scoped values (such as a request id) into every
// record. WithEnvironment applies the per-environment defaults used by the
// guardd binary.
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "guardd"),
//		logger.WithLevelName(cfg.Log.Level),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// Secrets and user identifiers never go into records verbatim. RateLimitKey
// and Fingerprint log a short blake2b digest instead, which is enough to
// correlate records about the same key or token:
//
//	log.WarnContext(ctx, "rate limit exceeded",
//		logger.Component("ratelimit"),
//		logger.RateLimitKey(key),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed unconditionally.
package logger
