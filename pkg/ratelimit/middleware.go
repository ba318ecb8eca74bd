package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrymomot/guardkit/pkg/logger"
)

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onLimitReached func(w http.ResponseWriter, r *http.Request, result *Result)
	skipFunc       func(r *http.Request) bool
	logger         *slog.Logger
}

// WithOnLimitReached sets a custom handler for denied requests. Rate limit
// headers are already set when it runs.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onLimitReached = fn
		}
	}
}

// WithSkipFunc sets a function to determine if rate limiting should be skipped.
func WithSkipFunc(fn func(r *http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipFunc = fn
	}
}

// WithMiddlewareLogger logs limiter failures and denials.
func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Middleware enforces limiter per key. It fails open: requests pass when the
// key is empty or the limiter returns an error.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("ratelimit.Middleware: limiter is required")
	}
	if keyFunc == nil {
		panic("ratelimit.Middleware: keyFunc is required")
	}

	cfg := &middlewareConfig{
		onLimitReached: TooManyRequests,
		logger:         logger.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.skipFunc != nil && cfg.skipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				cfg.logger.ErrorContext(r.Context(), "rate limiter failed, allowing request",
					logger.Component("ratelimit"),
					logger.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			SetHeaders(w, result)

			if !result.Allowed {
				cfg.logger.WarnContext(r.Context(), "rate limit exceeded",
					logger.Component("ratelimit"),
					logger.Event("denied"),
					logger.RateLimitKey(key),
				)
				cfg.onLimitReached(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SetHeaders writes the X-RateLimit-* headers for result, and Retry-After
// when it was denied.
func SetHeaders(w http.ResponseWriter, result *Result) {
	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if result.Allowed {
		return
	}
	if result.Backoff > 0 {
		h.Set("X-RateLimit-Backoff", strconv.Itoa(int(result.Backoff.Seconds())))
	}
	h.Set("Retry-After", strconv.Itoa(retryAfterSeconds(result)))
}

// TooManyRequests is the default response for denied requests.
func TooManyRequests(w http.ResponseWriter, r *http.Request, result *Result) {
	http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
}

func retryAfterSeconds(result *Result) int {
	d := result.RetryAfter()
	return max(int((d+time.Second-1)/time.Second), 1)
}
