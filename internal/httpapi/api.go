package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/guardkit/pkg/clientip"
	"github.com/dmitrymomot/guardkit/pkg/csrf"
	"github.com/dmitrymomot/guardkit/pkg/httpserver"
	"github.com/dmitrymomot/guardkit/pkg/logger"
	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
	"github.com/dmitrymomot/guardkit/pkg/requestid"
)

const defaultMaxBodyBytes = 64 << 10

// API exposes the guardkit primitives over JSON.
type API struct {
	csrf           *csrf.Manager
	ipLimiter      ratelimit.Limiter
	contactLimiter ratelimit.Limiter

	resolver     *clientip.Resolver
	logger       *slog.Logger
	readyChecks  []httpserver.Check
	maxBodyBytes int64
}

// Option configures an API.
type Option func(*API)

func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClientIP sets how client addresses are resolved for per-IP limits.
// The default trusts no proxy headers.
func WithClientIP(res *clientip.Resolver) Option {
	return func(a *API) {
		if res != nil {
			a.resolver = res
		}
	}
}

// WithReadyChecks adds dependencies that /readyz reports on.
func WithReadyChecks(checks ...httpserver.Check) Option {
	return func(a *API) { a.readyChecks = append(a.readyChecks, checks...) }
}

// WithMaxBodyBytes caps request bodies. Defaults to 64 KiB.
func WithMaxBodyBytes(n int64) Option {
	return func(a *API) {
		if n > 0 {
			a.maxBodyBytes = n
		}
	}
}

// New wires an API. The CSRF manager and both limiters are required: ipLimiter
// guards every /v1 route per client address, contactLimiter guards contact
// submissions per sender email.
func New(csrfManager *csrf.Manager, ipLimiter, contactLimiter ratelimit.Limiter, opts ...Option) *API {
	if csrfManager == nil || ipLimiter == nil || contactLimiter == nil {
		panic("httpapi: csrf manager and limiters are required")
	}

	a := &API{
		csrf:           csrfManager,
		ipLimiter:      ipLimiter,
		contactLimiter: contactLimiter,
		resolver:       clientip.NewResolver(),
		logger:         logger.Discard(),
		maxBodyBytes:   defaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Routes returns the HTTP handler.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware(),
		a.resolver.Middleware,
		a.accessLog,
		middleware.Recoverer,
	)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", httpserver.HealthCheckHandler(a.logger))
	r.Get("/readyz", httpserver.HealthCheckHandler(a.logger, a.readyChecks...))

	r.Route("/v1", func(r chi.Router) {
		r.Use(ratelimit.Middleware(a.ipLimiter, ratelimit.ByClientIP,
			ratelimit.WithMiddlewareLogger(a.logger),
			ratelimit.WithOnLimitReached(rateLimited),
		))

		r.Get("/csrf", a.issueToken)
		r.Post("/sanitize", a.sanitize)
		r.Post("/escape", a.escape)
		r.Route("/validate", func(r chi.Router) {
			r.Post("/email", a.validateEmail)
			r.Post("/password", a.validatePassword)
			r.Post("/url", a.validateURL)
		})

		r.With(csrf.Middleware(a.csrf, csrf.WithErrorHandler(csrfRejected))).
			Post("/contact", a.contact)
	})

	return r
}

func rateLimited(w http.ResponseWriter, _ *http.Request, _ *ratelimit.Result) {
	writeError(w, http.StatusTooManyRequests, codeRateLimited, "too many requests, retry later")
}

func csrfRejected(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusForbidden, codeCSRF, err.Error())
}
