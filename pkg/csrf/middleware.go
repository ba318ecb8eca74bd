package csrf

import (
	"net/http"
)

const (
	// HeaderName carries the token on API requests.
	HeaderName = "X-CSRF-Token"
	// FormField carries the token in HTML form posts.
	FormField = "csrf_token"
)

// ErrorHandler writes the response for a rejected request.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onError ErrorHandler
	skip    func(*http.Request) bool
}

func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(c *middlewareConfig) {
		if h != nil {
			c.onError = h
		}
	}
}

// WithSkipFunc exempts requests for which fn returns true, such as webhook
// endpoints authenticated by signature.
func WithSkipFunc(fn func(*http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) { c.skip = fn }
}

// Middleware requires every state-changing request to carry a valid token,
// which it consumes. GET, HEAD, OPTIONS and TRACE pass untouched.
func Middleware(m *Manager, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if m == nil {
		panic("csrf: manager is required")
	}

	cfg := &middlewareConfig{onError: Forbidden}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if safeMethod(r.Method) || (cfg.skip != nil && cfg.skip(r)) {
				next.ServeHTTP(w, r)
				return
			}

			token := FromRequest(r)
			if token == "" {
				cfg.onError(w, r, ErrTokenMissing)
				return
			}
			if !m.Consume(r.Context(), token) {
				cfg.onError(w, r, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// FromRequest returns the token from the X-CSRF-Token header, falling back
// to the csrf_token form field.
func FromRequest(r *http.Request) string {
	if token := r.Header.Get(HeaderName); token != "" {
		return token
	}
	return r.PostFormValue(FormField)
}

// Forbidden is the default ErrorHandler.
func Forbidden(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}
