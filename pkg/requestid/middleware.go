package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header carries the request id in both directions.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Option configures Middleware.
type Option func(*options)

type options struct {
	generate func() string
	trust    bool
}

// WithGenerator replaces the UUIDv4 generator.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generate = fn
		}
	}
}

// WithTrustIncoming controls whether a well-formed client supplied id is
// reused. It is on by default; public edges may prefer to always mint their
// own.
func WithTrustIncoming(trust bool) Option {
	return func(o *options) { o.trust = trust }
}

// Middleware attaches a request id to the request context and echoes it in
// the response header. Malformed incoming ids are replaced, never reflected.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	o := options{generate: uuid.NewString, trust: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !o.trust || !Valid(id) {
				id = o.generate()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Valid reports whether id is safe to reuse and log.
func Valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
