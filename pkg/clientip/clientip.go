package clientip

import (
	"context"
	"net"
	"net/http"
	"strings"
)

// Config lists the proxy headers the deployment guarantees to overwrite.
// Leave it empty when the service is reachable directly: any client can set
// these headers, and a spoofed address would let it pick its own rate limit
// key.
type Config struct {
	TrustedHeaders []string `env:"CLIENTIP_TRUSTED_HEADERS" envSeparator:","`
}

// Resolver extracts the client address from a request.
type Resolver struct {
	headers []string
}

// NewResolver returns a Resolver that consults trustedHeaders in order before
// falling back to the connection address. Typical values are
// CF-Connecting-IP, X-Real-IP and X-Forwarded-For.
func NewResolver(trustedHeaders ...string) *Resolver {
	headers := make([]string, 0, len(trustedHeaders))
	for _, h := range trustedHeaders {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, http.CanonicalHeaderKey(h))
		}
	}
	return &Resolver{headers: headers}
}

// NewFromConfig is NewResolver(cfg.TrustedHeaders...).
func NewFromConfig(cfg Config) *Resolver {
	return NewResolver(cfg.TrustedHeaders...)
}

// IP returns the normalised client address, or "" if none is valid.
// For X-Forwarded-For the rightmost valid entry is used, being the one
// appended by the nearest proxy.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		value := r.Header.Get(h)
		if value == "" {
			continue
		}

		if h == "X-Forwarded-For" {
			hops := strings.Split(value, ",")
			for i := len(hops) - 1; i >= 0; i-- {
				if ip := parseIP(hops[i]); ip != "" {
					return ip
				}
			}
			continue
		}

		if ip := parseIP(value); ip != "" {
			return ip
		}
	}

	return RemoteIP(r)
}

// Middleware stores the resolved address in the request context, where
// FromContext finds it.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := WithIP(r.Context(), res.IP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RemoteIP returns the address of the TCP peer, ignoring all headers.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

type contextKey struct{}

// WithIP returns a copy of ctx carrying ip.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// FromContext returns the address stored by WithIP or Middleware.
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
