package ratelimit

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/guardkit/pkg/clientip"
)

// maxKeyLength is the maximum length of a composite key before it is hashed.
const maxKeyLength = 64

// KeyFunc extracts a unique identifier from an HTTP request for rate limiting.
// An empty key skips limiting for that request.
type KeyFunc func(*http.Request) string

// Key joins a policy prefix and an identity, e.g. Key("signin", email) gives
// "signin_<email>". The identity is lowercased and trimmed so equivalent
// spellings share a budget. An empty identity yields an empty key.
func Key(prefix, id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return ""
	}
	if prefix == "" {
		return id
	}
	return prefix + "_" + id
}

// ByClientIP keys requests by the client address resolved by
// clientip.Resolver.Middleware, falling back to the connection address.
func ByClientIP(r *http.Request) string {
	ip := clientip.FromContext(r.Context())
	if ip == "" {
		ip = clientip.RemoteIP(r)
	}
	return Key("ip", ip)
}

// ByHeader keys requests by the value of the named header, e.g. an API key.
// The value is compared case-sensitively.
func ByHeader(name string) KeyFunc {
	prefix := strings.ToLower(name) + "_"
	return func(r *http.Request) string {
		v := strings.TrimSpace(r.Header.Get(name))
		if v == "" {
			return ""
		}
		return prefix + v
	}
}

// Composite combines multiple key extraction functions into a single key.
// Long keys (>64 chars) are hashed to 32 hex chars using SHA256.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			hash := sha256.Sum256([]byte(combined))
			return hex.EncodeToString(hash[:16])
		}

		return combined
	}
}
