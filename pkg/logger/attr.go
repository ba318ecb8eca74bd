package logger

import (
	"encoding/hex"
	"log/slog"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups multiple non-nil errors under the key "errors".
// If all errors are nil, it returns an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// RateLimitKey logs a limiter key by fingerprint. Keys often embed email
// addresses or IPs, which should not reach log storage verbatim.
func RateLimitKey(key string) slog.Attr {
	return slog.String("ratelimit_key", fingerprint(key))
}

// Fingerprint logs a stable, non-reversible identifier for a secret such as
// a CSRF token, so related records can be correlated.
func Fingerprint(secret string) slog.Attr {
	return slog.String("fingerprint", fingerprint(secret))
}

func fingerprint(s string) string {
	if s == "" {
		return ""
	}
	sum := blake2b.Sum256([]byte(s))
	return hex.EncodeToString(sum[:8])
}
