package csrf

import "time"

const (
	tokenBytes = 32

	// TokenLength is the length of a token string: 32 random bytes, hex encoded.
	TokenLength = tokenBytes * 2
)

// Token is the stored state of one issued token.
type Token struct {
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Consumed  bool      `json:"-"`
}

// Valid reports whether the token can still be used at now.
func (t Token) Valid(now time.Time) bool {
	return !t.Consumed && now.Before(t.ExpiresAt)
}

// WellFormed reports whether s has the shape of a token this package issues:
// exactly 64 lowercase hex characters. Anything else is rejected before a
// store lookup.
func WellFormed(s string) bool {
	if len(s) != TokenLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
