package csrf

import (
	"context"
	"time"
)

// Store persists issued tokens.
type Store interface {
	// Save records a newly issued token.
	Save(ctx context.Context, token string, t Token) error

	// Load returns the token state without changing it, or ErrTokenNotFound.
	Load(ctx context.Context, token string) (Token, error)

	// Consume atomically uses the token. It returns true for exactly one
	// caller, and only if the token was unconsumed and unexpired at now. The
	// token is removed either way once it can no longer be used.
	Consume(ctx context.Context, token string, now time.Time) (bool, error)
}
