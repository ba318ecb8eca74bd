package csrf

import "errors"

var (
	// ErrEntropy wraps a failure of the random source used to mint tokens.
	ErrEntropy = errors.New("csrf.entropy_failed")

	// ErrStore wraps a failure of the token store.
	ErrStore = errors.New("csrf.store_failed")

	// ErrTokenNotFound is returned by Store.Load for unknown tokens.
	ErrTokenNotFound = errors.New("csrf.token_not_found")

	// ErrTokenMissing is passed to the middleware error handler when a request
	// carries no token.
	ErrTokenMissing = errors.New("csrf.token_missing")

	// ErrInvalidToken is passed to the middleware error handler when a token is
	// unknown, expired or already used.
	ErrInvalidToken = errors.New("csrf.invalid_token")
)
