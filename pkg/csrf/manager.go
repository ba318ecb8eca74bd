package csrf

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/guardkit/pkg/logger"
)

const defaultTTL = time.Hour

// Manager issues single-use CSRF tokens and checks them.
type Manager struct {
	store         Store
	ownsStore     bool
	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time
	entropy       io.Reader
	logger        *slog.Logger
}

// NewManager returns a Manager. Without WithStore it keeps tokens in a
// MemoryStore that it owns and stops on Close.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		ttl:     defaultTTL,
		now:     time.Now,
		entropy: rand.Reader,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.store == nil {
		m.store = NewMemoryStore(WithMemorySweepInterval(m.sweepInterval), WithMemoryClock(m.now))
		m.ownsStore = true
	}
	return m
}

// TTL returns the lifetime of newly issued tokens.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Generate issues a new token valid for TTL. Failures of the random source
// wrap ErrEntropy and failures of the store wrap ErrStore; neither should be
// hidden from the caller.
func (m *Manager) Generate(ctx context.Context) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := io.ReadFull(m.entropy, buf); err != nil {
		return "", errors.Join(ErrEntropy, err)
	}
	token := hex.EncodeToString(buf)

	now := m.now()
	if err := m.store.Save(ctx, token, Token{CreatedAt: now, ExpiresAt: now.Add(m.ttl)}); err != nil {
		return "", errors.Join(ErrStore, err)
	}

	m.logger.DebugContext(ctx, "csrf token issued",
		logger.Component("csrf"),
		logger.Event("generate"),
		logger.Fingerprint(token),
	)
	return token, nil
}

// Validate reports whether token is known, unexpired and unused. It never
// changes state.
func (m *Manager) Validate(ctx context.Context, token string) bool {
	if !WellFormed(token) {
		return false
	}

	t, err := m.store.Load(ctx, token)
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			m.logStoreError(ctx, "validate", token, err)
		}
		return false
	}
	return t.Valid(m.now())
}

// Consume uses token. It returns true at most once per token, even under
// concurrent calls, and only while the token is valid.
func (m *Manager) Consume(ctx context.Context, token string) bool {
	if !WellFormed(token) {
		return false
	}

	ok, err := m.store.Consume(ctx, token, m.now())
	if err != nil {
		m.logStoreError(ctx, "consume", token, err)
		return false
	}
	return ok
}

// Close stops the sweep loop of a store the Manager created itself.
func (m *Manager) Close() error {
	if !m.ownsStore {
		return nil
	}
	if c, ok := m.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (m *Manager) logStoreError(ctx context.Context, event, token string, err error) {
	m.logger.ErrorContext(ctx, "csrf store failed",
		logger.Component("csrf"),
		logger.Event(event),
		logger.Fingerprint(token),
		logger.Error(err),
	)
}
