package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/guardkit/pkg/logger"
)

// AttemptLimiter allows up to limit attempts per key in a fixed window that
// starts with the key's first attempt. With WithBackoff, a key that exhausts
// windows repeatedly gets a growing delay added after the window: the first
// exhaustion costs only the window, the next one adds the base delay, and so
// on. Each window that ends without being exhausted forgives one violation.
//
// State is kept in memory and is not shared across processes.
type AttemptLimiter struct {
	limit  int
	window time.Duration

	backoff     bool
	backoffBase time.Duration
	backoffMax  time.Duration

	now    func() time.Time
	logger *slog.Logger
	shards int
	store  *memoryStore

	evictInterval time.Duration
	idleTTL       time.Duration
	stop          chan struct{}
	closeOnce     sync.Once
	wg            sync.WaitGroup
}

var _ Limiter = (*AttemptLimiter)(nil)

// NewAttemptLimiter returns a limiter allowing maxAttempts per window.
func NewAttemptLimiter(maxAttempts int, window time.Duration, opts ...Option) (*AttemptLimiter, error) {
	if maxAttempts <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	l := &AttemptLimiter{
		limit:       maxAttempts,
		window:      window,
		backoffBase: window,
		backoffMax:  16 * window,
		now:         time.Now,
		logger:      logger.Discard(),
		stop:        make(chan struct{}),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	l.backoffMax = max(l.backoffMax, l.backoffBase)
	l.store = newMemoryStore(l.shards)

	if l.evictInterval > 0 {
		l.wg.Add(1)
		go l.evictLoop()
	}

	return l, nil
}

// Allow records an attempt for key. The first attempt for an unseen key is
// always allowed; the attempt after the limit within one window is denied.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	e := l.store.lock(key, true)
	defer e.mu.Unlock()

	now := l.now()
	e.lastSeen = now

	if now.Before(e.blockedUntil) {
		return l.denied(e, now), nil
	}

	l.roll(e, now)

	if e.attempts < l.limit {
		e.attempts++
		return &Result{
			Allowed:   true,
			Limit:     l.limit,
			Remaining: l.limit - e.attempts,
			ResetAt:   e.windowStart.Add(l.window),
			checkedAt: now,
		}, nil
	}

	if !e.exhausted {
		e.exhausted = true
		if l.backoff {
			e.backoff = backoffDelay(e.violations, l.backoffBase, l.backoffMax)
			e.violations++
			e.blockedUntil = e.windowStart.Add(l.window + e.backoff)
		}
	}

	return l.denied(e, now), nil
}

// Status reports the state Allow would act on without recording an attempt.
func (l *AttemptLimiter) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := l.now()
	fresh := &Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit,
		ResetAt:   now.Add(l.window),
		checkedAt: now,
	}

	e := l.store.lock(key, false)
	if e == nil {
		return fresh, nil
	}
	defer e.mu.Unlock()

	switch {
	case now.Before(e.blockedUntil):
		return l.denied(e, now), nil
	case e.windowStart.IsZero() || !now.Before(e.windowStart.Add(l.window)):
		return fresh, nil
	case e.attempts >= l.limit:
		return l.denied(e, now), nil
	}

	return &Result{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - e.attempts,
		ResetAt:   e.windowStart.Add(l.window),
		checkedAt: now,
	}, nil
}

// Reset forgets key, including its backoff history. Call it after the
// guarded action succeeds, e.g. a successful sign-in.
func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	l.store.delete(key)
	return nil
}

// Close stops the idle eviction loop, if any. It is safe to call more than once.
func (l *AttemptLimiter) Close() error {
	l.closeOnce.Do(func() {
		close(l.stop)
	})
	l.wg.Wait()
	return nil
}

// roll starts a new window when the current one has elapsed.
func (l *AttemptLimiter) roll(e *entry, now time.Time) {
	if !e.windowStart.IsZero() && now.Before(e.windowStart.Add(l.window)) {
		return
	}

	if !e.windowStart.IsZero() && !e.exhausted && e.violations > 0 {
		e.violations--
	}
	e.backoff = 0

	e.windowStart = now
	e.attempts = 0
	e.exhausted = false
}

func (l *AttemptLimiter) denied(e *entry, now time.Time) *Result {
	resetAt := e.windowStart.Add(l.window)
	if e.blockedUntil.After(resetAt) {
		resetAt = e.blockedUntil
	}

	res := &Result{
		Limit:     l.limit,
		ResetAt:   resetAt,
		checkedAt: now,
	}
	if l.backoff {
		res.Backoff = e.backoff
	}
	return res
}

func (l *AttemptLimiter) evictLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			if n := l.EvictIdle(); n > 0 {
				l.logger.Debug("evicted idle rate limit keys",
					logger.Component("ratelimit"),
					logger.Event("evict"),
					slog.Int("count", n),
				)
			}
		}
	}
}

// EvictIdle drops keys that have not been seen for the idle TTL and are
// neither inside an active window nor blocked. It returns the number of keys
// removed. Without WithIdleEviction it removes keys idle for ten windows.
func (l *AttemptLimiter) EvictIdle() int {
	ttl := l.idleTTL
	if ttl <= 0 {
		ttl = 10 * l.window
	}

	now := l.now()
	return l.store.evict(func(e *entry) bool {
		return now.Sub(e.lastSeen) >= ttl &&
			!now.Before(e.windowStart.Add(l.window)) &&
			!now.Before(e.blockedUntil)
	})
}

// Len returns the number of tracked keys.
func (l *AttemptLimiter) Len() int {
	return l.store.len()
}
