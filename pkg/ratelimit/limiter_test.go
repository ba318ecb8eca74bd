package ratelimit_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/ratelimit"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newLimiter(t *testing.T, limit int, window time.Duration, opts ...ratelimit.Option) (*ratelimit.AttemptLimiter, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	l, err := ratelimit.NewAttemptLimiter(limit, window, append([]ratelimit.Option{ratelimit.WithNow(clock.Now)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	return l, clock
}

func allow(t *testing.T, l *ratelimit.AttemptLimiter, key string) *ratelimit.Result {
	t.Helper()

	res, err := l.Allow(context.Background(), key)
	require.NoError(t, err)
	return res
}

func TestNewAttemptLimiter(t *testing.T) {
	t.Parallel()

	_, err := ratelimit.NewAttemptLimiter(0, time.Minute)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)

	_, err = ratelimit.NewAttemptLimiter(-1, time.Minute)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)

	_, err = ratelimit.NewAttemptLimiter(5, 0)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidInterval)

	l, err := ratelimit.NewAttemptLimiter(5, time.Minute, nil)
	require.NoError(t, err)
	assert.NoError(t, l.Close())
	assert.NoError(t, l.Close())
}

func TestAttemptLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("allows up to the limit then denies", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 2, time.Minute)
		start := clock.Now()

		first := allow(t, l, "signin_user@example.com")
		assert.True(t, first.Allowed)
		assert.Equal(t, 2, first.Limit)
		assert.Equal(t, 1, first.Remaining)
		assert.Equal(t, start.Add(time.Minute), first.ResetAt)

		second := allow(t, l, "signin_user@example.com")
		assert.True(t, second.Allowed)
		assert.Equal(t, 0, second.Remaining)

		third := allow(t, l, "signin_user@example.com")
		assert.False(t, third.Allowed)
		assert.Equal(t, 0, third.Remaining)
		assert.Equal(t, start.Add(time.Minute), third.ResetAt)
		assert.Zero(t, third.Backoff)
		assert.Equal(t, time.Minute, third.RetryAfter())
	})

	t.Run("allows again after the window", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 2, time.Minute)
		allow(t, l, "k")
		allow(t, l, "k")
		require.False(t, allow(t, l, "k").Allowed)

		clock.Advance(59 * time.Second)
		assert.False(t, allow(t, l, "k").Allowed)

		clock.Advance(time.Second)
		res := allow(t, l, "k")
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Remaining)
	})

	t.Run("window starts at the first attempt", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 1, time.Minute)
		clock.Advance(30 * time.Second)
		res := allow(t, l, "k")
		assert.Equal(t, clock.Now().Add(time.Minute), res.ResetAt)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		l, _ := newLimiter(t, 1, time.Minute)
		assert.True(t, allow(t, l, "a").Allowed)
		assert.False(t, allow(t, l, "a").Allowed)
		assert.True(t, allow(t, l, "b").Allowed)
	})

	t.Run("empty key is an error", func(t *testing.T) {
		t.Parallel()

		l, _ := newLimiter(t, 1, time.Minute)
		_, err := l.Allow(context.Background(), "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)

		_, err = l.Status(context.Background(), "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)

		assert.ErrorIs(t, l.Reset(context.Background(), ""), ratelimit.ErrKeyRequired)
	})
}

func TestAttemptLimiter_Reset(t *testing.T) {
	t.Parallel()

	l, _ := newLimiter(t, 2, time.Minute, ratelimit.WithBackoff())
	for range 3 {
		allow(t, l, "signin_user@example.com")
	}
	require.False(t, allow(t, l, "signin_user@example.com").Allowed)

	require.NoError(t, l.Reset(context.Background(), "signin_user@example.com"))

	res := allow(t, l, "signin_user@example.com")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
	assert.Zero(t, res.Backoff)

	assert.NoError(t, l.Reset(context.Background(), "never-seen"))
}

func TestAttemptLimiter_Backoff(t *testing.T) {
	t.Parallel()

	t.Run("consecutive exhausted windows grow the delay up to the cap", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 1, time.Minute, ratelimit.WithBackoff(), ratelimit.WithBackoffLimits(time.Minute, 4*time.Minute))

		expected := []time.Duration{0, time.Minute, 2 * time.Minute, 4 * time.Minute, 4 * time.Minute}
		for i, want := range expected {
			windowStart := clock.Now()
			require.True(t, allow(t, l, "k").Allowed, "round %d", i)

			denied := allow(t, l, "k")
			require.False(t, denied.Allowed)
			assert.Equal(t, want, denied.Backoff, "round %d", i)
			assert.Equal(t, windowStart.Add(time.Minute+want), denied.ResetAt, "round %d", i)

			// Repeated denials in the same window do not escalate.
			again := allow(t, l, "k")
			assert.Equal(t, denied.Backoff, again.Backoff)
			assert.Equal(t, denied.ResetAt, again.ResetAt)

			clock.Advance(denied.ResetAt.Sub(clock.Now()))
		}
	})

	t.Run("first exhaustion costs only the window", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 2, time.Minute, ratelimit.WithBackoff())
		require.True(t, allow(t, l, "k").Allowed)
		require.True(t, allow(t, l, "k").Allowed)

		denied := allow(t, l, "k")
		require.False(t, denied.Allowed)
		assert.Zero(t, denied.Backoff)
		assert.Equal(t, time.Minute, denied.RetryAfter())

		clock.Advance(time.Minute)
		assert.True(t, allow(t, l, "k").Allowed)
	})

	t.Run("blocked until window end plus backoff", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 1, time.Minute, ratelimit.WithBackoff())
		allow(t, l, "k")
		first := allow(t, l, "k")
		require.Zero(t, first.Backoff)
		clock.Advance(first.RetryAfter())

		allow(t, l, "k")
		denied := allow(t, l, "k")
		require.Equal(t, time.Minute, denied.Backoff)

		clock.Advance(time.Minute)
		res := allow(t, l, "k")
		assert.False(t, res.Allowed, "window elapsed but backoff still applies")
		assert.Equal(t, denied.ResetAt, res.ResetAt)

		clock.Advance(time.Minute)
		assert.True(t, allow(t, l, "k").Allowed)
	})

	t.Run("clean windows decay violations", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 1, time.Minute, ratelimit.WithBackoff())

		exhaust := func() *ratelimit.Result {
			require.True(t, allow(t, l, "k").Allowed)
			denied := allow(t, l, "k")
			require.False(t, denied.Allowed)
			clock.Advance(denied.ResetAt.Sub(clock.Now()))
			return denied
		}

		assert.Zero(t, exhaust().Backoff)
		assert.Equal(t, time.Minute, exhaust().Backoff)
		assert.Equal(t, 2*time.Minute, exhaust().Backoff)

		// One clean window forgives one violation.
		require.True(t, allow(t, l, "k").Allowed)
		clock.Advance(time.Minute)

		assert.Equal(t, 2*time.Minute, exhaust().Backoff)
	})

	t.Run("default cap is sixteen windows", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 1, time.Second, ratelimit.WithBackoff())
		var last time.Duration
		for range 8 {
			allow(t, l, "k")
			denied := allow(t, l, "k")
			last = denied.Backoff
			clock.Advance(denied.ResetAt.Sub(clock.Now()))
		}
		assert.Equal(t, 16*time.Second, last)
	})

	t.Run("disabled by default", func(t *testing.T) {
		t.Parallel()

		l, clock := newLimiter(t, 1, time.Minute)
		for range 3 {
			allow(t, l, "k")
			denied := allow(t, l, "k")
			assert.Zero(t, denied.Backoff)
			assert.Equal(t, time.Minute, denied.RetryAfter())
			clock.Advance(time.Minute)
		}
	})
}

func TestAttemptLimiter_Status(t *testing.T) {
	t.Parallel()

	l, clock := newLimiter(t, 2, time.Minute)
	ctx := context.Background()

	status, err := l.Status(ctx, "k")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 2, status.Remaining)

	allow(t, l, "k")
	for range 5 {
		status, err = l.Status(ctx, "k")
		require.NoError(t, err)
		assert.True(t, status.Allowed)
		assert.Equal(t, 1, status.Remaining)
	}

	assert.True(t, allow(t, l, "k").Allowed, "status must not consume attempts")

	status, err = l.Status(ctx, "k")
	require.NoError(t, err)
	assert.False(t, status.Allowed)
	assert.Equal(t, 0, status.Remaining)

	clock.Advance(time.Minute)
	status, err = l.Status(ctx, "k")
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 2, status.Remaining)
}

func TestAttemptLimiter_Concurrency(t *testing.T) {
	t.Parallel()

	t.Run("same key allows exactly the limit", func(t *testing.T) {
		t.Parallel()

		const limit = 10
		l, _ := newLimiter(t, limit, time.Hour)

		var allowed atomic.Int32
		var wg sync.WaitGroup
		for range 200 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := l.Allow(context.Background(), "shared")
				if err == nil && res.Allowed {
					allowed.Add(1)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(limit), allowed.Load())
	})

	t.Run("concurrent resets and attempts across keys", func(t *testing.T) {
		t.Parallel()

		l, _ := newLimiter(t, 3, time.Hour, ratelimit.WithShards(4))

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				key := fmt.Sprintf("user-%d", i%10)
				for range 20 {
					_, _ = l.Allow(context.Background(), key)
					if i%5 == 0 {
						_ = l.Reset(context.Background(), key)
					}
				}
			}()
		}
		wg.Wait()

		assert.LessOrEqual(t, l.Len(), 10)
	})
}

func TestAttemptLimiter_EvictIdle(t *testing.T) {
	t.Parallel()

	l, clock := newLimiter(t, 1, time.Minute, ratelimit.WithBackoff())

	allow(t, l, "idle")
	allow(t, l, "blocked")
	allow(t, l, "blocked")
	require.Equal(t, 2, l.Len())

	// Ten windows pass; "blocked" was last seen at the start but its backoff
	// has expired by then too.
	clock.Advance(10 * time.Minute)
	assert.Equal(t, 2, l.EvictIdle())
	assert.Equal(t, 0, l.Len())

	allow(t, l, "active")
	clock.Advance(30 * time.Second)
	assert.Equal(t, 0, l.EvictIdle())
	assert.Equal(t, 1, l.Len())
}

func TestAttemptLimiter_IdleEvictionLoop(t *testing.T) {
	t.Parallel()

	l, err := ratelimit.NewAttemptLimiter(1, time.Millisecond,
		ratelimit.WithIdleEviction(5*time.Millisecond, time.Millisecond),
	)
	require.NoError(t, err)
	defer l.Close()

	_, err = l.Allow(context.Background(), "k")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return l.Len() == 0
	}, time.Second, 5*time.Millisecond)
}
