package csrf

import (
	"context"
	"hash/maphash"
	"sync"
	"sync/atomic"
	"time"
)

const defaultShards = 32

type record struct {
	createdAt time.Time
	expiresAt time.Time
	consumed  atomic.Bool
}

type shard struct {
	mu      sync.RWMutex
	records map[string]*record
}

// MemoryStore keeps tokens in a sharded in-process map. Tokens in different
// shards never share a lock, and consumption of one token is a single
// compare-and-swap.
type MemoryStore struct {
	seed   maphash.Seed
	shards []*shard

	interval  time.Duration
	now       func() time.Time
	stop      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

var _ Store = (*MemoryStore)(nil)

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemorySweepInterval starts a background loop removing expired tokens every d.
// Stop it with Close.
func WithMemorySweepInterval(d time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithMemoryClock sets the clock used by the background sweep.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore returns an empty store. Without WithMemorySweepInterval expired
// tokens are only dropped when they are consumed or on an explicit Sweep.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		seed:   maphash.MakeSeed(),
		shards: make([]*shard, defaultShards),
		now:    time.Now,
		stop:   make(chan struct{}),
	}
	for i := range s.shards {
		s.shards[i] = &shard{records: make(map[string]*record)}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.interval > 0 {
		s.wg.Add(1)
		go s.sweepLoop()
	}
	return s
}

func (s *MemoryStore) shardFor(token string) *shard {
	return s.shards[maphash.String(s.seed, token)%uint64(len(s.shards))]
}

func (s *MemoryStore) Save(_ context.Context, token string, t Token) error {
	rec := &record{createdAt: t.CreatedAt, expiresAt: t.ExpiresAt}
	rec.consumed.Store(t.Consumed)

	sh := s.shardFor(token)
	sh.mu.Lock()
	sh.records[token] = rec
	sh.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, token string) (Token, error) {
	sh := s.shardFor(token)
	sh.mu.RLock()
	rec, ok := sh.records[token]
	sh.mu.RUnlock()
	if !ok {
		return Token{}, ErrTokenNotFound
	}

	return Token{
		CreatedAt: rec.createdAt,
		ExpiresAt: rec.expiresAt,
		Consumed:  rec.consumed.Load(),
	}, nil
}

func (s *MemoryStore) Consume(_ context.Context, token string, now time.Time) (bool, error) {
	sh := s.shardFor(token)
	sh.mu.RLock()
	rec, ok := sh.records[token]
	sh.mu.RUnlock()
	if !ok {
		return false, nil
	}

	if !now.Before(rec.expiresAt) {
		s.remove(sh, token, rec)
		return false, nil
	}
	if !rec.consumed.CompareAndSwap(false, true) {
		return false, nil
	}

	s.remove(sh, token, rec)
	return true, nil
}

// remove unlinks token only if it still maps to rec, so a concurrent Save
// of the same token is not lost.
func (s *MemoryStore) remove(sh *shard, token string, rec *record) {
	sh.mu.Lock()
	if sh.records[token] == rec {
		delete(sh.records, token)
	}
	sh.mu.Unlock()
}

// Sweep removes tokens that are expired at now or already consumed and
// returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for token, rec := range sh.records {
			if rec.consumed.Load() || !now.Before(rec.expiresAt) {
				delete(sh.records, token)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len returns the number of stored tokens, including expired ones not yet
// swept.
func (s *MemoryStore) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.records)
		sh.mu.RUnlock()
	}
	return n
}

// Close stops the sweep loop. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	s.wg.Wait()
	return nil
}

func (s *MemoryStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}
