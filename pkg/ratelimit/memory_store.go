package ratelimit

import (
	"hash/maphash"
	"sync"
	"time"
)

const defaultShards = 32

// entry is the per-key state. Its mutex serialises the read-modify-write of
// a single key; the shard mutex only guards the map itself.
type entry struct {
	mu sync.Mutex

	attempts     int
	windowStart  time.Time
	exhausted    bool
	violations   int
	backoff      time.Duration
	blockedUntil time.Time
	lastSeen     time.Time

	// evicted is set once the entry is unlinked from its shard. A caller that
	// locked an evicted entry must look the key up again.
	evicted bool
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// memoryStore is a sharded map of entries. Keys in different shards never
// share a lock.
type memoryStore struct {
	seed   maphash.Seed
	shards []*shard
}

func newMemoryStore(shards int) *memoryStore {
	if shards <= 0 {
		shards = defaultShards
	}

	s := &memoryStore{
		seed:   maphash.MakeSeed(),
		shards: make([]*shard, shards),
	}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[string]*entry)}
	}
	return s
}

func (s *memoryStore) shardFor(key string) *shard {
	return s.shards[maphash.String(s.seed, key)%uint64(len(s.shards))]
}

// lock returns the entry for key with its mutex held. When create is false
// and the key is unknown it returns nil.
func (s *memoryStore) lock(key string, create bool) *entry {
	sh := s.shardFor(key)
	for {
		sh.mu.Lock()
		e, ok := sh.entries[key]
		if !ok {
			if !create {
				sh.mu.Unlock()
				return nil
			}
			e = &entry{}
			sh.entries[key] = e
		}
		sh.mu.Unlock()

		e.mu.Lock()
		if !e.evicted {
			return e
		}
		e.mu.Unlock()
	}
}

func (s *memoryStore) delete(key string) {
	sh := s.shardFor(key)

	sh.mu.Lock()
	e, ok := sh.entries[key]
	delete(sh.entries, key)
	sh.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.evicted = true
		e.mu.Unlock()
	}
}

// evict removes entries for which idle reports true and returns how many
// were removed. It holds the shard lock while locking entries; lock and
// delete never hold both, so the order cannot invert.
func (s *memoryStore) evict(idle func(*entry) bool) int {
	removed := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		for key, e := range sh.entries {
			e.mu.Lock()
			if idle(e) {
				e.evicted = true
				delete(sh.entries, key)
				removed++
			}
			e.mu.Unlock()
		}
		sh.mu.Unlock()
	}
	return removed
}

func (s *memoryStore) len() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.Lock()
		n += len(sh.entries)
		sh.mu.Unlock()
	}
	return n
}
