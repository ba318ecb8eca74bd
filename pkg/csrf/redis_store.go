package csrf

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"
)

const defaultKeyPrefix = "csrf:"

// RedisStore keeps tokens in Redis so several replicas share them. Keys are
// the prefix plus a blake2b-256 digest of the token; the raw token never
// leaves the process. Each key expires with its token.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

var _ Store = (*RedisStore)(nil)

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithKeyPrefix sets the key namespace. Defaults to "csrf:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	if client == nil {
		panic("csrf: redis client is required")
	}
	s := &RedisStore{client: client, prefix: defaultKeyPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Key returns the Redis key that holds token.
func (s *RedisStore) Key(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return s.prefix + hex.EncodeToString(sum[:])
}

func (s *RedisStore) Save(ctx context.Context, token string, t Token) error {
	ttl := t.ExpiresAt.Sub(t.CreatedAt)
	if ttl <= 0 || t.Consumed {
		return nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.Key(token), data, ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, token string) (Token, error) {
	data, err := s.client.Get(ctx, s.Key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Token{}, ErrTokenNotFound
	}
	if err != nil {
		return Token{}, err
	}

	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return Token{}, err
	}
	return t, nil
}

// Consume relies on GETDEL: Redis hands the value to exactly one client.
func (s *RedisStore) Consume(ctx context.Context, token string, now time.Time) (bool, error) {
	data, err := s.client.GetDel(ctx, s.Key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var t Token
	if err := json.Unmarshal(data, &t); err != nil {
		return false, err
	}
	return t.Valid(now), nil
}
