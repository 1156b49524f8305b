package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationTimeout = 2 * time.Second

// RevocationStore remembers logged-out tokens until they expire.
type RevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type memoryRevocations struct {
	now func() time.Time

	mu      sync.RWMutex
	entries map[string]time.Time
}

func newMemoryRevocations(now func() time.Time) *memoryRevocations {
	return &memoryRevocations{now: now, entries: make(map[string]time.Time)}
}

func (s *memoryRevocations) Revoke(_ context.Context, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for t, expiry := range s.entries {
		if now.After(expiry) {
			delete(s.entries, t)
		}
	}
	s.entries[token] = now.Add(ttl)
	return nil
}

func (s *memoryRevocations) IsRevoked(_ context.Context, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiry, ok := s.entries[token]
	return ok && s.now().Before(expiry), nil
}

// RedisRevocations keeps revoked tokens in Redis under prefix + sha256(token),
// expiring with the token itself.
type RedisRevocations struct {
	client *redis.Client
	prefix string
}

func NewRedisRevocations(client *redis.Client, prefix string) *RedisRevocations {
	if prefix == "" {
		prefix = "revoked:"
	}
	return &RedisRevocations{client: client, prefix: prefix}
}

func (s *RedisRevocations) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(token), 1, ttl).Err()
}

func (s *RedisRevocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, s.key(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisRevocations) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return s.prefix + hex.EncodeToString(sum[:])
}
