// Package session tracks revoked admin session tokens until they expire.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"portfolio-backend/internal/config"
)

const keyPrefix = "portfolio:session:revoked:"

// memoryCapacity bounds the in-process revocation list.
const memoryCapacity = 4096

var ErrRevoked = errors.New("session has been revoked")

type Store interface {
	// Revoke marks token id as revoked for ttl.
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	Revoked(ctx context.Context, id string) (bool, error)
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Revoke(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, keyPrefix+id, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *RedisStore) Revoked(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	return n > 0, nil
}

// MemoryStore keeps revocations in a bounded LRU. Entries are dropped once
// their token would have expired anyway.
type MemoryStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, time.Time]
	now   func() time.Time
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	cache, err := lru.New[string, time.Time](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create revocation cache: %w", err)
	}
	return &MemoryStore{cache: cache, now: time.Now}, nil
}

func (s *MemoryStore) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(id, s.now().Add(ttl))
	return nil
}

func (s *MemoryStore) Revoked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.cache.Get(id)
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		s.cache.Remove(id)
		return false, nil
	}
	return true, nil
}

// Open uses Redis when REDIS_URL is set and reachable, otherwise memory.
// The returned close function releases the Redis connection.
func Open(ctx context.Context, cfg *config.Config) (Store, func() error) {
	noop := func() error { return nil }
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Invalid REDIS_URL, revocations kept in memory: %v", err)
		} else {
			client := redis.NewClient(opts)
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err = client.Ping(pingCtx).Err()
			cancel()
			if err == nil {
				return NewRedisStore(client), client.Close
			}
			log.Printf("Warning: Redis unavailable, revocations kept in memory: %v", err)
			_ = client.Close()
		}
	}

	store, err := NewMemoryStore(memoryCapacity)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}
	return store, noop
}
