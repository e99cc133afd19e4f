// internal/common/dedup/dedup.go
// Package dedup tracks processed message identifiers so form replies and
// attachment events are handled at most once. Entries expire after a TTL,
// keeping the set bounded under long-running operation.
package dedup

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// Store is a bounded set of processed message ids.
type Store interface {
	// Seen marks id as processed and reports whether it was already present.
	Seen(ctx context.Context, id string) (bool, error)
	// Count returns an approximate number of tracked ids.
	Count(ctx context.Context) (int64, error)
	Close() error
}

// RedisStore backs the set with redis SETNX + TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Seen(ctx context.Context, id string) (bool, error) {
	set, err := s.client.SetNX(ctx, "msg:"+id, 1, s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !set, nil
}

func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	return s.client.DBSize(ctx).Result()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MemoryStore is the in-process fallback when no redis is configured. It
// uses a TTL cache with periodic purge, so the set stays bounded by expiry.
type MemoryStore struct {
	cache *gocache.Cache
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(ttl, ttl/4+time.Second),
	}
}

func (s *MemoryStore) Seen(_ context.Context, id string) (bool, error) {
	if _, found := s.cache.Get(id); found {
		return true, nil
	}
	s.cache.Set(id, struct{}{}, gocache.DefaultExpiration)
	return false, nil
}

func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	return int64(s.cache.ItemCount()), nil
}

func (s *MemoryStore) Close() error {
	s.cache.Flush()
	return nil
}
