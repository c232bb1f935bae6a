package lookup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore remembers which addresses a user has searched recently.
type SessionStore interface {
	Mark(ctx context.Context, key string, ttl time.Duration) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisStore keeps search sessions in Redis with a TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Mark(ctx context.Context, key string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("%w: mark search: %v", ErrInternal, err)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check search: %v", ErrInternal, err)
	}
	return n > 0, nil
}

// memorySweepInterval bounds how often Mark scans for expired keys.
const memorySweepInterval = time.Minute

// MemoryStore is the single-process fallback when Redis is not configured.
// Expired keys are dropped on lookup and by a periodic sweep in Mark.
type MemoryStore struct {
	mu        sync.Mutex
	expires   map[string]time.Time
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{expires: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Mark(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if !now.Before(s.nextSweep) {
		for k, exp := range s.expires {
			if !now.Before(exp) {
				delete(s.expires, k)
			}
		}
		s.nextSweep = now.Add(memorySweepInterval)
	}
	s.expires[key] = now.Add(ttl)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.expires[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.expires, key)
		return false, nil
	}
	return true, nil
}
