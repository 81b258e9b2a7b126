package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("no stored session")

// Store persists the single signed-in user of a client.
type Store interface {
	Load(ctx context.Context) (*domain.PublicUser, error)
	Save(ctx context.Context, user domain.PublicUser) error
	Clear(ctx context.Context) error
}

// MemoryStore keeps the user for the lifetime of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	user *domain.PublicUser
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (*domain.PublicUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, ErrNoSession
	}
	u := *s.user
	return &u, nil
}

func (s *MemoryStore) Save(_ context.Context, user domain.PublicUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}

// RedisStore keeps the user under session:<name> without expiry.
type RedisStore struct {
	client *redis.Client
	key    string
}

func NewRedisStore(client *redis.Client, name string) *RedisStore {
	return &RedisStore{client: client, key: "session:" + name}
}

func (s *RedisStore) Load(ctx context.Context) (*domain.PublicUser, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var user domain.PublicUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("unmarshal session failed: %w", err)
	}
	return &user, nil
}

func (s *RedisStore) Save(ctx context.Context, user domain.PublicUser) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session failed: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
