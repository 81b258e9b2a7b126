package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/go_foodcart/internal/cart"
	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/redis/go-redis/v9"
)

const restaurantListKey = "restaurants:all"

// redisJSON stores JSON values with a jittered TTL so entries written together
// do not expire together.
type redisJSON struct {
	client    *redis.Client
	baseTTL   time.Duration
	maxJitter int // minutes
}

func (r redisJSON) get(ctx context.Context, key string, dst interface{}) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func (r redisJSON) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}

	ttl := r.baseTTL
	if r.maxJitter > 0 {
		ttl += time.Duration(rand.Intn(r.maxJitter)) * time.Minute
	}
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r redisJSON) del(ctx context.Context, keys ...string) error {
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

type RedisRestaurantCache struct {
	store redisJSON
}

func NewRedisRestaurantCache(client *redis.Client) *RedisRestaurantCache {
	return &RedisRestaurantCache{
		store: redisJSON{client: client, baseTTL: 10 * time.Minute, maxJitter: 5},
	}
}

func (r *RedisRestaurantCache) GetAll(ctx context.Context) ([]domain.Restaurant, error) {
	var restaurants []domain.Restaurant
	if err := r.store.get(ctx, restaurantListKey, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *RedisRestaurantCache) SetAll(ctx context.Context, restaurants []domain.Restaurant) error {
	return r.store.set(ctx, restaurantListKey, restaurants)
}

func (r *RedisRestaurantCache) Get(ctx context.Context, id string) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	if err := r.store.get(ctx, restaurantKey(id), &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *RedisRestaurantCache) Set(ctx context.Context, restaurant *domain.Restaurant) error {
	return r.store.set(ctx, restaurantKey(restaurant.ID), restaurant)
}

func (r *RedisRestaurantCache) Invalidate(ctx context.Context, id string) error {
	keys := []string{restaurantListKey}
	if id != "" {
		keys = append(keys, restaurantKey(id))
	}
	return r.store.del(ctx, keys...)
}

type RedisCartCache struct {
	store redisJSON
}

// NewRedisCartCache keeps snapshots for a week without jitter.
func NewRedisCartCache(client *redis.Client) *RedisCartCache {
	return &RedisCartCache{
		store: redisJSON{client: client, baseTTL: 7 * 24 * time.Hour},
	}
}

func (r *RedisCartCache) Get(ctx context.Context, userID string) (*cart.State, error) {
	var state cart.State
	if err := r.store.get(ctx, cartKey(userID), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (r *RedisCartCache) Set(ctx context.Context, userID string, state *cart.State) error {
	return r.store.set(ctx, cartKey(userID), state)
}

func (r *RedisCartCache) Delete(ctx context.Context, userID string) error {
	return r.store.del(ctx, cartKey(userID))
}

func restaurantKey(id string) string {
	return fmt.Sprintf("restaurant:%s", id)
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}
