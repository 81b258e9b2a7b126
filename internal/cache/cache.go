package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_foodcart/internal/cart"
	"github.com/fjod/go_foodcart/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

type RestaurantCache interface {
	GetAll(ctx context.Context) ([]domain.Restaurant, error)
	SetAll(ctx context.Context, restaurants []domain.Restaurant) error
	Get(ctx context.Context, id string) (*domain.Restaurant, error)
	Set(ctx context.Context, restaurant *domain.Restaurant) error
	// Invalidate drops the list and, when id is not empty, the single entry.
	Invalidate(ctx context.Context, id string) error
}

// CartCache keeps cart snapshots between sessions.
type CartCache interface {
	Get(ctx context.Context, userID string) (*cart.State, error)
	Set(ctx context.Context, userID string, state *cart.State) error
	Delete(ctx context.Context, userID string) error
}
