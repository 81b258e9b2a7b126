package repository

import (
	"context"
	"errors"

	"github.com/fjod/go_foodcart/internal/domain"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already registered")
)

// RestaurantRepository defines the catalog store for restaurants.
// The full collection is returned; filtering happens in the view layer.
type RestaurantRepository interface {
	GetAll(ctx context.Context) ([]domain.Restaurant, error)
	GetByID(ctx context.Context, id string) (*domain.Restaurant, error)
	Create(ctx context.Context, restaurant *domain.Restaurant) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
