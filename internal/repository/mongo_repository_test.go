package repository

import (
	"context"
	"testing"
	"time"

	"github.com/fjod/go_foodcart/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

func setupTestDB(t *testing.T) (*mongo.Database, func()) {
	if testing.Short() {
		t.Skip("skipping MongoDB container test in short mode")
	}
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	require.NoError(t, CreateIndexes(ctx, db))

	cleanup := func() {
		_ = db.Client().Disconnect(ctx)
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return db, cleanup
}

func newRestaurant(name string, rating float64) *domain.Restaurant {
	return &domain.Restaurant{
		ID:       uuid.NewString(),
		Name:     name,
		Cuisines: []string{"North Indian"},
		Rating:   rating,
		VegMenu: []domain.MenuItem{
			{ID: 1, Name: "Dal Makhani", Price: 220, Category: "Main"},
		},
	}
}

func TestRestaurantRepository_GetAll_Empty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoRestaurantRepository(db)
	restaurants, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, restaurants)
	assert.Len(t, restaurants, 0)
}

func TestRestaurantRepository_CreateAndGet(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewMongoRestaurantRepository(db)

	first := newRestaurant("Spice Hub", 4.5)
	first.CreatedAt = time.Now().Add(-time.Minute)
	second := newRestaurant("Burger Barn", 3.9)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Spice Hub", all[0].Name)

	got, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Burger Barn", got.Name)
	assert.Empty(t, got.Drinks)
	assert.Len(t, got.VegMenu, 1)
}

func TestRestaurantRepository_GetByID_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoRestaurantRepository(db)
	got, err := repo.GetByID(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrRestaurantNotFound)
	assert.Nil(t, got)
}

func TestRestaurantRepository_CreateRequiresID(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewMongoRestaurantRepository(db)
	err := repo.Create(context.Background(), &domain.Restaurant{Name: "No ID"})

	assert.Error(t, err)
}

func TestUserRepository_CreateAndGetByEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewMongoUserRepository(db)

	user := &domain.User{ID: uuid.NewString(), Name: "Asha", Email: " Asha@Example.com ", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewMongoUserRepository(db)

	require.NoError(t, repo.Create(ctx, &domain.User{ID: uuid.NewString(), Email: "a@b.c"}))
	err := repo.Create(ctx, &domain.User{ID: uuid.NewString(), Email: "A@B.C"})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := NewMongoUserRepository(db).GetByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestContextCancellation(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Nanosecond)
	defer cancel()

	time.Sleep(10 * time.Millisecond)

	_, err := NewMongoRestaurantRepository(db).GetAll(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "context")
}
