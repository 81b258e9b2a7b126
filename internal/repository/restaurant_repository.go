package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_foodcart/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRestaurantRepository struct {
	collection *mongo.Collection
}

func NewMongoRestaurantRepository(db *mongo.Database) RestaurantRepository {
	return &mongoRestaurantRepository{
		collection: db.Collection("restaurants"),
	}
}

func (m *mongoRestaurantRepository) GetAll(ctx context.Context) ([]domain.Restaurant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	restaurants := make([]domain.Restaurant, 0)
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}

	return restaurants, nil
}

func (m *mongoRestaurantRepository) GetByID(ctx context.Context, id string) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRestaurantNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return &restaurant, nil
}

// Create stores a restaurant. The caller assigns the ID.
func (m *mongoRestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	if restaurant.ID == "" {
		return errors.New("restaurant id must be assigned before insert")
	}
	if restaurant.CreatedAt.IsZero() {
		restaurant.CreatedAt = time.Now().UTC()
	}
	restaurant.Normalize()

	if _, err := m.collection.InsertOne(ctx, restaurant); err != nil {
		return fmt.Errorf("failed to insert restaurant: %w", err)
	}

	return nil
}

func (m *mongoRestaurantRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	}

	if _, err := m.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create restaurant indexes: %w", err)
	}

	return nil
}
