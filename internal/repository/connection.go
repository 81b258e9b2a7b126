package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const pingTimeout = 5 * time.Second

// ConnectMongoDB opens a pooled client and returns the named database once the
// server answers a ping.
func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetAppName("storefront").
		SetConnectTimeout(10*time.Second).
		SetServerSelectionTimeout(pingTimeout).
		SetMaxPoolSize(50).
		SetMinPoolSize(2))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// CreateIndexes prepares every collection the repositories rely on.
func CreateIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewMongoUserRepository(db).(*mongoUserRepository).createIndexes(ctx); err != nil {
		return err
	}
	return NewMongoRestaurantRepository(db).(*mongoRestaurantRepository).createIndexes(ctx)
}
