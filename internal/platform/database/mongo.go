package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UserCollection = "users"
	PostCollection = "posts"
)

// Connect opens a client against the given URI and verifies the connection.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("database.Connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("database.Connect ping: %w", err)
	}

	fmt.Println("Successfully connected to MongoDB!")
	return client.Database(dbName), nil
}

func Close(ctx context.Context, db *mongo.Database) {
	if db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.Client().Disconnect(ctx); err != nil {
		fmt.Printf("Error closing database connection: %v\n", err)
		return
	}
	fmt.Println("Database connection closed.")
}
