package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect establishes the MongoDB connection and returns a handle to the
// application database. It fails fast if the server is unreachable.
func Connect(uri, name string) *mongo.Database {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}

	log.Printf("Connected to database %q", name)
	return client.Database(name)
}

// Disconnect closes the underlying client connection.
func Disconnect(db *mongo.Database) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Client().Disconnect(ctx); err != nil {
		log.Printf("warning: failed to disconnect from database: %v", err)
	}
}
