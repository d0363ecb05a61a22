package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

// Collection names used by the repositories in this package.
const (
	usersCollection  = "users"
	booksCollection  = "books"
	eventsCollection = "auth_events"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes on users.username and books.name are the authoritative uniqueness
// guards; application-level check-then-insert is never the sole defence.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	unique := options.Index().SetUnique(true)

	if _, err := db.Collection(usersCollection).Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("users username index: %w", err)
	}

	if _, err := db.Collection(booksCollection).Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: unique,
	}); err != nil {
		return fmt.Errorf("books name index: %w", err)
	}

	if _, err := db.Collection(eventsCollection).Indexes().CreateOne(indexCtx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	}); err != nil {
		return fmt.Errorf("auth_events timestamp index: %w", err)
	}

	return nil
}
