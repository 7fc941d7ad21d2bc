package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig carries the connection settings for the cart store.
// Zero pool sizes fall back to defaults sized for a single service instance.
type MongoConfig struct {
	URI      string
	Database string
	MaxPool  uint64
	MinPool  uint64
}

const (
	defaultMaxPool      = 50
	defaultMinPool      = 5
	serverSelectTimeout = 5 * time.Second
	mongoDialTimeout    = 10 * time.Second
)

// Connect opens the cart database and verifies the primary is reachable
// before handing the database out. Callers bound the whole dial with ctx.
func Connect(ctx context.Context, cfg MongoConfig) (*mongo.Database, error) {
	maxPool, minPool := cfg.MaxPool, cfg.MinPool
	if maxPool == 0 {
		maxPool = defaultMaxPool
	}
	if minPool == 0 {
		minPool = defaultMinPool
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(mongoDialTimeout).
		SetServerSelectionTimeout(serverSelectTimeout).
		SetMaxPoolSize(maxPool).
		SetMinPoolSize(minPool)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client.Database(cfg.Database), nil
}
