// Package mongo implements the repository ports on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
}

// Store bundles the connected client with one repository per collection.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database

	Users  *UserRepository
	Skills *SkillRepository
	Swaps  *SwapRepository
	Events *SwapEventRepository
}

// Connect establishes a MongoDB client, verifies connectivity with a ping,
// ensures indexes and returns the repositories. A default timeout is applied
// when none is provided.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.AppName != "" {
		opts.SetAppName(cfg.AppName)
	}

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, err
	}

	return &Store{
		Client: client,
		DB:     db,
		Users:  NewUserRepository(db),
		Skills: NewSkillRepository(db),
		Swaps:  NewSwapRepository(db),
		Events: NewSwapEventRepository(db),
	}, nil
}

// Ping reports whether the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
