package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/skillbarter/swap-api/internal/api/handler"
	"github.com/skillbarter/swap-api/internal/core/ports"
	"github.com/skillbarter/swap-api/internal/infrastructure/config"
	"github.com/skillbarter/swap-api/internal/infrastructure/db/memory"
	"github.com/skillbarter/swap-api/internal/infrastructure/db/mongo"
	"github.com/skillbarter/swap-api/internal/infrastructure/db/postgres"
)

// storage is the set of repositories chosen by STORAGE_DRIVER.
type storage struct {
	users  ports.UserRepository
	skills ports.SkillRepository
	swaps  ports.SwapRepository
	events ports.SwapEventRepository

	// health is nil for the in-memory driver.
	health handler.Pinger
	close  func(ctx context.Context)
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		store, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			AppName:  "swap-api",
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &storage{
			users:  store.Users,
			skills: store.Skills,
			swaps:  store.Swaps,
			events: store.Events,
			health: store,
			close: func(ctx context.Context) {
				if err := store.Close(ctx); err != nil {
					log.Error().Err(err).Msg("mongodb disconnect failed")
				}
			},
		}, nil

	case config.DriverPostgres:
		store, err := postgres.Connect(ctx, postgres.Config{
			DSN:             cfg.Postgres.DSN,
			MaxConns:        cfg.Postgres.MaxConns,
			MaxConnLifetime: time.Hour,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres")
		return &storage{
			users:  store.Users,
			skills: store.Skills,
			swaps:  store.Swaps,
			events: store.Events,
			health: store,
			close:  func(context.Context) { store.Close() },
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		return &storage{
			users:  memory.NewUserRepository(),
			skills: memory.NewSkillRepository(),
			swaps:  memory.NewSwapRepository(),
			events: memory.NewSwapEventRepository(),
			close:  func(context.Context) {},
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}
