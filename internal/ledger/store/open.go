package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/placebi/internal/config"
	"github.com/MrJamesThe3rd/placebi/internal/database"
	"github.com/MrJamesThe3rd/placebi/internal/ledger"
)

// Open builds the repository selected by cfg.Storage.Backend. The returned
// function releases its connections.
func Open(ctx context.Context, cfg *config.Config) (ledger.Repository, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, nil, err
		}

		repo := NewPostgres(db, cfg.Storage.Key)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		return repo, func() {
			if err := db.Close(); err != nil {
				slog.Error("failed to close database", "error", err)
			}
		}, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("pinging redis: %w", err)
		}

		return NewRedis(client, cfg.Storage.Key), func() {
			if err := client.Close(); err != nil {
				slog.Error("failed to close redis client", "error", err)
			}
		}, nil
	}

	return NewFile(cfg.Storage.File), func() {}, nil
}
