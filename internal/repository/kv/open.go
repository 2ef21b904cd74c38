package kv

import (
	"context"
	"fmt"
	"goalTracker/internal/config"
	"goalTracker/internal/logger"
	repo "goalTracker/internal/repository"
	"goalTracker/internal/repository/kv/inmemory"
	"goalTracker/internal/repository/kv/postgres"
	"goalTracker/internal/repository/kv/sqlite"

	"go.uber.org/zap"
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetMany(ctx context.Context, entries ...repo.Entry) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// Open builds the backend named by cfg.Repository.Type. Postgres is
// migrated before it is returned.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	logger.Info("Repository: Открытие хранилища", zap.String("type", cfg.Repository.Type))

	switch cfg.Repository.Type {
	case config.RepoInMemory:
		return inmemory.New(), nil

	case config.RepoSQLite:
		return sqlite.New(ctx, cfg.Repository.Path)

	case config.RepoPostgres:
		store, err := postgres.New(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("неизвестный тип хранилища %q", cfg.Repository.Type)
	}
}
