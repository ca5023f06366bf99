package cli

import (
	"context"
	"fmt"

	"github.com/fxola/trivia-api/internal/config"
	"github.com/fxola/trivia-api/internal/database"
	"github.com/fxola/trivia-api/internal/domain"
	"github.com/fxola/trivia-api/internal/repository/memory"
	"github.com/fxola/trivia-api/internal/repository/postgres"
	"github.com/fxola/trivia-api/internal/repository/sqlite"
	"go.uber.org/zap"
)

// openStore connects the configured store driver. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (domain.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Info("using in-memory store")
		return memory.NewQuestionRepository(), func() {}, nil

	case config.DriverPostgres:
		pool, err := database.ConnectPostgres(ctx, cfg.PostgresURL())
		if err != nil {
			return nil, nil, err
		}
		log.Info("connected to postgres")
		return postgres.NewQuestionRepository(pool), pool.Close, nil

	case config.DriverSQLite:
		db, err := database.ConnectSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := sqlite.NewQuestionRepository(ctx, db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info("opened sqlite database", zap.String("path", cfg.SQLitePath))
		return repo, func() {
			if err := db.Close(); err != nil {
				log.Error("error closing database", zap.Error(err))
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
