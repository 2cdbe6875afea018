package bootstrap

import (
	"context"
	"log/slog"

	"dj-booking-engine/internal/infra/db"
	"dj-booking-engine/internal/infra/memstore"
	"dj-booking-engine/internal/infra/migration"
	"dj-booking-engine/internal/infra/uow"
	"dj-booking-engine/internal/pkg/config"
	"dj-booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork picks the storage backend. Postgres is migrated on startup unless DB_MIGRATE=false.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	if !cfg.Storage.UsesPostgres() {
		logger.Warn("using in-memory storage, data is lost on restart")
		return memstore.NewUnitOfWork(memstore.New()), nil
	}

	ctx := context.Background()
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	if cfg.Storage.Migrate {
		m, err := migration.NewMigrator(pool)
		if err != nil {
			return nil, err
		}
		if err := m.Up(ctx); err != nil {
			return nil, err
		}
	}

	return uow.NewPostgresUoW(pool,
		uow.WithLockTimeout(cfg.DB.LockTimeout),
		uow.WithLogger(logger),
	), nil
}
