// Package migration applies the embedded goose migrations.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"log/slog"

	"dj-booking-engine/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed sql/*.sql
var migrations embed.FS

const dir = "sql"

type Migrator struct {
	db *sql.DB
}

func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, errs.Wrap(err, "set goose dialect")
	}
	// goose works on *sql.DB; this shares the pool's config
	return &Migrator{db: stdlib.OpenDBFromPool(pool)}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	slog.Info("applying database migrations")
	if err := goose.UpContext(ctx, m.db, dir); err != nil {
		return errs.Wrap(err, "apply migrations")
	}
	version, err := goose.GetDBVersionContext(ctx, m.db)
	if err != nil {
		return errs.Wrap(err, "get migration version")
	}
	slog.Info("migrations applied", "version", version)
	return nil
}
