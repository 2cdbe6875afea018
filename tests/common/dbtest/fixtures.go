//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"dj-booking-engine/internal/infra/repository"
	"dj-booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by both a pool and a single transaction.
type DBLike interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestDJ(t *testing.T, db repository.DBTX, b *builder.DJBuilder) uuid.UUID {
	t.Helper()

	p, err := b.BuildDomain()
	require.NoError(t, err)
	require.NoError(t, repository.NewDJRepository(db).Create(context.Background(), p))
	return p.ID()
}

// CreateTestBooking stores the booking as-is, in whatever status the builder carries.
func CreateTestBooking(t *testing.T, db repository.DBTX, b *builder.BookingBuilder) uuid.UUID {
	t.Helper()

	bk := b.BuildReconstructed()
	require.NoError(t, repository.NewBookingRepository(db).Create(context.Background(), bk))
	return bk.ID()
}

func CountNotificationJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

// tables in dependency order; CASCADE covers anything added later that references them
var resetTables = []string{"notification_jobs", "recovery_records", "bookings", "dj_profiles"}

// ResetDB empties every domain table. goose_db_version is left alone so migrations stay applied.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stmt := "TRUNCATE " + strings.Join(resetTables, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("reset test database: %w", err)
	}
	return nil
}
