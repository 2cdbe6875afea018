package converter

import (
	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type DJRow struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	StageName       string
	Genres          []string
	HourlyRateCents int64
	Active          bool
	Rating          float64
	TotalBookings   int32
	LastBookedAt    pgtype.Timestamptz
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

func (r *DJRow) Targets() []any {
	return []any{
		&r.ID, &r.UserID, &r.StageName, &r.Genres, &r.HourlyRateCents, &r.Active,
		&r.Rating, &r.TotalBookings, &r.LastBookedAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

func DJToDomain(row DJRow) *dj.Profile {
	return dj.ReconstructProfile(
		row.ID, row.UserID,
		row.StageName,
		row.Genres,
		booking.NewMoney(row.HourlyRateCents),
		row.Active,
		row.Rating,
		int(row.TotalBookings),
		pgconv.TimePtrFromPgtype(row.LastBookedAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}
