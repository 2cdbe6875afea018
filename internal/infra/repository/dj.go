package repository

import (
	"context"

	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/infra/repository/converter"
	"dj-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertDJ = `INSERT INTO dj_profiles
	(id, user_id, stage_name, genres, hourly_rate_cents, active, rating, total_bookings, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	// last_booked_at is derived, never stored.
	selectDJs = `SELECT p.id, p.user_id, p.stage_name, p.genres, p.hourly_rate_cents, p.active, p.rating,
	p.total_bookings,
	(SELECT max(b.start_at) FROM bookings b
	 WHERE b.dj_id = p.id AND b.status IN ('ACCEPTED', 'CONFIRMED')) AS last_booked_at,
	p.created_at, p.updated_at
FROM dj_profiles p`
)

type DJRepository struct {
	db DBTX
}

func NewDJRepository(db DBTX) *DJRepository {
	return &DJRepository{db: db}
}

func (r *DJRepository) Create(ctx context.Context, p *dj.Profile) error {
	genres := p.Genres()
	if genres == nil {
		genres = []string{}
	}
	_, err := r.db.Exec(ctx, insertDJ,
		p.ID(), p.UserID(), p.StageName(), genres, p.HourlyRate().Cents(), p.IsActive(),
		p.Rating(), int32(p.TotalBookings()),
		pgconv.TimeToPgtype(p.CreatedAt()), pgconv.TimeToPgtype(p.UpdatedAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to create dj profile", err)
	}
	return nil
}

func (r *DJRepository) FindByID(ctx context.Context, id uuid.UUID) (*dj.Profile, error) {
	var row converter.DJRow
	if err := r.db.QueryRow(ctx, selectDJs+` WHERE p.id = $1`, id).Scan(row.Targets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find dj profile", err)
	}
	return converter.DJToDomain(row), nil
}

func (r *DJRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*dj.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, selectDJs+` WHERE p.id = ANY($1::uuid[]) ORDER BY p.stage_name, p.id`, uuidStrings(ids))
}

func (r *DJRepository) ListActive(ctx context.Context) ([]*dj.Profile, error) {
	return r.list(ctx, selectDJs+` WHERE p.active ORDER BY p.stage_name, p.id`)
}

func (r *DJRepository) list(ctx context.Context, query string, args ...any) ([]*dj.Profile, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list dj profiles", err)
	}
	defer rows.Close()

	var out []*dj.Profile
	for rows.Next() {
		var row converter.DJRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan dj profile", err)
		}
		out = append(out, converter.DJToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate dj profiles", err)
	}
	return out, nil
}
