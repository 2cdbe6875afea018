package repository

import (
	"context"

	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/infra/repository/converter"
	"dj-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	// position continues after any records already stored for the booking.
	insertRecovery = `INSERT INTO recovery_records (` + converter.RecoveryColumns + `)
VALUES ($1, $2,
	(SELECT COALESCE(max(position), -1) + 1 FROM recovery_records WHERE booking_id = $2),
	$3, $4, $5, $6, $7, $8, $9, $10)`

	updateRecovery = `UPDATE recovery_records
SET status = $2, client_response = $3, responded_at = $4
WHERE id = $1`

	selectRecoveries = `SELECT ` + converter.RecoveryColumns + ` FROM recovery_records`
)

type RecoveryRepository struct {
	db DBTX
}

func NewRecoveryRepository(db DBTX) *RecoveryRepository {
	return &RecoveryRepository{db: db}
}

// CreateBatch inserts records keeping their slice order as the stored position.
func (r *RecoveryRepository) CreateBatch(ctx context.Context, records []*recovery.Record) error {
	for _, rec := range records {
		row := converter.RecoveryToInfra(rec)
		_, err := r.db.Exec(ctx, insertRecovery,
			row.ID, row.BookingID, row.Type, row.SuggestedDJID, row.SiblingBookingID,
			row.Message, row.Status, row.ClientResponse, row.CreatedAt, row.RespondedAt)
		if err != nil {
			return infra.WrapRepoErr("failed to create recovery record", err)
		}
	}
	return nil
}

func (r *RecoveryRepository) Update(ctx context.Context, rec *recovery.Record) error {
	tag, err := r.db.Exec(ctx, updateRecovery,
		rec.ID(), string(rec.Status()),
		pgconv.StringPtrToPgtype(rec.ClientResponse()),
		pgconv.TimePtrToPgtype(rec.RespondedAt()))
	if err != nil {
		return infra.WrapRepoErr("failed to update recovery record", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "recovery record not found")
	}
	return nil
}

func (r *RecoveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*recovery.Record, error) {
	return r.findOne(ctx, selectRecoveries+` WHERE id = $1`, id)
}

func (r *RecoveryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*recovery.Record, error) {
	return r.findOne(ctx, selectRecoveries+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *RecoveryRepository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*recovery.Record, error) {
	rows, err := r.db.Query(ctx, selectRecoveries+` WHERE booking_id = $1 ORDER BY position`, bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list recovery records", err)
	}
	defer rows.Close()

	var out []*recovery.Record
	for rows.Next() {
		var row converter.RecoveryRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan recovery record", err)
		}
		rec, err := converter.RecoveryToDomain(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert recovery record", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate recovery records", err)
	}
	return out, nil
}

func (r *RecoveryRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*recovery.Record, error) {
	var row converter.RecoveryRow
	if err := r.db.QueryRow(ctx, query, id).Scan(row.Targets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find recovery record", err)
	}
	rec, err := converter.RecoveryToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert recovery record", err)
	}
	return rec, nil
}
