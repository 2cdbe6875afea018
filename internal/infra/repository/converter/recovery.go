package converter

import (
	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RecoveryRow struct {
	ID               uuid.UUID
	BookingID        uuid.UUID
	Position         int32
	Type             string
	SuggestedDJID    pgtype.UUID
	SiblingBookingID pgtype.UUID
	Message          string
	Status           string
	ClientResponse   pgtype.Text
	CreatedAt        pgtype.Timestamptz
	RespondedAt      pgtype.Timestamptz
}

const RecoveryColumns = `id, booking_id, position, recovery_type, suggested_dj_id, sibling_booking_id,
	message, status, client_response, created_at, responded_at`

func (r *RecoveryRow) Targets() []any {
	return []any{
		&r.ID, &r.BookingID, &r.Position, &r.Type, &r.SuggestedDJID, &r.SiblingBookingID,
		&r.Message, &r.Status, &r.ClientResponse, &r.CreatedAt, &r.RespondedAt,
	}
}

func RecoveryToInfra(rec *recovery.Record) RecoveryRow {
	return RecoveryRow{
		ID:               rec.ID(),
		BookingID:        rec.BookingID(),
		Type:             string(rec.Type()),
		SuggestedDJID:    pgconv.UUIDPtrToPgtype(rec.SuggestedDJID()),
		SiblingBookingID: pgconv.UUIDPtrToPgtype(rec.SiblingBookingID()),
		Message:          rec.Message(),
		Status:           string(rec.Status()),
		ClientResponse:   pgconv.StringPtrToPgtype(rec.ClientResponse()),
		CreatedAt:        pgconv.TimeToPgtype(rec.CreatedAt()),
		RespondedAt:      pgconv.TimePtrToPgtype(rec.RespondedAt()),
	}
}

func RecoveryToDomain(row RecoveryRow) (*recovery.Record, error) {
	typ, err := recovery.ParseType(row.Type)
	if err != nil {
		return nil, err
	}
	status, err := recovery.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}
	return recovery.ReconstructRecord(
		row.ID, row.BookingID,
		typ,
		pgconv.UUIDPtrFromPgtype(row.SuggestedDJID),
		pgconv.UUIDPtrFromPgtype(row.SiblingBookingID),
		row.Message,
		status,
		pgconv.StringPtrFromPgtype(row.ClientResponse),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimePtrFromPgtype(row.RespondedAt),
	), nil
}
