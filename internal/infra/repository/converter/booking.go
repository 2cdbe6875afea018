package converter

import (
	"log/slog"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// BookingRow mirrors the bookings table column for column.
type BookingRow struct {
	ID           uuid.UUID
	ClientID     uuid.UUID
	DJID         pgtype.UUID
	EventType    string
	EventDate    pgtype.Date
	StartAt      pgtype.Timestamptz
	EndAt        pgtype.Timestamptz
	Status       string
	QuoteCents   int64
	Message      string
	Preferences  []byte
	CancelReason pgtype.Text
	CancelledBy  pgtype.Text
	CancelledAt  pgtype.Timestamptz
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

// Targets lists scan destinations in BookingColumns order.
func (r *BookingRow) Targets() []any {
	return []any{
		&r.ID, &r.ClientID, &r.DJID, &r.EventType, &r.EventDate,
		&r.StartAt, &r.EndAt, &r.Status, &r.QuoteCents, &r.Message,
		&r.Preferences, &r.CancelReason, &r.CancelledBy, &r.CancelledAt,
		&r.CreatedAt, &r.UpdatedAt,
	}
}

const BookingColumns = `id, client_id, dj_id, event_type, event_date, start_at, end_at, status,
	quote_cents, message, preferences, cancel_reason, cancelled_by, cancelled_at, created_at, updated_at`

// BookingParams are the write-side values in BookingColumns order, plus the normalised slot.
type BookingParams struct {
	Row  BookingRow
	Slot string
}

func (p BookingParams) Args() []any {
	r := p.Row
	return []any{
		r.ID, r.ClientID, r.DJID, r.EventType, r.EventDate,
		r.StartAt, r.EndAt, r.Status, r.QuoteCents, r.Message,
		r.Preferences, r.CancelReason, r.CancelledBy, r.CancelledAt,
		r.CreatedAt, r.UpdatedAt, p.Slot,
	}
}

// UpdateArgs drops created_at, which never changes after insert.
func (p BookingParams) UpdateArgs() []any {
	args := p.Args()
	return append(args[:14:14], args[15:]...)
}

func BookingToInfra(b *booking.Booking) (BookingParams, error) {
	prefs, err := b.Preferences().Marshal()
	if err != nil {
		return BookingParams{}, errs.Wrap(err, "failed to encode preferences")
	}

	row := BookingRow{
		ID:          b.ID(),
		ClientID:    b.ClientID(),
		DJID:        pgconv.UUIDPtrToPgtype(b.DJID()),
		EventType:   b.EventType(),
		EventDate:   pgconv.DateToPgtype(b.EventDate()),
		StartAt:     pgconv.TimeToPgtype(b.StartTime()),
		EndAt:       pgconv.TimeToPgtype(b.EndTime()),
		Status:      b.Status().String(),
		QuoteCents:  b.Quote().Cents(),
		Message:     b.Message(),
		Preferences: prefs,
		CreatedAt:   pgconv.TimeToPgtype(b.CreatedAt()),
		UpdatedAt:   pgconv.TimeToPgtype(b.UpdatedAt()),
	}
	if c := b.Cancellation(); c != nil {
		row.CancelReason = pgtype.Text{String: c.Reason, Valid: true}
		row.CancelledBy = pgtype.Text{String: c.Actor, Valid: true}
		row.CancelledAt = pgconv.TimeToPgtype(c.At)
	}

	return BookingParams{Row: row, Slot: b.Window().ToTstzrange()}, nil
}

// BookingToDomain rebuilds a booking. A malformed preference payload degrades to
// empty preferences instead of failing the read.
func BookingToDomain(row BookingRow) (*booking.Booking, error) {
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	prefs, err := booking.ParsePreferences(row.Preferences)
	if err != nil {
		slog.Warn("ignoring malformed booking preferences",
			"booking_id", row.ID,
			"error", err.Error())
		prefs = booking.Preferences{}
	}

	var cancellation *booking.Cancellation
	if row.CancelledAt.Valid {
		cancellation = &booking.Cancellation{
			Reason: row.CancelReason.String,
			Actor:  row.CancelledBy.String,
			At:     pgconv.TimeFromPgtype(row.CancelledAt),
		}
	}

	return booking.ReconstructBooking(
		row.ID, row.ClientID,
		pgconv.UUIDPtrFromPgtype(row.DJID),
		row.EventType,
		pgconv.DateFromPgtype(row.EventDate),
		pgconv.TimeFromPgtype(row.StartAt),
		pgconv.TimeFromPgtype(row.EndAt),
		status,
		booking.NewMoney(row.QuoteCents),
		row.Message,
		prefs,
		cancellation,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
