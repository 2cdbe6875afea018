package repository

import (
	"context"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/infra/repository/converter"

	"github.com/google/uuid"
)

const (
	insertBooking = `INSERT INTO bookings (` + converter.BookingColumns + `, slot)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17::tstzrange)`

	updateBooking = `UPDATE bookings SET
	client_id = $2, dj_id = $3, event_type = $4, event_date = $5, start_at = $6, end_at = $7,
	status = $8, quote_cents = $9, message = $10, preferences = $11, cancel_reason = $12,
	cancelled_by = $13, cancelled_at = $14, updated_at = $15, slot = $16::tstzrange
WHERE id = $1`

	selectBookings = `SELECT ` + converter.BookingColumns + ` FROM bookings`
)

type BookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	params, err := converter.BookingToInfra(b)
	if err != nil {
		return infra.WrapRepoErr("failed to convert booking", err)
	}
	if _, err := r.db.Exec(ctx, insertBooking, params.Args()...); err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	params, err := converter.BookingToInfra(b)
	if err != nil {
		return infra.WrapRepoErr("failed to convert booking", err)
	}
	tag, err := r.db.Exec(ctx, updateBooking, params.UpdateArgs()...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "booking not found")
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, selectBookings+` WHERE id = $1`, id)
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, selectBookings+` WHERE id = $1 FOR UPDATE`, id)
}

func (r *BookingRepository) ListActiveByDJ(ctx context.Context, djID uuid.UUID, from, to time.Time) ([]*booking.Booking, error) {
	return r.list(ctx, selectBookings+`
WHERE dj_id = $1 AND status = ANY($2::text[]) AND slot && tstzrange($3, $4, '[)')
ORDER BY start_at, id`,
		djID, booking.StatusStrings(booking.ActiveStatuses), from, to)
}

func (r *BookingRepository) ListActiveInRange(ctx context.Context, from, to time.Time) ([]*booking.Booking, error) {
	return r.list(ctx, selectBookings+`
WHERE dj_id IS NOT NULL AND status = ANY($1::text[]) AND slot && tstzrange($2, $3, '[)')
ORDER BY start_at, id`,
		booking.StatusStrings(booking.ActiveStatuses), from, to)
}

func (r *BookingRepository) ListByStatus(ctx context.Context, statuses ...booking.Status) ([]*booking.Booking, error) {
	return r.list(ctx, selectBookings+`
WHERE status = ANY($1::text[])
ORDER BY start_at, id`,
		booking.StatusStrings(statuses))
}

func (r *BookingRepository) ListPendingCreatedBefore(ctx context.Context, cutoff time.Time) ([]*booking.Booking, error) {
	return r.list(ctx, selectBookings+`
WHERE status = $1 AND created_at <= $2
ORDER BY created_at, id`,
		booking.StatusPending.String(), cutoff)
}

func (r *BookingRepository) ListSiblings(ctx context.Context, clientID uuid.UUID, eventDate time.Time, statuses ...booking.Status) ([]*booking.Booking, error) {
	return r.list(ctx, selectBookings+`
WHERE client_id = $1 AND event_date = $2 AND status = ANY($3::text[])
ORDER BY start_at, id`,
		clientID, booking.DateOf(eventDate), booking.StatusStrings(statuses))
}

func (r *BookingRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*booking.Booking, error) {
	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, query, id).Scan(row.Targets()...); err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert booking", err)
	}
	return b, nil
}

func (r *BookingRepository) list(ctx context.Context, query string, args ...any) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		var row converter.BookingRow
		if err := rows.Scan(row.Targets()...); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		b, err := converter.BookingToDomain(row)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert booking", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return out, nil
}
