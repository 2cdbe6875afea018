package queries

import (
	"context"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingView struct {
	Booking    *booking.Booking
	Recoveries []*recovery.Record
}

type BookingQueries interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListRecoveries(ctx context.Context, bookingID uuid.UUID) ([]*recovery.Record, error)
}

type bookingQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewBookingQueries(uow shared.UnitOfWork) BookingQueries {
	return &bookingQueriesImpl{uow: uow}
}

func (q *bookingQueriesImpl) GetBooking(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	var view *BookingView
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := LoadBooking(ctx, tx.Bookings(), id)
		if err != nil {
			return err
		}
		records, err := tx.Recoveries().ListByBooking(ctx, id)
		if err != nil {
			return errs.Wrap(err, "failed to list recovery records")
		}
		view = &BookingView{Booking: b, Recoveries: records}
		return nil
	})
	return view, err
}

// ListRecoveries returns the booking's records in the order they were suggested.
func (q *bookingQueriesImpl) ListRecoveries(ctx context.Context, bookingID uuid.UUID) ([]*recovery.Record, error) {
	var records []*recovery.Record
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := LoadBooking(ctx, tx.Bookings(), bookingID); err != nil {
			return err
		}
		out, err := tx.Recoveries().ListByBooking(ctx, bookingID)
		if err != nil {
			return errs.Wrap(err, "failed to list recovery records")
		}
		records = out
		return nil
	})
	return records, err
}
