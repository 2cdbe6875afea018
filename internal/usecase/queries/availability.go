package queries

import (
	"context"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrDJNotFound      = errs.New("dj not found")
	ErrInvalidWindow   = errs.New("invalid time window")
)

// AvailabilityResult is a verdict, not an error: conflicts are normal data.
type AvailabilityResult struct {
	Available bool
	Conflicts []*booking.Booking
}

type AvailabilityQueries interface {
	IsDJAvailable(ctx context.Context, djID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) (*AvailabilityResult, error)
	GetAvailableDJs(ctx context.Context, start, end time.Time) ([]*dj.Profile, error)
}

type availabilityQueriesImpl struct {
	uow shared.UnitOfWork
}

func NewAvailabilityQueries(uow shared.UnitOfWork) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow}
}

func (q *availabilityQueriesImpl) IsDJAvailable(ctx context.Context, djID uuid.UUID, start, end time.Time, excludeBookingID *uuid.UUID) (*AvailabilityResult, error) {
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}
	return CheckAvailability(ctx, q.uow.Reads().Bookings(), djID, slot, excludeBookingID)
}

func (q *availabilityQueriesImpl) GetAvailableDJs(ctx context.Context, start, end time.Time) ([]*dj.Profile, error) {
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}
	var out []*dj.Profile
	err = q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		profiles, err := AvailableDJs(ctx, tx, slot, nil)
		out = profiles
		return err
	})
	return out, err
}

// CheckAvailability reports the active bookings of djID overlapping slot.
// The repository prefilters by range; Overlaps is the authority.
func CheckAvailability(ctx context.Context, repo shared.BookingRepository, djID uuid.UUID, slot booking.TimeSlot, excludeBookingID *uuid.UUID) (*AvailabilityResult, error) {
	candidates, err := repo.ListActiveByDJ(ctx, djID, slot.Start(), slot.End())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list active bookings for dj")
	}

	conflicts := make([]*booking.Booking, 0)
	for _, b := range candidates {
		if excluded(b, excludeBookingID) {
			continue
		}
		if booking.Overlaps(slot, b.Window()) {
			conflicts = append(conflicts, b)
		}
	}
	return &AvailabilityResult{Available: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// AvailableDJs returns active DJs with no conflicting active booking, in repository order.
// Busy DJs are found with one range query instead of one query per DJ.
func AvailableDJs(ctx context.Context, tx shared.Tx, slot booking.TimeSlot, excludeBookingID *uuid.UUID) ([]*dj.Profile, error) {
	profiles, err := tx.DJs().ListActive(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list active djs")
	}
	inRange, err := tx.Bookings().ListActiveInRange(ctx, slot.Start(), slot.End())
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings in range")
	}

	busy := make(map[uuid.UUID]struct{})
	for _, b := range inRange {
		if !b.HasDJ() || excluded(b, excludeBookingID) {
			continue
		}
		if booking.Overlaps(slot, b.Window()) {
			busy[*b.DJID()] = struct{}{}
		}
	}

	available := make([]*dj.Profile, 0, len(profiles))
	for _, p := range profiles {
		if _, isBusy := busy[p.ID()]; !isBusy {
			available = append(available, p)
		}
	}
	return available, nil
}

func LoadBooking(ctx context.Context, repo shared.BookingRepository, id uuid.UUID) (*booking.Booking, error) {
	b, err := repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to load booking")
	}
	return b, nil
}

func excluded(b *booking.Booking, excludeID *uuid.UUID) bool {
	return excludeID != nil && b.ID() == *excludeID
}
