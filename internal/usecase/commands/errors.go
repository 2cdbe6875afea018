package commands

import (
	"fmt"
	"strings"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound    = queries.ErrBookingNotFound
	ErrDJNotFound         = queries.ErrDJNotFound
	ErrInvalidTransition  = booking.ErrInvalidTransition
	ErrInvalidBooking     = errs.New("invalid booking")
	ErrBookingConflict    = errs.New("booking conflicts with an active booking")
	ErrDJInactive         = errs.New("dj is not accepting bookings")
	ErrRecoveryNotFound   = errs.New("recovery not found")
	ErrRecoveryFailed     = errs.New("recovery could not be applied")
	ErrExtensionConflict  = errs.New("extension overlaps another booking")
	ErrBookingNotRejected = errs.New("booking has not been rejected")
)

// WindowViolation carries the validator's reason. It is marked ErrInvalidBooking.
type WindowViolation struct {
	Reason string
}

func (e *WindowViolation) Error() string {
	return "invalid booking window: " + e.Reason
}

// ConflictError lists the bookings that hold the requested slot. It is marked ErrBookingConflict.
type ConflictError struct {
	DJID      uuid.UUID
	Conflicts []uuid.UUID
}

func (e *ConflictError) Error() string {
	ids := make([]string, len(e.Conflicts))
	for i, id := range e.Conflicts {
		ids[i] = id.String()
	}
	return fmt.Sprintf("dj %s is booked by %s", e.DJID, strings.Join(ids, ", "))
}

func windowViolation(reason string) error {
	return errs.Mark(&WindowViolation{Reason: reason}, ErrInvalidBooking)
}

func conflictError(djID uuid.UUID, conflicts []*booking.Booking) error {
	ids := make([]uuid.UUID, len(conflicts))
	for i, b := range conflicts {
		ids[i] = b.ID()
	}
	return errs.Mark(&ConflictError{DJID: djID, Conflicts: ids}, ErrBookingConflict)
}

// translateBookingErr maps store errors onto use-case sentinels.
func translateBookingErr(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case infra.IsNotFound(err):
		return ErrBookingNotFound
	case infra.IsConflict(err):
		return errs.Mark(errs.Wrap(err, msg), ErrBookingConflict)
	default:
		return errs.Wrap(err, msg)
	}
}
