package commands

import (
	"context"
	"log/slog"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/queries"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const ActorDJ = "dj"

type CancelBookingRequest struct {
	Reason string
	Actor  string
	Cause  booking.Cause
}

type RejectBookingResult struct {
	Booking  *booking.Booking
	Recovery []RecoveryOption
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, p booking.NewBookingParams) (*booking.Booking, error)
	AcceptBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ConfirmBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	CancelBooking(ctx context.Context, id uuid.UUID, req CancelBookingRequest) (*booking.Booking, error)
	// RejectBooking declines a pending request on behalf of its DJ and generates recovery options.
	RejectBooking(ctx context.Context, id uuid.UUID, reason string) (*RejectBookingResult, error)
	StartReview(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ReleaseReview(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	AssignDJ(ctx context.Context, id, djID uuid.UUID) (*booking.Booking, error)
}

type bookingUseCaseImpl struct {
	uow       shared.UnitOfWork
	validator *booking.Validator
	generator *RecoveryGenerator
	clock     clock.Clock
	logger    *slog.Logger
}

func NewBookingUseCase(
	uow shared.UnitOfWork,
	validator *booking.Validator,
	generator *RecoveryGenerator,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingUseCaseImpl{
		uow:       uow,
		validator: validator,
		generator: generator,
		clock:     clk,
		logger:    logger,
	}
}

func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, p booking.NewBookingParams) (*booking.Booking, error) {
	var created *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := createBooking(ctx, tx, uc.validator, p, uc.clock.Now())
		if err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("booking created",
		"booking_id", created.ID(),
		"status", created.Status(),
		"admin_review", created.Status() == booking.StatusPendingAdminReview)
	return created, nil
}

// createBooking is the single creation path: validate, check the DJ, re-check
// availability inside the transaction, persist, enqueue the DJ notification.
func createBooking(ctx context.Context, tx shared.Tx, v *booking.Validator, p booking.NewBookingParams, now time.Time) (*booking.Booking, error) {
	check, err := v.ValidateBookingWindow(p.StartTime, p.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBooking)
	}
	if !check.Valid {
		return nil, windowViolation(check.Reason)
	}

	if p.DJID != nil {
		profile, err := tx.DJs().FindByID(ctx, *p.DJID)
		if err != nil {
			if infra.IsNotFound(err) {
				return nil, ErrDJNotFound
			}
			return nil, errs.Wrap(err, "failed to load dj")
		}
		if !profile.IsActive() {
			return nil, ErrDJInactive
		}
	}

	b, err := booking.NewBooking(p, now)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidBooking)
	}

	if b.HasDJ() && b.IsActive() {
		result, err := queries.CheckAvailability(ctx, tx.Bookings(), *b.DJID(), b.Window(), nil)
		if err != nil {
			return nil, err
		}
		if !result.Available {
			return nil, conflictError(*b.DJID(), result.Conflicts)
		}
	}

	if err := tx.Bookings().Create(ctx, b); err != nil {
		return nil, translateBookingErr(err, "failed to create booking")
	}

	if b.HasDJ() {
		err := enqueue(ctx, tx, func() (shared.NotificationJob, error) {
			return shared.DJJob(b, shared.TopicBookingCreated, shared.BookingEventPayload{Booking: shared.SnapshotOf(b)}, now)
		})
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (uc *bookingUseCaseImpl) AcceptBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		return b.TransitionTo(booking.StatusAccepted, booking.CauseDJResponse, now)
	})
}

func (uc *bookingUseCaseImpl) ConfirmBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		return b.TransitionTo(booking.StatusConfirmed, booking.CauseClient, now)
	})
}

func (uc *bookingUseCaseImpl) CancelBooking(ctx context.Context, id uuid.UUID, req CancelBookingRequest) (*booking.Booking, error) {
	cause := req.Cause
	if cause == "" {
		cause = booking.CauseClient
	}
	return uc.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		if err := b.Cancel(req.Reason, req.Actor, cause, now); err != nil {
			return err
		}
		if !b.HasDJ() {
			return nil
		}
		return enqueue(ctx, tx, func() (shared.NotificationJob, error) {
			return shared.DJJob(b, shared.TopicBookingCancelled, shared.BookingEventPayload{
				Booking: shared.SnapshotOf(b),
				Message: req.Reason,
			}, now)
		})
	})
}

func (uc *bookingUseCaseImpl) StartReview(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		return b.TransitionTo(booking.StatusAdminReviewing, booking.CauseAdmin, now)
	})
}

func (uc *bookingUseCaseImpl) ReleaseReview(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		return b.TransitionTo(booking.StatusPendingAdminReview, booking.CauseAdmin, now)
	})
}

// AssignDJ checks the DJ in Go because DJ_ASSIGNED does not reserve the slot in the store.
func (uc *bookingUseCaseImpl) AssignDJ(ctx context.Context, id, djID uuid.UUID) (*booking.Booking, error) {
	return uc.mutate(ctx, id, func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error {
		profile, err := tx.DJs().FindByID(ctx, djID)
		if err != nil {
			if infra.IsNotFound(err) {
				return ErrDJNotFound
			}
			return errs.Wrap(err, "failed to load dj")
		}
		if !profile.IsActive() {
			return ErrDJInactive
		}

		bookingID := b.ID()
		result, err := queries.CheckAvailability(ctx, tx.Bookings(), djID, b.Window(), &bookingID)
		if err != nil {
			return err
		}
		if !result.Available {
			return conflictError(djID, result.Conflicts)
		}

		if err := b.AssignDJ(djID, now); err != nil {
			return err
		}
		return enqueue(ctx, tx, func() (shared.NotificationJob, error) {
			return shared.DJJob(b, shared.TopicBookingAssigned, shared.BookingEventPayload{Booking: shared.SnapshotOf(b)}, now)
		})
	})
}

func (uc *bookingUseCaseImpl) RejectBooking(ctx context.Context, id uuid.UUID, reason string) (*RejectBookingResult, error) {
	var result *RejectBookingResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		b, err := loadForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := b.Decline(reason, ActorDJ, booking.CauseDJResponse, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return translateBookingErr(err, "failed to decline booking")
		}
		if err := enqueue(ctx, tx, func() (shared.NotificationJob, error) {
			return shared.ClientJob(b, shared.TopicBookingDeclined, shared.BookingDeclinedPayload{
				Booking: shared.SnapshotOf(b),
				Reason:  reason,
				Actor:   ActorDJ,
			}, now)
		}); err != nil {
			return err
		}

		options, err := uc.generator.generateInTx(ctx, tx, b, reason, now)
		if err != nil {
			return err
		}
		result = &RejectBookingResult{Booking: b, Recovery: options}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("booking rejected",
		"booking_id", id,
		"recovery_options", len(result.Recovery))
	return result, nil
}

type mutation func(ctx context.Context, tx shared.Tx, b *booking.Booking, now time.Time) error

// mutate re-reads the booking under a row lock, applies fn and persists the result.
func (uc *bookingUseCaseImpl) mutate(ctx context.Context, id uuid.UUID, fn mutation) (*booking.Booking, error) {
	var updated *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := loadForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(ctx, tx, b, uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return translateBookingErr(err, "failed to update booking")
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func loadForUpdate(ctx context.Context, tx shared.Tx, id uuid.UUID) (*booking.Booking, error) {
	b, err := tx.Bookings().FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, translateBookingErr(err, "failed to load booking")
	}
	return b, nil
}

func enqueue(ctx context.Context, tx shared.Tx, build func() (shared.NotificationJob, error)) error {
	job, err := build()
	if err != nil {
		return errs.Wrap(err, "failed to build notification")
	}
	if err := tx.Notifications().CreateJob(ctx, job); err != nil {
		return errs.Wrap(err, "failed to enqueue notification")
	}
	return nil
}
