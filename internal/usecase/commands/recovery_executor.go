package commands

import (
	"context"
	"log/slog"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/recovery"
	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/queries"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const supersededResponse = "superseded by another recovery option"

type RecoveryCommands interface {
	// AcceptRecovery applies the chosen option. Unknown or rejected records return false without error.
	AcceptRecovery(ctx context.Context, recoveryID uuid.UUID, response string) (bool, error)
	// DeclineRecovery rejects every pending option of the record's booking.
	DeclineRecovery(ctx context.Context, recoveryID uuid.UUID, response string) (bool, error)
}

type recoveryUseCaseImpl struct {
	uow       shared.UnitOfWork
	validator *booking.Validator
	clock     clock.Clock
	logger    *slog.Logger
}

func NewRecoveryUseCase(uow shared.UnitOfWork, validator *booking.Validator, clk clock.Clock, logger *slog.Logger) RecoveryCommands {
	return &recoveryUseCaseImpl{uow: uow, validator: validator, clock: clk, logger: logger}
}

func (uc *recoveryUseCaseImpl) AcceptRecovery(ctx context.Context, recoveryID uuid.UUID, response string) (bool, error) {
	var applied bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		applied = false
		now := uc.clock.Now()

		rec, err := tx.Recoveries().FindByIDForUpdate(ctx, recoveryID)
		if err != nil {
			if infra.IsNotFound(err) {
				uc.logger.Warn("recovery record not found", "recovery_id", recoveryID)
				return nil
			}
			return errs.Wrap(err, "failed to load recovery record")
		}
		switch rec.Status() {
		case recovery.StatusAccepted:
			applied = true
			return nil
		case recovery.StatusRejected:
			return nil
		}

		original, err := loadForUpdate(ctx, tx, rec.BookingID())
		if err != nil {
			return err
		}

		done, err := uc.dispatch(ctx, tx, rec, original, now)
		if err != nil {
			return err
		}
		// nothing to apply: the option stays open and the alternatives survive
		if !done {
			uc.logger.Warn("recovery option no longer applies", "recovery_id", recoveryID, "type", rec.Type())
			return nil
		}

		if err := rec.Accept(response, now); err != nil {
			return err
		}
		if err := tx.Recoveries().Update(ctx, rec); err != nil {
			return errs.Wrap(err, "failed to accept recovery record")
		}
		if err := rejectPending(ctx, tx, rec.BookingID(), rec.ID(), supersededResponse, now); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		uc.logger.Error("recovery execution failed", "recovery_id", recoveryID, "error", err)
		return false, errs.Mark(err, ErrRecoveryFailed)
	}
	if applied {
		uc.logger.Info("recovery accepted", "recovery_id", recoveryID)
	}
	return applied, nil
}

// dispatch reports false when the option can no longer change anything.
func (uc *recoveryUseCaseImpl) dispatch(ctx context.Context, tx shared.Tx, rec *recovery.Record, original *booking.Booking, now time.Time) (bool, error) {
	switch rec.Type() {
	case recovery.TypeExtendDJ:
		return uc.extend(ctx, tx, rec, original, now)
	case recovery.TypeNewDJ:
		return true, uc.replace(ctx, tx, rec, original, now)
	case recovery.TypeRefund:
		return true, uc.refund(ctx, tx, rec, original, now)
	default:
		return false, errs.Wrapf(recovery.ErrUnknownType, "recovery %s", rec.ID())
	}
}

// extend only ever moves the sibling's end later, and only over time the DJ has free.
// A sibling that already ends at or after the gap cannot cover it and yields false.
func (uc *recoveryUseCaseImpl) extend(ctx context.Context, tx shared.Tx, rec *recovery.Record, original *booking.Booking, now time.Time) (bool, error) {
	sibling, err := uc.findSibling(ctx, tx, rec, original)
	if err != nil {
		return false, err
	}

	target := original.Window().End()
	current := sibling.Window()
	if !target.After(current.End()) {
		return false, nil
	}

	extension, err := booking.NewTimeSlot(current.End(), target)
	if err != nil {
		return false, errs.Wrap(err, "invalid extension window")
	}
	siblingID := sibling.ID()
	result, err := queries.CheckAvailability(ctx, tx.Bookings(), *sibling.DJID(), extension, &siblingID)
	if err != nil {
		return false, err
	}
	if !result.Available {
		return false, errs.Mark(conflictError(*sibling.DJID(), result.Conflicts), ErrExtensionConflict)
	}

	sibling.ExtendTo(target, now)
	if err := tx.Bookings().Update(ctx, sibling); err != nil {
		if infra.IsConflict(err) {
			return false, errs.Mark(err, ErrExtensionConflict)
		}
		return false, translateBookingErr(err, "failed to extend sibling booking")
	}

	recID := rec.ID()
	return true, enqueue(ctx, tx, func() (shared.NotificationJob, error) {
		return shared.DJJob(sibling, shared.TopicBookingExtended, shared.BookingEventPayload{
			Booking:    shared.SnapshotOf(sibling),
			RecoveryID: &recID,
			Message:    rec.Message(),
		}, now)
	})
}

// findSibling prefers the stored sibling reference and falls back to matching on DJ and event.
func (uc *recoveryUseCaseImpl) findSibling(ctx context.Context, tx shared.Tx, rec *recovery.Record, original *booking.Booking) (*booking.Booking, error) {
	djID := rec.SuggestedDJID()
	if djID == nil {
		return nil, recovery.ErrMissingDJ
	}
	if ref := rec.SiblingBookingID(); ref != nil {
		sibling, err := loadForUpdate(ctx, tx, *ref)
		if err != nil {
			return nil, err
		}
		if sibling.Status() == booking.StatusConfirmed && sibling.IsBookedWith(*djID) && sibling.SameEvent(original) {
			return sibling, nil
		}
		return nil, errs.Newf("sibling booking %s no longer matches the extension", *ref)
	}

	siblings, err := tx.Bookings().ListSiblings(ctx, original.ClientID(), original.EventDate(), booking.StatusConfirmed)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list sibling bookings")
	}
	for _, s := range siblings {
		if s.IsBookedWith(*djID) {
			return loadForUpdate(ctx, tx, s.ID())
		}
	}
	return nil, errs.Newf("no confirmed booking with dj %s for this event", *djID)
}

// replace re-enters the normal lifecycle with the suggested DJ.
func (uc *recoveryUseCaseImpl) replace(ctx context.Context, tx shared.Tx, rec *recovery.Record, original *booking.Booking, now time.Time) error {
	djID := rec.SuggestedDJID()
	if djID == nil {
		return recovery.ErrMissingDJ
	}
	_, err := createBooking(ctx, tx, uc.validator, booking.NewBookingParams{
		ClientID:    original.ClientID(),
		DJID:        djID,
		EventType:   original.EventType(),
		EventDate:   original.EventDate(),
		StartTime:   original.StartTime(),
		EndTime:     original.EndTime(),
		Quote:       original.Quote(),
		Message:     original.Message(),
		Preferences: original.Preferences(),
	}, now)
	return err
}

func (uc *recoveryUseCaseImpl) refund(ctx context.Context, tx shared.Tx, rec *recovery.Record, original *booking.Booking, now time.Time) error {
	if original.Status() != booking.StatusCancelled {
		if err := original.Cancel("refund accepted", booking.ActorSystem, booking.CauseRefund, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, original); err != nil {
			return translateBookingErr(err, "failed to cancel booking for refund")
		}
	}

	recID := rec.ID()
	return enqueue(ctx, tx, func() (shared.NotificationJob, error) {
		return shared.ClientJob(original, shared.TopicRefundRequested, shared.RefundRequestedPayload{
			Booking:     shared.SnapshotOf(original),
			AmountCents: original.Quote().Cents(),
			RecoveryID:  &recID,
		}, now)
	})
}

func (uc *recoveryUseCaseImpl) DeclineRecovery(ctx context.Context, recoveryID uuid.UUID, response string) (bool, error) {
	var declined bool
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		declined = false
		now := uc.clock.Now()

		rec, err := tx.Recoveries().FindByIDForUpdate(ctx, recoveryID)
		if err != nil {
			if infra.IsNotFound(err) {
				uc.logger.Warn("recovery record not found", "recovery_id", recoveryID)
				return nil
			}
			return errs.Wrap(err, "failed to load recovery record")
		}
		switch rec.Status() {
		case recovery.StatusRejected:
			declined = true
			return nil
		case recovery.StatusAccepted:
			return nil
		}

		original, err := loadForUpdate(ctx, tx, rec.BookingID())
		if err != nil {
			return err
		}
		if err := rejectPending(ctx, tx, rec.BookingID(), uuid.Nil, response, now); err != nil {
			return err
		}
		if err := enqueue(ctx, tx, func() (shared.NotificationJob, error) {
			return shared.ClientJob(original, shared.TopicRecoveryDeclined, shared.BookingEventPayload{
				Booking: shared.SnapshotOf(original),
				Message: response,
			}, now)
		}); err != nil {
			return err
		}
		declined = true
		return nil
	})
	if err != nil {
		uc.logger.Error("recovery decline failed", "recovery_id", recoveryID, "error", err)
		return false, errs.Mark(err, ErrRecoveryFailed)
	}
	return declined, nil
}

// rejectPending closes every pending record of a booking except keep.
func rejectPending(ctx context.Context, tx shared.Tx, bookingID, keep uuid.UUID, response string, now time.Time) error {
	records, err := tx.Recoveries().ListByBooking(ctx, bookingID)
	if err != nil {
		return errs.Wrap(err, "failed to list recovery records")
	}
	for _, r := range records {
		if r.ID() == keep || !r.IsPending() {
			continue
		}
		if err := r.Reject(response, now); err != nil {
			return err
		}
		if err := tx.Recoveries().Update(ctx, r); err != nil {
			return errs.Wrap(err, "failed to reject recovery record")
		}
	}
	return nil
}
