package commands

import (
	"context"
	"log/slog"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	SweepLeaseKey = "dj-booking:sweeper:expired-bookings"
	expiryReason  = "response deadline passed"
)

type SweepResult struct {
	LeaseAcquired bool
	Scanned       int
	Expired       int
	Skipped       int
	Failed        int
}

type TimeoutSweeper struct {
	uow       shared.UnitOfWork
	generator *RecoveryGenerator
	locker    shared.Locker
	policy    booking.DeadlinePolicy
	leaseTTL  time.Duration
	clock     clock.Clock
	logger    *slog.Logger
}

func NewTimeoutSweeper(
	uow shared.UnitOfWork,
	generator *RecoveryGenerator,
	locker shared.Locker,
	policy booking.DeadlinePolicy,
	leaseTTL time.Duration,
	clk clock.Clock,
	logger *slog.Logger,
) *TimeoutSweeper {
	return &TimeoutSweeper{
		uow:       uow,
		generator: generator,
		locker:    locker,
		policy:    policy,
		leaseTTL:  leaseTTL,
		clock:     clk,
		logger:    logger,
	}
}

// SweepExpiredBookings declines every pending booking past its response deadline.
// Each booking is re-read under lock, so a booking answered meanwhile is left alone
// and a second sweep over the same state changes nothing.
func (s *TimeoutSweeper) SweepExpiredBookings(ctx context.Context) (SweepResult, error) {
	var result SweepResult

	lease, ok, err := s.locker.TryAcquire(ctx, SweepLeaseKey, s.leaseTTL)
	if err != nil {
		return result, errs.Wrap(err, "failed to acquire sweep lease")
	}
	if !ok {
		s.logger.Debug("sweep skipped, lease held elsewhere")
		return result, nil
	}
	result.LeaseAcquired = true
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("failed to release sweep lease", "error", err)
		}
	}()

	now := s.clock.Now()
	candidates, err := s.uow.Reads().Bookings().ListPendingCreatedBefore(ctx, now.Add(-s.shortestWindow()))
	if err != nil {
		return result, errs.Wrap(err, "failed to list pending bookings")
	}

	for _, c := range candidates {
		result.Scanned++
		if !c.IsExpired(s.policy, now) {
			continue
		}
		expired, err := s.expire(ctx, c.ID(), now)
		switch {
		case err != nil:
			result.Failed++
			s.logger.Error("failed to expire booking", "booking_id", c.ID(), "error", err)
		case expired:
			result.Expired++
		default:
			result.Skipped++
		}
	}

	s.logger.Info("sweep finished",
		"scanned", result.Scanned,
		"expired", result.Expired,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}

func (s *TimeoutSweeper) expire(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	var declined *booking.Booking
	err := s.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		declined = nil
		b, err := loadForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		// lost the race against a DJ or admin response
		if !b.IsExpired(s.policy, now) {
			return nil
		}
		if err := b.Decline(expiryReason, booking.ActorSystem, booking.CauseTimeout, now); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return translateBookingErr(err, "failed to expire booking")
		}
		if err := enqueue(ctx, tx, func() (shared.NotificationJob, error) {
			return shared.ClientJob(b, shared.TopicBookingExpired, s.declinedPayload(b), now)
		}); err != nil {
			return err
		}
		if _, err := s.generator.generateInTx(ctx, tx, b, expiryReason, now); err != nil {
			return err
		}
		declined = b
		return nil
	})
	if err != nil || declined == nil {
		return false, err
	}

	s.notifyDJ(ctx, declined, now)
	return true, nil
}

// notifyDJ is informational. A failure here is logged and never undoes the expiry.
func (s *TimeoutSweeper) notifyDJ(ctx context.Context, b *booking.Booking, now time.Time) {
	if !b.HasDJ() {
		return
	}
	job, err := shared.DJJob(b, shared.TopicBookingExpired, s.declinedPayload(b), now)
	if err == nil {
		err = s.uow.Reads().Notifications().CreateJob(ctx, job)
	}
	if err != nil {
		s.logger.Warn("failed to enqueue dj expiry notification", "booking_id", b.ID(), "error", err)
	}
}

func (s *TimeoutSweeper) declinedPayload(b *booking.Booking) shared.BookingDeclinedPayload {
	return shared.BookingDeclinedPayload{
		Booking: shared.SnapshotOf(b),
		Reason:  expiryReason,
		Actor:   booking.ActorSystem,
		Expired: true,
	}
}

// shortestWindow bounds the candidate query: nothing younger can have expired.
func (s *TimeoutSweeper) shortestWindow() time.Duration {
	return min(s.policy.UrgentResponse, s.policy.StandardResponse)
}
