package commands

import (
	"context"
	"log/slog"
	"time"

	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/shared"
)

const maxRelayBackoff = 5 * time.Minute

type RelayResult struct {
	Sent    int
	Retried int
	Failed  int
}

// NotificationRelay drains the outbox to the broker. Delivery is at least once.
type NotificationRelay struct {
	uow         shared.UnitOfWork
	publisher   shared.Publisher
	batchSize   int
	maxAttempts int
	clock       clock.Clock
	logger      *slog.Logger
}

func NewNotificationRelay(uow shared.UnitOfWork, publisher shared.Publisher, batchSize, maxAttempts int, clk clock.Clock, logger *slog.Logger) *NotificationRelay {
	if batchSize <= 0 {
		batchSize = 100
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &NotificationRelay{
		uow:         uow,
		publisher:   publisher,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		clock:       clk,
		logger:      logger,
	}
}

func (r *NotificationRelay) RelayOnce(ctx context.Context) (RelayResult, error) {
	var result RelayResult
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = RelayResult{}
		now := r.clock.Now()

		jobs, err := tx.Notifications().ClaimDue(ctx, now, r.batchSize)
		if err != nil {
			return errs.Wrap(err, "failed to claim notification jobs")
		}

		for _, job := range jobs {
			attempts := job.Attempts + 1
			pubErr := r.publisher.Publish(ctx, job)
			if pubErr == nil {
				if err := tx.Notifications().UpdateJobStatus(ctx, job.ID, shared.NotificationSent, attempts, nil, job.RunAt); err != nil {
					return errs.Wrap(err, "failed to mark notification sent")
				}
				result.Sent++
				continue
			}

			msg := pubErr.Error()
			status := shared.NotificationQueued
			runAt := now.Add(relayBackoff(attempts))
			if attempts >= r.maxAttempts {
				status = shared.NotificationFailed
				runAt = job.RunAt
				result.Failed++
			} else {
				result.Retried++
			}
			r.logger.Warn("notification publish failed",
				"job_id", job.ID,
				"topic", job.Topic,
				"attempts", attempts,
				"error", msg)
			if err := tx.Notifications().UpdateJobStatus(ctx, job.ID, status, attempts, &msg, runAt); err != nil {
				return errs.Wrap(err, "failed to record notification failure")
			}
		}
		return nil
	})
	if err != nil {
		return RelayResult{}, err
	}
	if result != (RelayResult{}) {
		r.logger.Info("relay finished", "sent", result.Sent, "retried", result.Retried, "failed", result.Failed)
	}
	return result, nil
}

func relayBackoff(attempts int) time.Duration {
	if attempts > 8 {
		return maxRelayBackoff
	}
	return min(time.Duration(1<<attempts)*time.Second, maxRelayBackoff)
}
