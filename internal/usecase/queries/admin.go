package queries

import (
	"context"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/matching"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type CandidateList struct {
	Booking    *booking.Booking
	Candidates []matching.ScoredCandidate
}

type AdminQueries interface {
	AdminQueue(ctx context.Context) ([]matching.QueueItem, error)
	CandidatesForBooking(ctx context.Context, bookingID uuid.UUID) (*CandidateList, error)
}

type adminQueriesImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	scoring matching.ScoringPolicy
}

func NewAdminQueries(uow shared.UnitOfWork, clk clock.Clock, scoring matching.ScoringPolicy) AdminQueries {
	return &adminQueriesImpl{uow: uow, clock: clk, scoring: scoring}
}

func (q *adminQueriesImpl) AdminQueue(ctx context.Context) ([]matching.QueueItem, error) {
	pending, err := q.uow.Reads().Bookings().ListByStatus(ctx, booking.AdminQueueStatuses...)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list admin queue")
	}
	return matching.RankAdminQueue(pending, q.clock.Now()), nil
}

// CandidatesForBooking ranks every DJ free for the booking's window. The full
// list goes to staff; clients only ever see the single best NEW_DJ suggestion.
func (q *adminQueriesImpl) CandidatesForBooking(ctx context.Context, bookingID uuid.UUID) (*CandidateList, error) {
	var result *CandidateList
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := LoadBooking(ctx, tx.Bookings(), bookingID)
		if err != nil {
			return err
		}
		id := b.ID()
		pool, err := AvailableDJs(ctx, tx, b.Window(), &id)
		if err != nil {
			return err
		}
		result = &CandidateList{
			Booking:    b,
			Candidates: matching.ScoreDJCandidates(b, pool, q.clock.Now(), q.scoring),
		}
		return nil
	})
	return result, err
}
