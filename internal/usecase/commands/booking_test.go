//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/shared"
	"dj-booking-engine/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success: pending booking notifies the DJ", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())

		b, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().WithDJ(d.ID()).BuildParams())
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPending, b.Status())
		assert.Equal(t, builder.BaseTime, b.CreatedAt())
		stored := f.booking(t, b.ID())
		assert.Equal(t, b.Window(), stored.Window())

		jobs := f.jobs(shared.TopicBookingCreated)
		require.Len(t, jobs, 1)
		assert.Equal(t, shared.NotificationKindDJ, jobs[0].Kind)
		assert.Equal(t, d.ID(), *jobs[0].RecipientID)
	})

	t.Run("success: no DJ goes to the admin queue", func(t *testing.T) {
		f := newFixture(t)

		b, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().WithoutDJ().BuildParams())
		require.NoError(t, err)

		assert.Equal(t, booking.StatusPendingAdminReview, b.Status())
		assert.Empty(t, f.store.Jobs())
	})

	t.Run("error: window in the past is a violation with a reason", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		start := builder.BaseTime.Add(-time.Hour)

		_, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().
			WithDJ(d.ID()).
			WithWindow(start, start.Add(2*time.Hour)).
			BuildParams())

		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrInvalidBooking))
		var violation *commands.WindowViolation
		require.True(t, errors.As(err, &violation))
		assert.Equal(t, "start time must be in the future", violation.Reason)
	})

	t.Run("error: unknown DJ", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().WithDJ(uuid.New()).BuildParams())
		assert.True(t, errs.Is(err, commands.ErrDJNotFound))
	})

	t.Run("error: inactive DJ", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder().AsInactive())

		_, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().WithDJ(d.ID()).BuildParams())
		assert.True(t, errs.Is(err, commands.ErrDJInactive))
	})
}

func TestCreateBookingConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := f.seedDJ(t, builder.NewDJBuilder())
	existing := f.seedBooking(t, builder.NewBookingBuilder().
		WithDJ(d.ID()).
		WithWindow(at(10), at(14)).
		WithStatus(booking.StatusConfirmed))

	t.Run("overlapping window is refused with the conflicting booking", func(t *testing.T) {
		_, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().
			WithDJ(d.ID()).
			WithWindow(at(13), at(15)).
			BuildParams())

		require.Error(t, err)
		assert.True(t, errs.Is(err, commands.ErrBookingConflict))
		var conflict *commands.ConflictError
		require.True(t, errors.As(err, &conflict))
		if diff := cmp.Diff([]uuid.UUID{existing.ID()}, conflict.Conflicts); diff != "" {
			t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("touching window is accepted", func(t *testing.T) {
		b, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().
			WithDJ(d.ID()).
			WithWindow(at(14), at(16)).
			BuildParams())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("overnight window overlapping the next morning is refused", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		f.seedBooking(t, builder.NewBookingBuilder().
			WithDJ(d.ID()).
			WithWindow(at(24), at(26)).
			WithStatus(booking.StatusAccepted))

		// 22:00 to 01:00 wraps past midnight
		_, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().
			WithDJ(d.ID()).
			WithWindow(at(22), at(1)).
			BuildParams())
		assert.True(t, errs.Is(err, commands.ErrBookingConflict))
	})

	t.Run("declined bookings do not hold the slot", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		f.seedBooking(t, builder.NewBookingBuilder().
			WithDJ(d.ID()).
			WithWindow(at(10), at(14)).
			WithStatus(booking.StatusDeclined))

		_, err := f.bookings.CreateBooking(ctx, builder.NewBookingBuilder().
			WithDJ(d.ID()).
			WithWindow(at(12), at(15)).
			BuildParams())
		assert.NoError(t, err)
	})
}

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("accept then confirm", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		b := f.seedBooking(t, pendingWith(d.ID(), uuid.New()))

		accepted, err := f.bookings.AcceptBooking(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAccepted, accepted.Status())

		confirmed, err := f.bookings.ConfirmBooking(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, confirmed.Status())
		assert.Equal(t, booking.StatusConfirmed, f.booking(t, b.ID()).Status())
	})

	t.Run("confirming a pending booking is an invalid transition", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		b := f.seedBooking(t, pendingWith(d.ID(), uuid.New()))

		_, err := f.bookings.ConfirmBooking(ctx, b.ID())
		assert.True(t, errs.Is(err, commands.ErrInvalidTransition))
		assert.Equal(t, booking.StatusPending, f.booking(t, b.ID()).Status())
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.bookings.AcceptBooking(ctx, uuid.New())
		assert.True(t, errs.Is(err, commands.ErrBookingNotFound))
	})

	t.Run("cancel records who and why and tells the DJ", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		b := f.seedBooking(t, pendingWith(d.ID(), uuid.New()))

		cancelled, err := f.bookings.CancelBooking(ctx, b.ID(), commands.CancelBookingRequest{Reason: "plans changed", Actor: "client"})
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
		require.NotNil(t, cancelled.Cancellation())
		assert.Equal(t, "plans changed", cancelled.Cancellation().Reason)
		assert.Equal(t, "client", cancelled.Cancellation().Actor)
		assert.Len(t, f.jobs(shared.TopicBookingCancelled), 1)
	})
}

func TestAdminReview(t *testing.T) {
	ctx := context.Background()

	t.Run("review, assign and confirm", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		b := f.seedBooking(t, builder.NewBookingBuilder().WithoutDJ().AsAdminReview())

		reviewing, err := f.bookings.StartReview(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusAdminReviewing, reviewing.Status())

		assigned, err := f.bookings.AssignDJ(ctx, b.ID(), d.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusDJAssigned, assigned.Status())
		assert.True(t, assigned.IsBookedWith(d.ID()))
		assert.Len(t, f.jobs(shared.TopicBookingAssigned), 1)

		confirmed, err := f.bookings.ConfirmBooking(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, confirmed.Status())
	})

	t.Run("release puts the booking back in the queue", func(t *testing.T) {
		f := newFixture(t)
		b := f.seedBooking(t, builder.NewBookingBuilder().WithoutDJ().AsAdminReview())

		_, err := f.bookings.StartReview(ctx, b.ID())
		require.NoError(t, err)
		released, err := f.bookings.ReleaseReview(ctx, b.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPendingAdminReview, released.Status())
	})

	t.Run("assigning a busy DJ is a conflict", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		f.seedBooking(t, builder.NewBookingBuilder().
			WithDJ(d.ID()).
			WithWindow(at(21), at(23)).
			WithStatus(booking.StatusConfirmed))
		b := f.seedBooking(t, builder.NewBookingBuilder().
			WithoutDJ().
			WithWindow(at(20), at(24)).
			WithStatus(booking.StatusAdminReviewing))

		_, err := f.bookings.AssignDJ(ctx, b.ID(), d.ID())
		assert.True(t, errs.Is(err, commands.ErrBookingConflict))
		assert.Equal(t, booking.StatusAdminReviewing, f.booking(t, b.ID()).Status())
	})

	t.Run("assigning before review starts is an invalid transition", func(t *testing.T) {
		f := newFixture(t)
		d := f.seedDJ(t, builder.NewDJBuilder())
		b := f.seedBooking(t, builder.NewBookingBuilder().WithoutDJ().AsAdminReview())

		_, err := f.bookings.AssignDJ(ctx, b.ID(), d.ID())
		assert.True(t, errs.Is(err, commands.ErrInvalidTransition))
	})
}
