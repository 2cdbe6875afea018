//go:build unit

package booking_test

import (
	"testing"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

func TestResponseDeadline(t *testing.T) {
	policy := booking.DefaultDeadlinePolicy()
	created := builder.BaseTime

	cases := []struct {
		name       string
		eventIn    time.Duration
		wantWindow time.Duration
	}{
		{name: "three days out is urgent", eventIn: 3 * day, wantWindow: 24 * time.Hour},
		{name: "exactly seven days is still urgent", eventIn: 7 * day, wantWindow: 24 * time.Hour},
		{name: "eight days out is standard", eventIn: 8 * day, wantWindow: 48 * time.Hour},
		{name: "thirty days out is standard", eventIn: 30 * day, wantWindow: 48 * time.Hour},
		{name: "fractional days round down", eventIn: 7*day + 23*time.Hour, wantWindow: 24 * time.Hour},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			eventDate := created.Add(c.eventIn)
			assert.Equal(t, created.Add(c.wantWindow), policy.ResponseDeadline(created, eventDate, created))
		})
	}
}

func TestDaysUntilEvent(t *testing.T) {
	now := builder.BaseTime
	assert.Equal(t, 3, booking.DaysUntilEvent(now.Add(3*day+time.Hour), now))
	assert.Equal(t, 0, booking.DaysUntilEvent(now.Add(time.Hour), now))
	assert.Equal(t, -1, booking.DaysUntilEvent(now.Add(-time.Hour), now))
}

func TestIsExpired(t *testing.T) {
	policy := booking.DefaultDeadlinePolicy()
	created := builder.BaseTime
	start := created.Add(3*day + 8*time.Hour)

	b := builder.NewBookingBuilder().
		WithWindow(start, start.Add(4*time.Hour)).
		WithCreatedAt(created).
		BuildReconstructed()
	deadline := created.Add(24 * time.Hour)

	t.Run("not expired at the deadline itself", func(t *testing.T) {
		assert.Equal(t, deadline, b.ResponseDeadline(policy, deadline))
		assert.False(t, b.IsExpired(policy, deadline))
	})

	t.Run("expired strictly after the deadline", func(t *testing.T) {
		assert.True(t, b.IsExpired(policy, deadline.Add(time.Second)))
	})

	t.Run("only pending bookings expire", func(t *testing.T) {
		accepted := builder.NewBookingBuilder().
			WithWindow(start, start.Add(4*time.Hour)).
			WithCreatedAt(created).
			WithStatus(booking.StatusAccepted).
			BuildReconstructed()
		assert.False(t, accepted.IsExpired(policy, deadline.Add(time.Hour)))
	})

	t.Run("urgency is judged when evaluated", func(t *testing.T) {
		far := created.Add(10 * day)
		b2 := builder.NewBookingBuilder().
			WithWindow(far, far.Add(2*time.Hour)).
			WithCreatedAt(created).
			BuildReconstructed()
		require.Equal(t, created.Add(48*time.Hour), b2.ResponseDeadline(policy, created))
		// three days later the event is within the urgent window
		later := created.Add(3 * day)
		assert.Equal(t, created.Add(24*time.Hour), b2.ResponseDeadline(policy, later))
	})
}
