//go:build unit

package booking_test

import (
	"testing"

	"dj-booking-engine/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from  booking.Status
		to    booking.Status
		cause booking.Cause
		want  bool
	}{
		{booking.StatusPending, booking.StatusAccepted, booking.CauseDJResponse, true},
		{booking.StatusPending, booking.StatusDeclined, booking.CauseTimeout, true},
		{booking.StatusPending, booking.StatusCancelled, booking.CauseClient, true},
		{booking.StatusPending, booking.StatusConfirmed, booking.CauseClient, false},
		{booking.StatusPendingAdminReview, booking.StatusAdminReviewing, booking.CauseAdmin, true},
		{booking.StatusPendingAdminReview, booking.StatusDJAssigned, booking.CauseAdmin, false},
		{booking.StatusAdminReviewing, booking.StatusDJAssigned, booking.CauseAdmin, true},
		{booking.StatusAdminReviewing, booking.StatusPendingAdminReview, booking.CauseAdmin, true},
		{booking.StatusDJAssigned, booking.StatusConfirmed, booking.CauseClient, true},
		{booking.StatusAccepted, booking.StatusConfirmed, booking.CauseClient, true},
		{booking.StatusAccepted, booking.StatusDeclined, booking.CauseDJResponse, false},
		{booking.StatusDeclined, booking.StatusCancelled, booking.CauseRefund, true},
		{booking.StatusDeclined, booking.StatusCancelled, booking.CauseClient, false},
		{booking.StatusDeclined, booking.StatusPending, booking.CauseClient, false},
		{booking.StatusConfirmed, booking.StatusCancelled, booking.CauseClient, false},
		{booking.StatusCancelled, booking.StatusPending, booking.CauseClient, false},
	}

	for _, c := range cases {
		t.Run(string(c.from)+"->"+string(c.to)+"/"+string(c.cause), func(t *testing.T) {
			assert.Equal(t, c.want, booking.CanTransition(c.from, c.to, c.cause))
		})
	}
}

func TestStatus(t *testing.T) {
	t.Run("active set reserves the slot", func(t *testing.T) {
		assert.True(t, booking.StatusPending.IsActive())
		assert.True(t, booking.StatusAccepted.IsActive())
		assert.True(t, booking.StatusConfirmed.IsActive())
		assert.False(t, booking.StatusDeclined.IsActive())
		assert.False(t, booking.StatusCancelled.IsActive())
		assert.False(t, booking.StatusPendingAdminReview.IsActive())
	})

	t.Run("parse", func(t *testing.T) {
		s, err := booking.ParseStatus("DJ_ASSIGNED")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusDJAssigned, s)

		_, err = booking.ParseStatus("pending")
		require.Error(t, err)
	})
}
