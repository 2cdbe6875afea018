//go:build unit

package recovery_test

import (
	"testing"
	"time"

	"dj-booking-engine/internal/domain/recovery"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)

func TestSuggestionValidate(t *testing.T) {
	djID := uuid.New()

	cases := []struct {
		name  string
		s     recovery.Suggestion
		errIs error
	}{
		{name: "extend with DJ", s: recovery.Suggestion{Type: recovery.TypeExtendDJ, SuggestedDJID: &djID}},
		{name: "new DJ with DJ", s: recovery.Suggestion{Type: recovery.TypeNewDJ, SuggestedDJID: &djID}},
		{name: "refund without DJ", s: recovery.Suggestion{Type: recovery.TypeRefund}},
		{name: "extend without DJ", s: recovery.Suggestion{Type: recovery.TypeExtendDJ}, errIs: recovery.ErrMissingDJ},
		{name: "new DJ with nil id", s: recovery.Suggestion{Type: recovery.TypeNewDJ, SuggestedDJID: &uuid.Nil}, errIs: recovery.ErrMissingDJ},
		{name: "refund with DJ", s: recovery.Suggestion{Type: recovery.TypeRefund, SuggestedDJID: &djID}, errIs: recovery.ErrUnexpectedDJRef},
		{name: "unknown type", s: recovery.Suggestion{Type: "SWAP"}, errIs: recovery.ErrUnknownType},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.s.Validate()
			if c.errIs == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}

func TestRecord(t *testing.T) {
	bookingID := uuid.New()

	t.Run("new records start pending", func(t *testing.T) {
		r, err := recovery.NewRecord(bookingID, recovery.Suggestion{Type: recovery.TypeRefund, Message: "refund"}, now)
		require.NoError(t, err)

		assert.True(t, r.IsPending())
		assert.Equal(t, bookingID, r.BookingID())
		assert.Nil(t, r.RespondedAt())
	})

	t.Run("missing booking", func(t *testing.T) {
		_, err := recovery.NewRecord(uuid.Nil, recovery.Suggestion{Type: recovery.TypeRefund}, now)
		require.ErrorIs(t, err, recovery.ErrMissingBooking)
	})

	t.Run("a record answers once", func(t *testing.T) {
		r, err := recovery.NewRecord(bookingID, recovery.Suggestion{Type: recovery.TypeRefund}, now)
		require.NoError(t, err)

		require.NoError(t, r.Accept("  yes please ", now.Add(time.Minute)))
		assert.Equal(t, recovery.StatusAccepted, r.Status())
		require.NotNil(t, r.ClientResponse())
		assert.Equal(t, "yes please", *r.ClientResponse())
		assert.Equal(t, now.Add(time.Minute), *r.RespondedAt())

		require.ErrorIs(t, r.Reject("", now), recovery.ErrRecordClosed)
		assert.Equal(t, recovery.StatusAccepted, r.Status())
	})

	t.Run("parse type", func(t *testing.T) {
		typ, err := recovery.ParseType("NEW_DJ")
		require.NoError(t, err)
		assert.Equal(t, recovery.TypeNewDJ, typ)

		_, err = recovery.ParseType("new_dj")
		require.ErrorIs(t, err, recovery.ErrUnknownType)
	})
}
