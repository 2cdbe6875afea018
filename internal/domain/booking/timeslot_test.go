//go:build unit

package booking_test

import (
	"testing"
	"time"

	"dj-booking-engine/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.March, day, hour, minute, 0, 0, time.UTC)
}

func mustSlot(t *testing.T, start, end time.Time) booking.TimeSlot {
	t.Helper()
	s, err := booking.NewTimeSlot(start, end)
	require.NoError(t, err)
	return s
}

func TestTimeSlot(t *testing.T) {
	t.Run("overnight window wraps to the next day", func(t *testing.T) {
		slot := mustSlot(t, at(10, 23, 0), at(10, 2, 0))

		assert.Equal(t, at(11, 2, 0), slot.End())
		assert.Equal(t, 3*time.Hour, slot.Duration())
	})

	t.Run("invalid windows", func(t *testing.T) {
		_, err := booking.NewTimeSlot(time.Time{}, at(10, 2, 0))
		require.ErrorIs(t, err, booking.ErrZeroTimestamp)

		_, err = booking.NewTimeSlot(at(10, 20, 0), at(10, 20, 0))
		require.ErrorIs(t, err, booking.ErrEmptyTimeWindow)
	})

	t.Run("tstzrange literal is half open", func(t *testing.T) {
		slot := mustSlot(t, at(10, 20, 0), at(10, 22, 0))
		assert.Equal(t, "[2026-03-10T20:00:00Z,2026-03-10T22:00:00Z)", slot.ToTstzrange())
	})
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b booking.TimeSlot
		want bool
	}{
		{
			name: "partial overlap",
			a:    mustSlot(t, at(10, 20, 0), at(10, 23, 0)),
			b:    mustSlot(t, at(10, 22, 0), at(11, 1, 0)),
			want: true,
		},
		{
			name: "containment",
			a:    mustSlot(t, at(10, 18, 0), at(11, 2, 0)),
			b:    mustSlot(t, at(10, 20, 0), at(10, 21, 0)),
			want: true,
		},
		{
			name: "touching endpoints",
			a:    mustSlot(t, at(10, 20, 0), at(10, 22, 0)),
			b:    mustSlot(t, at(10, 22, 0), at(10, 23, 0)),
			want: false,
		},
		{
			name: "disjoint",
			a:    mustSlot(t, at(10, 12, 0), at(10, 14, 0)),
			b:    mustSlot(t, at(10, 20, 0), at(10, 23, 0)),
			want: false,
		},
		{
			name: "overnight against early morning",
			a:    mustSlot(t, at(10, 23, 0), at(10, 2, 0)),
			b:    mustSlot(t, at(11, 1, 0), at(11, 3, 0)),
			want: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, booking.Overlaps(c.a, c.b))
			assert.Equal(t, c.want, booking.Overlaps(c.b, c.a), "overlap must be symmetric")
		})
	}

	t.Run("a non-empty slot overlaps itself", func(t *testing.T) {
		s := mustSlot(t, at(10, 20, 0), at(10, 21, 0))
		assert.True(t, s.Overlaps(s))
	})
}

func TestMoney(t *testing.T) {
	m := booking.NewMoney(150_050)
	assert.Equal(t, "1500.50", m.String())
	assert.Equal(t, int64(150_050), m.Cents())
	assert.Equal(t, "0.05", booking.NewMoney(5).String())
}
