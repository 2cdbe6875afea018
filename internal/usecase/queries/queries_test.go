//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/dj"
	"dj-booking-engine/internal/domain/matching"
	"dj-booking-engine/internal/infra/memstore"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/queries"
	"dj-booking-engine/internal/usecase/shared"
	"dj-booking-engine/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return day.Add(time.Duration(hour) * time.Hour)
}

func seed(t *testing.T, uow shared.UnitOfWork, djs []*dj.Profile, bookings []*booking.Booking) {
	t.Helper()
	ctx := context.Background()
	for _, d := range djs {
		require.NoError(t, uow.Reads().DJs().Create(ctx, d))
	}
	for _, b := range bookings {
		require.NoError(t, uow.Reads().Bookings().Create(ctx, b))
	}
}

func profileIDs(ps []*dj.Profile) []uuid.UUID {
	out := make([]uuid.UUID, len(ps))
	for i, p := range ps {
		out[i] = p.ID()
	}
	return out
}

// Adding an active booking only ever removes availability, and only for overlapping windows.
func TestAvailabilityAfterNewBooking(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUnitOfWork(memstore.New())
	d := builder.NewDJBuilder().MustBuild()
	other := builder.NewDJBuilder().MustBuild()
	seed(t, uow, []*dj.Profile{d, other}, nil)
	q := queries.NewAvailabilityQueries(uow)

	windows := []struct {
		name     string
		start    time.Time
		end      time.Time
		overlaps bool
	}{
		{name: "before", start: at(12), end: at(16)},
		{name: "touching start", start: at(16), end: at(18)},
		{name: "inside", start: at(19), end: at(21), overlaps: true},
		{name: "straddling end", start: at(21), end: at(23), overlaps: true},
		{name: "touching end", start: at(22), end: at(24)},
		{name: "overnight across", start: at(17), end: at(1), overlaps: true},
	}

	before := make(map[string]bool, len(windows))
	for _, w := range windows {
		result, err := q.IsDJAvailable(ctx, d.ID(), w.start, w.end, nil)
		require.NoError(t, err)
		require.True(t, result.Available, w.name)
		before[w.name] = result.Available
	}

	added := builder.NewBookingBuilder().WithDJ(d.ID()).WithWindow(at(18), at(22)).WithStatus(booking.StatusAccepted).BuildReconstructed()
	seed(t, uow, nil, []*booking.Booking{added})

	for _, w := range windows {
		t.Run(w.name, func(t *testing.T) {
			result, err := q.IsDJAvailable(ctx, d.ID(), w.start, w.end, nil)
			require.NoError(t, err)
			assert.Equal(t, before[w.name] && !w.overlaps, result.Available)

			free, err := q.GetAvailableDJs(ctx, w.start, w.end)
			require.NoError(t, err)
			assert.Contains(t, profileIDs(free), other.ID())
			if w.overlaps {
				assert.NotContains(t, profileIDs(free), d.ID())
			} else {
				assert.Contains(t, profileIDs(free), d.ID())
			}
		})
	}
}

func TestIsDJAvailable(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUnitOfWork(memstore.New())
	d := builder.NewDJBuilder().MustBuild()
	confirmed := builder.NewBookingBuilder().WithDJ(d.ID()).WithWindow(at(10), at(14)).WithStatus(booking.StatusConfirmed).BuildReconstructed()
	overnight := builder.NewBookingBuilder().WithDJ(d.ID()).WithWindow(at(22), at(2)).BuildReconstructed()
	declined := builder.NewBookingBuilder().WithDJ(d.ID()).WithWindow(at(16), at(18)).WithStatus(booking.StatusDeclined).BuildReconstructed()
	seed(t, uow, []*dj.Profile{d}, []*booking.Booking{confirmed, overnight, declined})
	q := queries.NewAvailabilityQueries(uow)

	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		exclude   *uuid.UUID
		available bool
		conflicts []uuid.UUID
	}{
		{name: "overlap", start: at(13), end: at(15), conflicts: []uuid.UUID{confirmed.ID()}},
		{name: "touching end", start: at(14), end: at(16), available: true},
		{name: "touching start", start: at(8), end: at(10), available: true},
		{name: "declined does not block", start: at(16), end: at(18), available: true},
		{name: "overnight tail", start: at(25), end: at(27), conflicts: []uuid.UUID{overnight.ID()}},
		{name: "wrapping request", start: at(21), end: at(1), conflicts: []uuid.UUID{overnight.ID()}},
		{name: "excluded booking", start: at(13), end: at(15), exclude: ptrTo(confirmed.ID()), available: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := q.IsDJAvailable(ctx, d.ID(), tt.start, tt.end, tt.exclude)
			require.NoError(t, err)
			assert.Equal(t, tt.available, result.Available)
			got := make([]uuid.UUID, 0, len(result.Conflicts))
			for _, c := range result.Conflicts {
				got = append(got, c.ID())
			}
			want := tt.conflicts
			if want == nil {
				want = []uuid.UUID{}
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("conflicts mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("zero timestamp is an invalid window", func(t *testing.T) {
		_, err := q.IsDJAvailable(ctx, d.ID(), time.Time{}, at(2), nil)
		assert.True(t, errs.Is(err, queries.ErrInvalidWindow))
	})
}

func ptrTo(id uuid.UUID) *uuid.UUID {
	return &id
}

func TestGetAvailableDJs(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUnitOfWork(memstore.New())
	free := builder.NewDJBuilder().WithName("Alpha").MustBuild()
	busy := builder.NewDJBuilder().WithName("Bravo").MustBuild()
	inactive := builder.NewDJBuilder().WithName("Charlie").AsInactive().MustBuild()
	later := builder.NewDJBuilder().WithName("Delta").MustBuild()
	seed(t, uow, []*dj.Profile{free, busy, inactive, later}, []*booking.Booking{
		builder.NewBookingBuilder().WithDJ(busy.ID()).WithWindow(at(19), at(23)).WithStatus(booking.StatusAccepted).BuildReconstructed(),
		builder.NewBookingBuilder().WithDJ(later.ID()).WithWindow(at(24), at(26)).BuildReconstructed(),
	})

	out, err := queries.NewAvailabilityQueries(uow).GetAvailableDJs(ctx, at(20), at(24))
	require.NoError(t, err)
	if diff := cmp.Diff([]uuid.UUID{free.ID(), later.ID()}, profileIDs(out)); diff != "" {
		t.Errorf("available djs mismatch (-want +got):\n%s", diff)
	}
}

func TestAdminQueries(t *testing.T) {
	ctx := context.Background()
	now := builder.BaseTime
	uow := memstore.NewUnitOfWork(memstore.New())

	soon := builder.NewBookingBuilder().WithoutDJ().AsAdminReview().
		WithWindow(now.Add(36*time.Hour), now.Add(40*time.Hour)).BuildReconstructed()
	far := builder.NewBookingBuilder().WithoutDJ().AsAdminReview().
		WithWindow(now.Add(60*24*time.Hour), now.Add(60*24*time.Hour+4*time.Hour)).BuildReconstructed()
	pending := builder.NewBookingBuilder().BuildReconstructed()
	seed(t, uow, nil, []*booking.Booking{far, soon, pending})

	house := builder.NewDJBuilder().WithName("House").WithGenres("house", "disco").WithRating(4.5).MustBuild()
	techno := builder.NewDJBuilder().WithName("Techno").WithGenres("techno").WithRating(4.5).MustBuild()
	seed(t, uow, []*dj.Profile{house, techno}, nil)

	q := queries.NewAdminQueries(uow, clock.NewMockClock(now), matching.ScoringPolicy{})

	t.Run("queue holds only triage bookings, most urgent first", func(t *testing.T) {
		items, err := q.AdminQueue(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, soon.ID(), items[0].Booking.ID())
		assert.Equal(t, far.ID(), items[1].Booking.ID())
		assert.GreaterOrEqual(t, items[0].Priority.Score, items[1].Priority.Score)
	})

	t.Run("candidates are ranked by genre fit", func(t *testing.T) {
		list, err := q.CandidatesForBooking(ctx, soon.ID())
		require.NoError(t, err)
		require.Len(t, list.Candidates, 2)
		assert.Equal(t, house.ID(), list.Candidates[0].DJ.ID())
		if diff := cmp.Diff([]string{"house", "disco"}, list.Candidates[0].MatchedGenres); diff != "" {
			t.Errorf("matched genres mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		_, err := q.CandidatesForBooking(ctx, uuid.New())
		assert.True(t, errs.Is(err, queries.ErrBookingNotFound))
	})
}

func TestBookingQueries(t *testing.T) {
	ctx := context.Background()
	uow := memstore.NewUnitOfWork(memstore.New())
	b := builder.NewBookingBuilder().BuildReconstructed()
	seed(t, uow, nil, []*booking.Booking{b})
	q := queries.NewBookingQueries(uow)

	view, err := q.GetBooking(ctx, b.ID())
	require.NoError(t, err)
	assert.Equal(t, b.ID(), view.Booking.ID())
	assert.Empty(t, view.Recoveries)

	_, err = q.ListRecoveries(ctx, uuid.New())
	assert.True(t, errs.Is(err, queries.ErrBookingNotFound))
}
