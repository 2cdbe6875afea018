//go:build unit

package response_test

import (
	"testing"
	"time"

	"dj-booking-engine/internal/domain/matching"
	resdto "dj-booking-engine/internal/handler/dto/response"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/queries"
	"dj-booking-engine/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromProfile(t *testing.T) {
	last := builder.BaseTime.Add(-72 * time.Hour)
	p := builder.NewDJBuilder().
		WithName("Nova").
		WithGenres("house", "disco").
		WithRating(4.5).
		WithTotalBookings(12).
		WithLastBookedAt(last).
		MustBuild()

	resp, err := resdto.FromProfile(p)
	require.NoError(t, err)

	want := &resdto.DJResponse{
		ID:              p.ID(),
		StageName:       "Nova",
		Genres:          p.Genres(),
		HourlyRateCents: p.HourlyRate().Cents(),
		Active:          true,
		Rating:          4.5,
		TotalBookings:   12,
		LastBookedAt:    &last,
	}
	if diff := cmp.Diff(want, resp); diff != "" {
		t.Errorf("dj response mismatch (-want +got):\n%s", diff)
	}
}

func TestFromCandidateList(t *testing.T) {
	b := builder.NewBookingBuilder().BuildReconstructed()
	p := builder.NewDJBuilder().WithName("Nova").MustBuild()
	list := &queries.CandidateList{
		Booking: b,
		Candidates: []matching.ScoredCandidate{
			{DJ: p, Score: 42, IsPreferred: true},
		},
	}

	resp, err := resdto.FromCandidateList(list)
	require.NoError(t, err)

	require.Len(t, resp.Candidates, 1)
	c := resp.Candidates[0]
	assert.Equal(t, 42, c.Score)
	assert.True(t, c.IsPreferred)
	assert.Equal(t, p.ID(), c.DJ.ID)
	assert.Equal(t, "Nova", c.DJ.StageName)
	assert.NotNil(t, c.MatchedGenres)
	assert.Equal(t, b.ID(), resp.Booking.ID)
}

func TestFromSweepResult(t *testing.T) {
	resp, err := resdto.FromSweepResult(commands.SweepResult{LeaseAcquired: true, Scanned: 3, Expired: 2, Skipped: 1})
	require.NoError(t, err)
	assert.Equal(t, &resdto.SweepResponse{LeaseAcquired: true, Scanned: 3, Expired: 2, Skipped: 1}, resp)
}
