//go:build e2e

package booking_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"dj-booking-engine/internal/domain/booking"
	reqdto "dj-booking-engine/internal/handler/dto/request"
	resdto "dj-booking-engine/internal/handler/dto/response"
	"dj-booking-engine/internal/infra"
	"dj-booking-engine/internal/infra/repository"
	"dj-booking-engine/internal/usecase/shared"
	"dj-booking-engine/tests/common/builder"
	"dj-booking-engine/tests/common/dbtest"
	"dj-booking-engine/tests/common/httptest"
	"dj-booking-engine/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL     = "/api/bookings"
	bookingURL      = "/api/bookings/%s"
	acceptURL       = "/api/bookings/%s/accept"
	confirmURL      = "/api/bookings/%s/confirm"
	cancelURL       = "/api/bookings/%s/cancel"
	rejectURL       = "/api/bookings/%s/reject"
	recoveryURL     = "/api/recoveries/%s/accept"
	availabilityURL = "/api/djs/%s/availability?start=%s&end=%s"
	queueURL        = "/api/admin/queue"
	assignURL       = "/api/admin/bookings/%s/assign"
	reviewURL       = "/api/admin/bookings/%s/review"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// eventStart is a whole hour ten days out, so it is always in the future and never urgent.
func eventStart() time.Time {
	return time.Now().UTC().Truncate(24*time.Hour).Add(10*24*time.Hour + 20*time.Hour)
}

func (s *BookingSuite) createBooking(req reqdto.CreateBookingRequest) *resdto.BookingResponse {
	t := s.T()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, req.ClientID.String())
	var resp resdto.BookingResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &resp)
	return &resp
}

// =============================================================================
// TestCreateBooking - booking creation and slot exclusivity
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booking with a DJ starts PENDING", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()

		req := builder.NewBookingBuilder().
			WithDJ(djID).
			WithWindow(start, start.Add(4*time.Hour)).
			BuildCreateRequestDTO()
		resp := s.createBooking(req)

		require.Equal(t, booking.StatusPending.String(), resp.Status)
		require.Equal(t, djID, *resp.DJID)
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, shared.TopicBookingCreated))
	})

	s.Run("Normal case: overnight window is stored and reported as overnight", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart().Add(2 * time.Hour) // 22:00
		end := time.Date(start.Year(), start.Month(), start.Day(), 4, 0, 0, 0, time.UTC)

		req := builder.NewBookingBuilder().WithDJ(djID).WithWindow(start, end).BuildCreateRequestDTO()
		resp := s.createBooking(req)

		require.True(t, resp.Overnight)
		require.Equal(t, start.Format(time.DateOnly), resp.EventDate)
	})

	s.Run("Error case: overlapping window for the same DJ is a 409", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()

		first := builder.NewBookingBuilder().WithDJ(djID).WithWindow(start, start.Add(4*time.Hour)).BuildCreateRequestDTO()
		s.createBooking(first)

		second := builder.NewBookingBuilder().WithDJ(djID).
			WithWindow(start.Add(2*time.Hour), start.Add(6*time.Hour)).
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, second, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "DJ is not available")
	})

	s.Run("Error case: the database refuses overlapping active rows written around the use case", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()
		dbtest.CreateTestBooking(t, s.DB, builder.NewBookingBuilder().WithDJ(djID).WithWindow(start, start.Add(4*time.Hour)))

		overlapping := builder.NewBookingBuilder().WithDJ(djID).
			WithWindow(start.Add(time.Hour), start.Add(3*time.Hour)).
			WithStatus(booking.StatusAccepted).
			BuildReconstructed()
		err := repository.NewBookingRepository(s.DB).Create(context.Background(), overlapping)
		require.Error(t, err)
		require.True(t, infra.IsConflict(err), "exclusion violation maps to a conflict: %v", err)

		declined := builder.NewBookingBuilder().WithDJ(djID).
			WithWindow(start.Add(time.Hour), start.Add(3*time.Hour)).
			WithStatus(booking.StatusDeclined).
			BuildReconstructed()
		require.NoError(t, repository.NewBookingRepository(s.DB).Create(context.Background(), declined),
			"inactive rows do not reserve the slot")
	})

	s.Run("Normal case: back-to-back windows do not conflict", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()

		s.createBooking(builder.NewBookingBuilder().WithDJ(djID).WithWindow(start, start.Add(3*time.Hour)).BuildCreateRequestDTO())
		s.createBooking(builder.NewBookingBuilder().WithDJ(djID).WithWindow(start.Add(3*time.Hour), start.Add(5*time.Hour)).BuildCreateRequestDTO())
	})

	s.Run("Error case: window in the past is a 422", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := time.Now().UTC().Add(-48 * time.Hour)

		req := builder.NewBookingBuilder().WithDJ(djID).WithWindow(start, start.Add(3*time.Hour)).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, req, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "future")
	})
}

// =============================================================================
// TestLifecycle - accept, confirm, cancel
// =============================================================================

func (s *BookingSuite) TestLifecycle() {
	s.Run("Normal case: PENDING -> ACCEPTED -> CONFIRMED -> CANCELLED", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()
		created := s.createBooking(builder.NewBookingBuilder().WithDJ(djID).WithWindow(start, start.Add(4*time.Hour)).BuildCreateRequestDTO())
		id := created.ID.String()

		var resp resdto.BookingResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, id), nil, djID.String())
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		require.Equal(t, booking.StatusAccepted.String(), resp.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, id), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		require.Equal(t, booking.StatusConfirmed.String(), resp.Status)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, id),
			reqdto.CancelBookingRequest{Reason: "venue closed", Actor: "client"}, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		require.Equal(t, booking.StatusCancelled.String(), resp.Status)
		require.NotNil(t, resp.Cancellation)
		require.Equal(t, "venue closed", resp.Cancellation.Reason)
	})

	s.Run("Error case: confirming a PENDING booking is a 409", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()
		created := s.createBooking(builder.NewBookingBuilder().WithDJ(djID).WithWindow(start, start.Add(4*time.Hour)).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, created.ID), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "cannot change")
	})

	s.Run("Normal case: cancelled booking frees the slot", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()
		end := start.Add(4 * time.Hour)
		created := s.createBooking(builder.NewBookingBuilder().WithDJ(djID).WithWindow(start, end).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID),
			reqdto.CancelBookingRequest{Reason: "changed plans"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, djID, start.Format(time.RFC3339), end.Format(time.RFC3339)), nil, "")
		var avail resdto.AvailabilityResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &avail)
		require.True(t, avail.Available)
		require.Empty(t, avail.Conflicts)
	})

	s.Run("Error case: unknown booking is a 404", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, uuid.New()), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "Booking not found")
	})
}

// =============================================================================
// TestRejectAndRecover - rejection generates recovery options that can be applied
// =============================================================================

func (s *BookingSuite) TestRejectAndRecover() {
	s.Run("Normal case: rejection suggests a free DJ and accepting it rebooks the client", func() {
		t := s.T()
		rejecting := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder().WithName("DJ Busy"))
		replacement := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder().WithName("DJ Free").WithGenres("house", "disco"))
		start := eventStart()

		created := s.createBooking(builder.NewBookingBuilder().
			WithDJ(rejecting).
			WithGenres("disco").
			WithWindow(start, start.Add(4*time.Hour)).
			BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rejectURL, created.ID),
			reqdto.RejectBookingRequest{Reason: "double booked"}, rejecting.String())
		var rejected resdto.RejectBookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rejected)

		require.Equal(t, booking.StatusDeclined.String(), rejected.Booking.Status)
		require.Len(t, rejected.Recovery, 1)
		option := rejected.Recovery[0]
		require.Equal(t, "NEW_DJ", option.Type)
		require.Equal(t, replacement, *option.SuggestedDJID)
		if diff := cmp.Diff([]string{"disco"}, option.MatchedGenres); diff != "" {
			t.Errorf("matched genres mismatch (-want +got):\n%s", diff)
		}

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(recoveryURL, option.ID),
			reqdto.RecoveryResponseRequest{Response: "sounds good"}, created.ClientID.String())
		var applied resdto.RecoveryActionResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &applied)
		require.True(t, applied.Applied)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(recoveryURL, option.ID), nil, "")
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &applied)
		require.False(t, applied.Applied, "second accept is a no-op")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, created.ID), nil, "")
		var detail resdto.BookingDetailResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &detail)
		require.Len(t, detail.Recoveries, 1)
		require.Equal(t, "ACCEPTED", detail.Recoveries[0].Status)
	})

	s.Run("Normal case: no free DJ falls back to a refund option", func() {
		t := s.T()
		only := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()
		created := s.createBooking(builder.NewBookingBuilder().WithDJ(only).WithWindow(start, start.Add(4*time.Hour)).BuildCreateRequestDTO())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(rejectURL, created.ID), nil, only.String())
		var rejected resdto.RejectBookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &rejected)
		require.Len(t, rejected.Recovery, 1)
		require.Equal(t, "REFUND", rejected.Recovery[0].Type)
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, shared.TopicRecoverySuggested))
	})
}

// =============================================================================
// TestAdminReview - triage queue and manual assignment
// =============================================================================

func (s *BookingSuite) TestAdminReview() {
	s.Run("Normal case: booking without DJ is queued, reviewed and assigned", func() {
		t := s.T()
		djID := dbtest.CreateTestDJ(t, s.DB, builder.NewDJBuilder())
		start := eventStart()
		created := s.createBooking(builder.NewBookingBuilder().WithoutDJ().WithWindow(start, start.Add(4*time.Hour)).BuildCreateRequestDTO())
		require.Equal(t, booking.StatusPendingAdminReview.String(), created.Status)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, queueURL, nil, "")
		var queue []resdto.QueueItemResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &queue)
		require.Len(t, queue, 1)
		require.Equal(t, created.ID, queue[0].Booking.ID)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reviewURL, created.ID), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(assignURL, created.ID),
			reqdto.AssignDJRequest{DJID: djID}, "")
		var assigned resdto.BookingResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &assigned)
		require.Equal(t, booking.StatusDJAssigned.String(), assigned.Status)
		require.Equal(t, djID, *assigned.DJID)
	})
}
