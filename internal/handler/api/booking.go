package api

import (
	"context"
	"net/http"

	"dj-booking-engine/internal/domain/booking"
	reqdto "dj-booking-engine/internal/handler/dto/request"
	resdto "dj-booking-engine/internal/handler/dto/response"
	"dj-booking-engine/internal/handler/httperr"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Request a DJ, or route the request to admin review when no DJ is given
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	b, err := h.cmds.CreateBooking(c.Request.Context(), req.ToParams())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBooking(b))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingDetailResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetBooking(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List recovery options of a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.RecoveryResponse
// @Router /bookings/{id}/recoveries [get]
func (h *BookingHandler) Recoveries(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	records, err := h.q.ListRecoveries(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRecords(records))
}

// @Summary DJ accepts a booking request
// @Tags bookings
// @Router /bookings/{id}/accept [post]
func (h *BookingHandler) Accept(c *gin.Context) {
	h.transition(c, h.cmds.AcceptBooking)
}

// @Summary Client confirms an accepted booking
// @Tags bookings
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	h.transition(c, h.cmds.ConfirmBooking)
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Param request body reqdto.CancelBookingRequest true "Cancellation"
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	actor, cause := cancelActor(req.Actor)
	b, err := h.cmds.CancelBooking(c.Request.Context(), id, commands.CancelBookingRequest{
		Reason: req.Reason,
		Actor:  actor,
		Cause:  cause,
	})
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary DJ rejects a booking request
// @Description Declines the request and returns the generated recovery options
// @Tags bookings
// @Accept json
// @Param request body reqdto.RejectBookingRequest false "Reason"
// @Success 200 {object} resdto.RejectBookingResponse
// @Router /bookings/{id}/reject [post]
func (h *BookingHandler) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RejectBookingRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	result, err := h.cmds.RejectBooking(c.Request.Context(), id, req.Reason)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRejectResult(result))
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (*booking.Booking, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := fn(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

func cancelActor(actor string) (string, booking.Cause) {
	switch actor {
	case "admin":
		return actor, booking.CauseAdmin
	case "dj":
		return actor, booking.CauseDJResponse
	default:
		return "client", booking.CauseClient
	}
}
