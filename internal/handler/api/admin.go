package api

import (
	"context"
	"net/http"

	reqdto "dj-booking-engine/internal/handler/dto/request"
	resdto "dj-booking-engine/internal/handler/dto/response"
	"dj-booking-engine/internal/handler/httperr"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type Sweeper interface {
	SweepExpiredBookings(ctx context.Context) (commands.SweepResult, error)
}

type AdminHandler struct {
	cmds    commands.BookingCommands
	q       queries.AdminQueries
	sweeper Sweeper
}

func NewAdminHandler(cmds commands.BookingCommands, q queries.AdminQueries, sweeper Sweeper) *AdminHandler {
	return &AdminHandler{cmds: cmds, q: q, sweeper: sweeper}
}

// @Summary Admin triage queue
// @Description Bookings awaiting review, most urgent first
// @Tags admin
// @Produce json
// @Success 200 {array} resdto.QueueItemResponse
// @Router /admin/queue [get]
func (h *AdminHandler) Queue(c *gin.Context) {
	items, err := h.q.AdminQueue(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromQueue(items)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Ranked DJ candidates for a booking
// @Tags admin
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.CandidateListResponse
// @Router /admin/bookings/{id}/candidates [get]
func (h *AdminHandler) Candidates(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	list, err := h.q.CandidatesForBooking(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromCandidateList(list)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Start reviewing a booking
// @Tags admin
// @Router /admin/bookings/{id}/review [post]
func (h *AdminHandler) Review(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.cmds.StartReview(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Return a booking to the queue
// @Tags admin
// @Router /admin/bookings/{id}/release [post]
func (h *AdminHandler) Release(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.cmds.ReleaseReview(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Assign a DJ to a reviewed booking
// @Tags admin
// @Accept json
// @Param request body reqdto.AssignDJRequest true "DJ"
// @Router /admin/bookings/{id}/assign [post]
func (h *AdminHandler) Assign(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.AssignDJRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}
	b, err := h.cmds.AssignDJ(c.Request.Context(), id, req.DJID)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Run the response-deadline sweep now
// @Tags admin
// @Success 200 {object} resdto.SweepResponse
// @Router /admin/sweeps [post]
func (h *AdminHandler) Sweep(c *gin.Context) {
	result, err := h.sweeper.SweepExpiredBookings(c.Request.Context())
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromSweepResult(result)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
