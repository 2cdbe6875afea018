package api

import (
	"net/http"

	reqdto "dj-booking-engine/internal/handler/dto/request"
	resdto "dj-booking-engine/internal/handler/dto/response"
	"dj-booking-engine/internal/handler/httperr"
	"dj-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DJHandler struct {
	q queries.AvailabilityQueries
}

func NewDJHandler(q queries.AvailabilityQueries) *DJHandler {
	return &DJHandler{q: q}
}

// @Summary Check one DJ's availability
// @Tags djs
// @Produce json
// @Param id path string true "DJ ID"
// @Param start query string true "RFC 3339 start"
// @Param end query string true "RFC 3339 end"
// @Param exclude query string false "Booking ID to ignore"
// @Success 200 {object} resdto.AvailabilityResponse
// @Router /djs/{id}/availability [get]
func (h *DJHandler) Availability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "start and end must be RFC 3339 timestamps", nil)
		return
	}

	exclude, err := query.ExcludeID()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid exclude format", nil)
		return
	}

	result, err := h.q.IsDJAvailable(c.Request.Context(), id, query.Start, query.End, exclude)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailability(id, result))
}

// @Summary List DJs free for a window
// @Tags djs
// @Produce json
// @Param start query string true "RFC 3339 start"
// @Param end query string true "RFC 3339 end"
// @Success 200 {array} resdto.DJResponse
// @Router /djs/available [get]
func (h *DJHandler) Available(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "start and end must be RFC 3339 timestamps", nil)
		return
	}

	profiles, err := h.q.GetAvailableDJs(c.Request.Context(), query.Start, query.End)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	resp, err := resdto.FromProfiles(profiles)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
