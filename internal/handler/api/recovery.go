package api

import (
	"context"
	"net/http"

	reqdto "dj-booking-engine/internal/handler/dto/request"
	resdto "dj-booking-engine/internal/handler/dto/response"
	"dj-booking-engine/internal/handler/httperr"
	"dj-booking-engine/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RecoveryHandler struct {
	cmds commands.RecoveryCommands
}

func NewRecoveryHandler(cmds commands.RecoveryCommands) *RecoveryHandler {
	return &RecoveryHandler{cmds: cmds}
}

// @Summary Accept a recovery option
// @Description Applies the option and rejects its alternatives. applied=false when the option is gone or already rejected.
// @Tags recoveries
// @Accept json
// @Param id path string true "Recovery ID"
// @Success 200 {object} resdto.RecoveryActionResponse
// @Failure 409 {object} httperr.Response
// @Router /recoveries/{id}/accept [post]
func (h *RecoveryHandler) Accept(c *gin.Context) {
	h.respond(c, h.cmds.AcceptRecovery)
}

// @Summary Decline all recovery options of a booking
// @Tags recoveries
// @Param id path string true "Recovery ID"
// @Success 200 {object} resdto.RecoveryActionResponse
// @Router /recoveries/{id}/decline [post]
func (h *RecoveryHandler) Decline(c *gin.Context) {
	h.respond(c, h.cmds.DeclineRecovery)
}

func (h *RecoveryHandler) respond(c *gin.Context, fn func(ctx context.Context, id uuid.UUID, response string) (bool, error)) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req reqdto.RecoveryResponseRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	applied, err := fn(c.Request.Context(), id, req.Response)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.RecoveryActionResponse{Applied: applied})
}
