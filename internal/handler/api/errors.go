package api

import (
	"errors"
	"net/http"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/handler/httperr"
	"dj-booking-engine/internal/pkg/errs"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type conflictDetail struct {
	DJID      uuid.UUID   `json:"djId"`
	Conflicts []uuid.UUID `json:"conflicts,omitempty"`
}

// abortWithUseCaseError maps use-case sentinels onto HTTP statuses.
func abortWithUseCaseError(c *gin.Context, err error) {
	var violation *commands.WindowViolation
	var conflict *commands.ConflictError

	switch {
	case errors.As(err, &violation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, violation.Reason, nil)
	case errors.As(err, &conflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "DJ is not available for this time slot",
			conflictDetail{DJID: conflict.DJID, Conflicts: conflict.Conflicts})
	case errs.Is(err, commands.ErrBookingConflict), errs.Is(err, commands.ErrExtensionConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Time slot is no longer available", nil)
	case errs.Is(err, queries.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errs.Is(err, queries.ErrDJNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "DJ not found", nil)
	case errs.Is(err, commands.ErrRecoveryNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Recovery option not found", nil)
	case errs.Is(err, booking.ErrInvalidTransition), errs.Is(err, commands.ErrBookingNotRejected):
		httperr.AbortWithError(c, http.StatusConflict, err, "Booking cannot change to the requested status", nil)
	case errs.Is(err, commands.ErrDJInactive):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "DJ is not accepting bookings", nil)
	case errs.Is(err, commands.ErrRecoveryFailed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Recovery option could not be applied", nil)
	case errs.Is(err, queries.ErrInvalidWindow), errs.Is(err, commands.ErrInvalidBooking):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking request", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name+" format", nil)
		return uuid.Nil, false
	}
	return id, true
}
