package components

import (
	"dj-booking-engine/internal/handler"
	"dj-booking-engine/internal/handler/api"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewRecoveryHandler,
		api.NewDJHandler,
		NewAdminHandler,
		NewHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAdminHandler(cmds commands.BookingCommands, q queries.AdminQueries, sweeper *commands.TimeoutSweeper) *api.AdminHandler {
	return api.NewAdminHandler(cmds, q, sweeper)
}

func NewHandlers(
	booking *api.BookingHandler,
	recovery *api.RecoveryHandler,
	dj *api.DJHandler,
	admin *api.AdminHandler,
) handler.Handlers {
	return handler.Handlers{
		Booking:  booking,
		Recovery: recovery,
		DJ:       dj,
		Admin:    admin,
	}
}
