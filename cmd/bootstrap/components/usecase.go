package components

import (
	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	booking.NewValidator,
	commands.NewRecoveryGenerator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewRecoveryUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewAdminQueries,
		queries.NewBookingQueries,
	),
)
