package bootstrap

import (
	"dj-booking-engine/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	components.InfraModule,
	components.UseCaseModule,
	components.WorkerModule,
	components.HandlerModule,
)
