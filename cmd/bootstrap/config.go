package bootstrap

import (
	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/domain/matching"
	"dj-booking-engine/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewWindowPolicy,
		NewDeadlinePolicy,
		NewScoringPolicy,
	),
)

func NewWindowPolicy(cfg config.Config) booking.WindowPolicy {
	return booking.WindowPolicy{
		Horizon:     cfg.Policy.Horizon,
		MinDuration: cfg.Policy.MinDuration,
		MaxDuration: cfg.Policy.MaxDuration,
	}
}

func NewDeadlinePolicy(cfg config.Config) booking.DeadlinePolicy {
	return booking.DeadlinePolicy{
		UrgentWindowDays: cfg.Policy.UrgentWindowDays,
		UrgentResponse:   cfg.Policy.UrgentResponseWindow,
		StandardResponse: cfg.Policy.StandardResponseWindow,
	}
}

func NewScoringPolicy(cfg config.Config) matching.ScoringPolicy {
	return matching.ScoringPolicy{PinPreferred: cfg.Policy.PinPreferredDJ}
}
