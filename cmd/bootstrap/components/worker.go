package components

import (
	"context"
	"log/slog"

	"dj-booking-engine/internal/domain/booking"
	"dj-booking-engine/internal/infra/scheduler"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/config"
	"dj-booking-engine/internal/usecase/commands"
	"dj-booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewTimeoutSweeper,
	),
	fx.Invoke(
		startSweeper,
		startRelay,
	),
)

func NewTimeoutSweeper(
	uow shared.UnitOfWork,
	generator *commands.RecoveryGenerator,
	locker shared.Locker,
	policy booking.DeadlinePolicy,
	cfg config.Config,
	clk clock.Clock,
	logger *slog.Logger,
) *commands.TimeoutSweeper {
	return commands.NewTimeoutSweeper(uow, generator, locker, policy, cfg.Sweeper.LeaseTTL, clk, logger)
}

func startSweeper(lc fx.Lifecycle, cfg config.Config, sweeper *commands.TimeoutSweeper, logger *slog.Logger) {
	if !cfg.Sweeper.Enabled {
		return
	}
	job := func(ctx context.Context) error {
		_, err := sweeper.SweepExpiredBookings(ctx)
		return err
	}
	appendScheduler(lc, scheduler.New("timeout-sweeper", cfg.Sweeper.Interval, job, logger))
}

func startRelay(lc fx.Lifecycle, cfg config.Config, uow shared.UnitOfWork, publisher shared.Publisher, clk clock.Clock, logger *slog.Logger) {
	if !cfg.Relay.Enabled || publisher == nil {
		return
	}
	relay := commands.NewNotificationRelay(uow, publisher, cfg.Relay.BatchSize, cfg.Relay.MaxAttempts, clk, logger)
	job := func(ctx context.Context) error {
		_, err := relay.RelayOnce(ctx)
		return err
	}
	appendScheduler(lc, scheduler.New("notification-relay", cfg.Relay.Interval, job, logger))
}

func appendScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start(ctx)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			defer cancel()
			return s.Stop(stopCtx)
		},
	})
}
