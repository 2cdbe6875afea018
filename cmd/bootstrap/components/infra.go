package components

import (
	"context"
	"log/slog"

	"dj-booking-engine/internal/infra/lock"
	"dj-booking-engine/internal/infra/mq"
	"dj-booking-engine/internal/pkg/clock"
	"dj-booking-engine/internal/pkg/config"
	"dj-booking-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		clock.NewRealClock,
		NewLocker,
		NewPublisher,
	),
)

// NewLocker uses Redis when REDIS_ADDR is set, so several replicas share one sweep lease.
func NewLocker(lc fx.Lifecycle, cfg config.Config, clk clock.Clock, logger *slog.Logger) (shared.Locker, error) {
	if cfg.Redis.Addr == "" {
		logger.Info("REDIS_ADDR not set, using process-local sweep lock")
		return lock.NewLocalLocker(clk), nil
	}

	client, err := lock.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("using redis sweep lock", "addr", cfg.Redis.Addr)
	return lock.NewRedisLocker(client), nil
}

// NewPublisher returns nil when the relay is disabled. Jobs then stay in the outbox.
func NewPublisher(lc fx.Lifecycle, cfg config.Config) (shared.Publisher, error) {
	if !cfg.Relay.Enabled {
		return nil, nil
	}

	p, err := mq.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p, nil
}
