package lock

import (
	"context"
	"time"

	"dj-booking-engine/internal/pkg/config"
	"dj-booking-engine/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects and pings with a short timeout so a bad address fails at startup.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrapf(err, "ping redis at %s", cfg.Addr)
	}
	return client, nil
}
