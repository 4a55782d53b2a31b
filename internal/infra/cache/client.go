package cache

import (
	"context"
	"time"

	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a nil client when no address is configured.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to ping redis")
	}

	return client, nil
}
