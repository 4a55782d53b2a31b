package bootstrap

import (
	"context"
	"log/slog"

	"medoffice-booking/internal/infra/cache"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewRedisClient,
		NewAvailabilityCache,
		NewDraftStore,
	),
)

// NewRedisClient returns nil when no address is configured.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		slog.Info("redis disabled: availability cache off, drafts kept in memory")
		return nil, nil
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func NewAvailabilityCache(client *redis.Client, cfg config.Config) shared.AvailabilityCache {
	return cache.NewAvailabilityCache(client, cfg.Redis.AvailabilityTTL)
}

func NewDraftStore(client *redis.Client, clk clock.Clock, cfg config.Config) shared.DraftStore {
	if client == nil {
		return cache.NewMemoryDraftStore(clk, cfg.Redis.DraftTTL)
	}
	return cache.NewRedisDraftStore(client, cfg.Redis.DraftTTL)
}
