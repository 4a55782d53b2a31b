package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"medoffice-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

const janitorInterval = time.Hour

var JanitorModule = fx.Module("janitor",
	fx.Invoke(StartJanitor),
)

// StartJanitor purges expired idempotency keys on a fixed interval until
// the app stops.
func StartJanitor(lc fx.Lifecycle, maintenance commands.MaintenanceCommands) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(janitorInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if _, err := maintenance.PurgeExpiredIdempotencyKeys(ctx); err != nil {
							slog.Warn("idempotency key purge failed", "error", err.Error())
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
