package bootstrap

import (
	"context"

	"medoffice-booking/internal/infra/db"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
)

// tables the booking writer and auth need before the server may accept traffic
var requiredTables = []string{"users", "rooms", "bookings", "idempotency_keys"}

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return requireSchema(ctx, pool)
		},
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return pool, nil
}

// requireSchema fails startup when migrations have not been applied, rather
// than letting the first checkout hit a missing relation.
func requireSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range requiredTables {
		var exists bool
		if err := pool.QueryRow(ctx, "SELECT to_regclass('public.' || $1) IS NOT NULL", table).Scan(&exists); err != nil {
			return errs.Wrapf(err, "check table %s", table)
		}
		if !exists {
			return errs.Newf("table %s is missing; run cmd/migrate first", table)
		}
	}
	return nil
}
