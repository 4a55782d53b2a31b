package commands

import (
	"context"
	"log/slog"

	"medoffice-booking/internal/usecase/shared"
)

type MaintenanceCommands interface {
	PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error)
}

type maintenanceCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewMaintenanceCommands(uow shared.UnitOfWork) MaintenanceCommands {
	return &maintenanceCommandsImpl{uow: uow}
}

func (m *maintenanceCommandsImpl) PurgeExpiredIdempotencyKeys(ctx context.Context) (int64, error) {
	var purged int64
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, tx.DB())
		if err != nil {
			return err
		}
		purged = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	if purged > 0 {
		slog.Info("purged expired idempotency keys", "count", purged)
	}
	return purged, nil
}
