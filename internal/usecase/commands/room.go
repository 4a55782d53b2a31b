package commands

import (
	"context"
	"log/slog"

	"medoffice-booking/internal/domain/user"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/shared"
)

var ErrRoomNameTaken = errs.New("room name already exists")

type RoomCommands interface {
	Create(ctx context.Context, req reqdto.CreateRoomRequest, actorRole user.Role) (int, error)
}

type roomCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRoomCommands(uow shared.UnitOfWork, clk clock.Clock) RoomCommands {
	return &roomCommandsImpl{
		uow:   uow,
		clock: clk,
	}
}

func (r *roomCommandsImpl) Create(ctx context.Context, req reqdto.CreateRoomRequest, actorRole user.Role) (int, error) {
	if actorRole != user.RoleAdmin {
		return 0, errs.ErrUnauthorized
	}

	rm, err := req.ToDomain(r.clock.Now())
	if err != nil {
		return 0, errs.Mark(err, errs.ErrValidation)
	}

	var roomID int
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Rooms().Create(ctx, tx.DB(), rm)
		if createErr != nil {
			return createErr
		}
		roomID = id
		return nil
	})
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return 0, errs.Mark(ErrRoomNameTaken, errs.ErrConflict)
		}
		slog.Error("failed to create room", "name", rm.Name(), "error", err.Error())
		return 0, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	slog.Info("room created", "room_id", roomID, "name", rm.Name())
	return roomID, nil
}
