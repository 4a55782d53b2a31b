package repository

import (
	"context"

	"medoffice-booking/internal/domain/room"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
)

type RoomWriteQueries interface {
	CreateRoom(ctx context.Context, db psqlbuilder.DBTX, arg dbq.CreateRoomParams) (int32, error)
}

type RoomRepository struct {
	queries RoomWriteQueries
}

func NewRoomRepository(queries RoomWriteQueries) *RoomRepository {
	return &RoomRepository{queries: queries}
}

func (r *RoomRepository) Create(ctx context.Context, tx psqlbuilder.DBTX, rm *room.Room) (int, error) {
	params := dbq.CreateRoomParams{
		Name:        rm.Name(),
		Description: rm.Description(),
		PricingPlan: rm.PricingPlan(),
		IsAvailable: rm.IsAvailable(),
		CreatedAt:   rm.CreatedAt(),
	}

	id, err := r.queries.CreateRoom(ctx, tx, params)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to create room", err)
	}
	return int(id), nil
}
