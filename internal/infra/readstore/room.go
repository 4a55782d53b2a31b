package readstore

import (
	"context"

	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
	"medoffice-booking/internal/usecase/queries"
)

type RoomReadQueries interface {
	ListRooms(ctx context.Context, db psqlbuilder.DBTX, onlyAvailable bool) ([]dbq.Room, error)
	FindRoomsByIDs(ctx context.Context, db psqlbuilder.DBTX, ids []int32) ([]dbq.Room, error)
	FindRoomByID(ctx context.Context, db psqlbuilder.DBTX, id int32) (dbq.Room, error)
}

type RoomReadStore struct {
	queries RoomReadQueries
	db      psqlbuilder.DBTX
}

func NewRoomReadStore(queries RoomReadQueries, db psqlbuilder.DBTX) *RoomReadStore {
	return &RoomReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *RoomReadStore) List(ctx context.Context, onlyAvailable bool) ([]*queries.RoomView, error) {
	rows, err := r.queries.ListRooms(ctx, r.db, onlyAvailable)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}

	views := make([]*queries.RoomView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toRoomView(row))
	}
	return views, nil
}

func (r *RoomReadStore) FindByID(ctx context.Context, id int) (*queries.RoomView, error) {
	row, err := r.queries.FindRoomByID(ctx, r.db, int32(id)) // #nosec G115
	if err != nil {
		return nil, infra.WrapRepoErr("room not found", err)
	}
	return toRoomView(row), nil
}

func (r *RoomReadStore) FindByIDs(ctx context.Context, ids []int) ([]*queries.RoomView, error) {
	params := make([]int32, 0, len(ids))
	for _, id := range ids {
		params = append(params, int32(id)) // #nosec G115
	}

	rows, err := r.queries.FindRoomsByIDs(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find rooms", err)
	}

	views := make([]*queries.RoomView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toRoomView(row))
	}
	return views, nil
}

func toRoomView(row dbq.Room) *queries.RoomView {
	return &queries.RoomView{
		ID:          int(row.ID),
		Name:        row.Name,
		Description: row.Description,
		PricingPlan: row.PricingPlan,
		IsAvailable: row.IsAvailable,
		CreatedAt:   row.CreatedAt,
	}
}
