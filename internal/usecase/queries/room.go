package queries

import (
	"context"

	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/errs"
)

type RoomReadStore interface {
	List(ctx context.Context, onlyAvailable bool) ([]*RoomView, error)
	FindByID(ctx context.Context, id int) (*RoomView, error)
}

type RoomQueries interface {
	List(ctx context.Context, includeUnavailable bool) ([]*RoomView, error)
	Get(ctx context.Context, id int) (*RoomView, error)
}

type roomQueriesImpl struct {
	readStore RoomReadStore
}

func NewRoomQueries(readStore RoomReadStore) RoomQueries {
	return &roomQueriesImpl{readStore: readStore}
}

func (q *roomQueriesImpl) List(ctx context.Context, includeUnavailable bool) ([]*RoomView, error) {
	rooms, err := q.readStore.List(ctx, !includeUnavailable)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return rooms, nil
}

func (q *roomQueriesImpl) Get(ctx context.Context, id int) (*RoomView, error) {
	rm, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrRoomNotFound, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return rm, nil
}
