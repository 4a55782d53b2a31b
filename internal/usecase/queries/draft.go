package queries

import (
	"context"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type DraftQueries interface {
	Get(ctx context.Context, userID uuid.UUID) (*booking.Draft, error)
}

type draftQueriesImpl struct {
	store shared.DraftStore
}

func NewDraftQueries(store shared.DraftStore) DraftQueries {
	return &draftQueriesImpl{store: store}
}

func (q *draftQueriesImpl) Get(ctx context.Context, userID uuid.UUID) (*booking.Draft, error) {
	draft, err := q.store.Load(ctx, userID)
	if err != nil {
		if errs.Is(err, shared.ErrDraftNotFound) {
			return nil, errs.Mark(err, errs.ErrNotFound)
		}
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return draft, nil
}
