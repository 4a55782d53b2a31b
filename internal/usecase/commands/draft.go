package commands

import (
	"context"

	"medoffice-booking/internal/domain/booking"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// DraftCommands keep a user's unfinished selection between booking steps.
// Nothing here touches slot occupancy.
type DraftCommands interface {
	Save(ctx context.Context, req reqdto.SaveDraftRequest, userID uuid.UUID) (*booking.Draft, error)
	Discard(ctx context.Context, userID uuid.UUID) error
}

type draftCommandsImpl struct {
	store shared.DraftStore
	clock clock.Clock
}

func NewDraftCommands(store shared.DraftStore, clk clock.Clock) DraftCommands {
	return &draftCommandsImpl{
		store: store,
		clock: clk,
	}
}

func (d *draftCommandsImpl) Save(ctx context.Context, req reqdto.SaveDraftRequest, userID uuid.UUID) (*booking.Draft, error) {
	bookingType, selections, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	draft, err := booking.NewDraft(userID, bookingType, selections, d.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	if err := d.store.Save(ctx, draft); err != nil {
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return draft, nil
}

func (d *draftCommandsImpl) Discard(ctx context.Context, userID uuid.UUID) error {
	if err := d.store.Delete(ctx, userID); err != nil {
		return errs.Mark(err, errs.ErrStorageUnavailable)
	}
	return nil
}
