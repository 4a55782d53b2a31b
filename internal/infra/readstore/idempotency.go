package readstore

import (
	"context"

	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
	"medoffice-booking/internal/pkg/pgconv"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyReadQueries interface {
	GetIdempotencyKey(ctx context.Context, db psqlbuilder.DBTX, key, userID uuid.UUID) (dbq.IdempotencyKey, error)
}

type IdempotencyReadStore struct {
	queries IdempotencyReadQueries
}

func NewIdempotencyReadStore(queries IdempotencyReadQueries) *IdempotencyReadStore {
	return &IdempotencyReadStore{
		queries: queries,
	}
}

// Get returns expired records too; callers decide whether to reclaim them.
func (r *IdempotencyReadStore) Get(ctx context.Context, tx psqlbuilder.DBTX, key uuid.UUID, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.GetIdempotencyKey(ctx, tx, key, userID)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get idempotency key", err, infra.KindDBFailure)
	}

	ids := make([]uuid.UUID, 0, len(row.BookingIDs))
	for _, id := range row.BookingIDs {
		if id.Valid {
			ids = append(ids, uuid.UUID(id.Bytes))
		}
	}

	return &shared.IdempotencyRecord{
		Key:         row.Key,
		UserID:      row.UserID,
		Status:      row.Status,
		RequestHash: row.RequestHash,
		BookingIDs:  ids,
		ExpiresAt:   row.ExpiresAt,
	}, nil
}
