package repository

import (
	"context"
	"time"

	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db psqlbuilder.DBTX, arg dbq.TryInsertIdempotencyKeyParams) (int64, error)
	CompleteIdempotencyKey(ctx context.Context, db psqlbuilder.DBTX, key, userID uuid.UUID, bookingIDs []pgtype.UUID) (int64, error)
	ReclaimExpiredIdempotencyKey(ctx context.Context, db psqlbuilder.DBTX, arg dbq.TryInsertIdempotencyKeyParams, now time.Time) (int64, error)
	DeleteExpiredIdempotencyKeys(ctx context.Context, db psqlbuilder.DBTX, now time.Time) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	now     func() time.Time
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		now:     time.Now,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx psqlbuilder.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	params := dbq.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}

	n, err := r.queries.TryInsertIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return n == 1, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, tx psqlbuilder.DBTX, key, userID uuid.UUID, bookingIDs []uuid.UUID) error {
	ids := make([]pgtype.UUID, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		ids = append(ids, pgtype.UUID{Bytes: id, Valid: true})
	}

	if _, err := r.queries.CompleteIdempotencyKey(ctx, tx, key, userID, ids); err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, tx psqlbuilder.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	params := dbq.TryInsertIdempotencyKeyParams{
		Key:         key,
		UserID:      userID,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}

	n, err := r.queries.ReclaimExpiredIdempotencyKey(ctx, tx, params, r.now())
	if err != nil {
		return false, infra.WrapRepoErr("failed to reclaim idempotency key", err)
	}
	return n == 1, nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, db psqlbuilder.DBTX) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, db, r.now())
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return count, nil
}
