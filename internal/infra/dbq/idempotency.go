package dbq

import (
	"context"
	"time"

	"medoffice-booking/internal/infra/psqlbuilder"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyKey struct {
	Key         uuid.UUID     `db:"key"`
	UserID      uuid.UUID     `db:"user_id"`
	Endpoint    string        `db:"endpoint"`
	RequestHash string        `db:"request_hash"`
	Status      string        `db:"status"`
	BookingIDs  []pgtype.UUID `db:"booking_ids"`
	ExpiresAt   time.Time     `db:"expires_at"`
	CreatedAt   time.Time     `db:"created_at"`
}

type TryInsertIdempotencyKeyParams struct {
	Key         uuid.UUID
	UserID      uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   time.Time
}

// TryInsertIdempotencyKey returns the number of inserted rows, zero when the
// key is already held.
func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db psqlbuilder.DBTX, arg TryInsertIdempotencyKeyParams) (int64, error) {
	b := psqlbuilder.Insert("idempotency_keys").
		Columns("key", "user_id", "endpoint", "request_hash", "status", "expires_at").
		Values(arg.Key, arg.UserID, arg.Endpoint, arg.RequestHash, "processing", arg.ExpiresAt).
		Suffix("ON CONFLICT (key, user_id) DO NOTHING")
	return exec(ctx, db, b)
}

func (q *Queries) GetIdempotencyKey(ctx context.Context, db psqlbuilder.DBTX, key, userID uuid.UUID) (IdempotencyKey, error) {
	b := psqlbuilder.Select("key", "user_id", "endpoint", "request_hash", "status", "booking_ids", "expires_at", "created_at").
		From("idempotency_keys").
		Where(squirrel.Eq{"key": key, "user_id": userID})
	return selectOne[IdempotencyKey](ctx, db, b)
}

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db psqlbuilder.DBTX, key, userID uuid.UUID, bookingIDs []pgtype.UUID) (int64, error) {
	b := psqlbuilder.Update("idempotency_keys").
		Set("status", "completed").
		Set("booking_ids", bookingIDs).
		Where(squirrel.Eq{"key": key, "user_id": userID})
	return exec(ctx, db, b)
}

// ReclaimExpiredIdempotencyKey hands an expired key to a new request.
func (q *Queries) ReclaimExpiredIdempotencyKey(ctx context.Context, db psqlbuilder.DBTX, arg TryInsertIdempotencyKeyParams, now time.Time) (int64, error) {
	b := psqlbuilder.Update("idempotency_keys").
		Set("request_hash", arg.RequestHash).
		Set("status", "processing").
		Set("booking_ids", []pgtype.UUID{}).
		Set("expires_at", arg.ExpiresAt).
		Where(squirrel.Eq{"key": arg.Key, "user_id": arg.UserID}).
		Where(squirrel.Lt{"expires_at": now})
	return exec(ctx, db, b)
}

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db psqlbuilder.DBTX, now time.Time) (int64, error) {
	b := psqlbuilder.Delete("idempotency_keys").Where(squirrel.Lt{"expires_at": now})
	return exec(ctx, db, b)
}
