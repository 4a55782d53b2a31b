package uow

import (
	"context"
	"errors"
	"log/slog"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
	"medoffice-booking/internal/infra/readstore"
	"medoffice-booking/internal/infra/repository"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	errTransactionBegin  = errs.New("failed to begin transaction")
	errTransactionCommit = errs.New("failed to commit transaction")
)

// PostgresUoW runs booking, payment and account writes in one transaction.
// Slot exclusivity comes from per-room-day advisory locks taken inside the
// transaction plus the partial unique indexes, so Read Committed suffices.
type PostgresUoW struct {
	pool  *pgxpool.Pool
	q     *dbq.Queries
	retry retryPolicy
}

func NewPostgresUoW(pool *pgxpool.Pool, q *dbq.Queries) shared.UnitOfWork {
	return &PostgresUoW{
		pool:  pool,
		q:     q,
		retry: defaultRetryPolicy,
	}
}

func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	opts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}

	return u.retry.run(ctx, func(attempt int) error {
		return u.attempt(ctx, opts, attempt, fn)
	})
}

func (u *PostgresUoW) CommandReads() shared.CommandReads {
	return &commandReads{uow: u, dbtx: u.pool}
}

// attempt owns exactly one pgx transaction, so a retry never stacks defers
// or holds a second connection.
func (u *PostgresUoW) attempt(ctx context.Context, opts pgx.TxOptions, attempt int, fn func(ctx context.Context, tx shared.Tx) error) error {
	pgxTx, err := u.pool.BeginTx(ctx, opts)
	if err != nil {
		return errs.Mark(err, errTransactionBegin)
	}
	defer func() {
		if err := pgxTx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Warn("rollback failed", "attempt", attempt, "error", err.Error())
		}
	}()

	if err := fn(ctx, &pgTx{dbtx: pgxTx, uow: u}); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return errs.Mark(err, errTransactionCommit)
	}
	return nil
}

type pgTx struct {
	dbtx psqlbuilder.DBTX
	uow  *PostgresUoW

	// Lazy-initialized repositories
	bookingRepo     shared.BookingRepository
	userRepo        shared.UserRepository
	roomRepo        shared.RoomRepository
	idempotencyRepo shared.IdempotencyRepository
	commandReads    shared.CommandReads
}

func (t *pgTx) DB() psqlbuilder.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.uow.q)
	}
	return t.bookingRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.uow.q)
	}
	return t.userRepo
}

func (t *pgTx) Rooms() shared.RoomRepository {
	if t.roomRepo == nil {
		t.roomRepo = repository.NewRoomRepository(t.uow.q)
	}
	return t.roomRepo
}

func (t *pgTx) Idempotency() shared.IdempotencyRepository {
	if t.idempotencyRepo == nil {
		t.idempotencyRepo = repository.NewIdempotencyRepository(t.uow.q)
	}
	return t.idempotencyRepo
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = &commandReads{
			uow:  t.uow,
			dbtx: t.dbtx,
		}
	}
	return t.commandReads
}

type commandReads struct {
	uow  *PostgresUoW
	dbtx psqlbuilder.DBTX

	// Lazy-initialized readstores
	bookingStore     *readstore.BookingReadStore
	roomStore        *readstore.RoomReadStore
	userStore        *readstore.UserReadStore
	idempotencyStore *readstore.IdempotencyReadStore
}

func (r *commandReads) bookings() *readstore.BookingReadStore {
	if r.bookingStore == nil {
		r.bookingStore = readstore.NewBookingReadStore(r.uow.q, r.dbtx)
	}
	return r.bookingStore
}

func (r *commandReads) OccupancyFor(ctx context.Context, roomIDs []int, from, to booking.Date) ([]booking.Occupancy, error) {
	return r.bookings().OccupancyBetween(ctx, roomIDs, from, to)
}

func (r *commandReads) PendingByPaymentRef(ctx context.Context, userID uuid.UUID, reference string) ([]*booking.Booking, error) {
	return r.bookings().PendingByPaymentRef(ctx, userID, reference)
}

func (r *commandReads) RoomsByIDs(ctx context.Context, ids []int) (map[int]*shared.RoomSnapshot, error) {
	if r.roomStore == nil {
		r.roomStore = readstore.NewRoomReadStore(r.uow.q, r.dbtx)
	}

	rooms, err := r.roomStore.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	snapshots := make(map[int]*shared.RoomSnapshot, len(rooms))
	for _, rm := range rooms {
		snapshots[rm.ID] = &shared.RoomSnapshot{
			ID:          rm.ID,
			Name:        rm.Name,
			IsAvailable: rm.IsAvailable,
		}
	}
	return snapshots, nil
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	if r.userStore == nil {
		r.userStore = readstore.NewUserReadStore(r.uow.q, r.dbtx)
	}

	view, hash, err := r.userStore.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return &shared.UserSnapshot{
		ID:           view.ID,
		Email:        view.Email,
		PasswordHash: hash,
		Role:         view.Role,
	}, nil
}

func (r *commandReads) IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*shared.IdempotencyRecord, error) {
	if r.idempotencyStore == nil {
		r.idempotencyStore = readstore.NewIdempotencyReadStore(r.uow.q)
	}

	return r.idempotencyStore.Get(ctx, r.dbtx, key, userID)
}
