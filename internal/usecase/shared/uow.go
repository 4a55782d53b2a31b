package shared

import (
	"context"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/domain/room"
	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/infra/psqlbuilder"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Users() UserRepository
	Rooms() RoomRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() psqlbuilder.DBTX
}

type CommandReads interface {
	// OccupancyFor loads active bookings for the given rooms between from and
	// to inclusive, straight from storage.
	OccupancyFor(ctx context.Context, roomIDs []int, from, to booking.Date) ([]booking.Occupancy, error)
	RoomsByIDs(ctx context.Context, ids []int) (map[int]*RoomSnapshot, error)
	// PendingByPaymentRef returns the user's pending bookings under reference
	// and locks them when run inside Within.
	PendingByPaymentRef(ctx context.Context, userID uuid.UUID, reference string) ([]*booking.Booking, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

type BookingRepository interface {
	// LockDays takes transaction-scoped advisory locks, one per (room, date).
	LockDays(ctx context.Context, tx psqlbuilder.DBTX, keys []booking.SlotKey) error
	InsertMany(ctx context.Context, tx psqlbuilder.DBTX, bookings []*booking.Booking) error
	UpdateStatus(ctx context.Context, tx psqlbuilder.DBTX, bookings []*booking.Booking) error
}

type UserRepository interface {
	Create(ctx context.Context, tx psqlbuilder.DBTX, u *user.User) (uuid.UUID, error)
	MarkHasBookings(ctx context.Context, tx psqlbuilder.DBTX, userID uuid.UUID, at time.Time) error
}

type RoomRepository interface {
	Create(ctx context.Context, tx psqlbuilder.DBTX, r *room.Room) (int, error)
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists for the user.
	TryInsert(ctx context.Context, tx psqlbuilder.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	Complete(ctx context.Context, tx psqlbuilder.DBTX, key, userID uuid.UUID, bookingIDs []uuid.UUID) error
	ClaimExpired(ctx context.Context, tx psqlbuilder.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
	DeleteExpired(ctx context.Context, tx psqlbuilder.DBTX) (int64, error)
}
