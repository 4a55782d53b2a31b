package dbq

import (
	"context"
	"time"

	"medoffice-booking/internal/infra/psqlbuilder"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

var bookingColumns = []string{
	"id", "user_id", "room_id", "booking_date", "time_slot", "booking_type", "status",
	"total_price_cents", "payment_reference", "card_last4", "cardholder_name",
	"paid_at", "failed_at", "created_at", "updated_at",
}

type Booking struct {
	ID               uuid.UUID          `db:"id"`
	UserID           uuid.UUID          `db:"user_id"`
	RoomID           int32              `db:"room_id"`
	BookingDate      pgtype.Date        `db:"booking_date"`
	TimeSlot         string             `db:"time_slot"`
	BookingType      string             `db:"booking_type"`
	Status           string             `db:"status"`
	TotalPriceCents  int64              `db:"total_price_cents"`
	PaymentReference string             `db:"payment_reference"`
	CardLast4        pgtype.Text        `db:"card_last4"`
	CardholderName   pgtype.Text        `db:"cardholder_name"`
	PaidAt           pgtype.Timestamptz `db:"paid_at"`
	FailedAt         pgtype.Timestamptz `db:"failed_at"`
	CreatedAt        time.Time          `db:"created_at"`
	UpdatedAt        time.Time          `db:"updated_at"`
}

type Occupancy struct {
	RoomID      int32       `db:"room_id"`
	BookingDate pgtype.Date `db:"booking_date"`
	TimeSlot    string      `db:"time_slot"`
	Status      string      `db:"status"`
}

type BookingWithRoom struct {
	Booking
	RoomName string `db:"room_name"`
}

// LockRoomDay serialises writers on one room and day until the surrounding
// transaction ends.
func (q *Queries) LockRoomDay(ctx context.Context, db psqlbuilder.DBTX, roomID int32, dayNumber int32) error {
	_, err := db.Exec(ctx, "SELECT pg_advisory_xact_lock($1::int4, $2::int4)", roomID, dayNumber)
	return err
}

func (q *Queries) InsertBookings(ctx context.Context, db psqlbuilder.DBTX, rows []Booking) error {
	if len(rows) == 0 {
		return nil
	}
	b := psqlbuilder.Insert("bookings").Columns(bookingColumns...)
	for _, r := range rows {
		b = b.Values(
			r.ID, r.UserID, r.RoomID, r.BookingDate, r.TimeSlot, r.BookingType, r.Status,
			r.TotalPriceCents, r.PaymentReference, r.CardLast4, r.CardholderName,
			r.PaidAt, r.FailedAt, r.CreatedAt, r.UpdatedAt,
		)
	}
	_, err := exec(ctx, db, b)
	return err
}

type ListActiveBookingsParams struct {
	RoomIDs  []int32
	From     pgtype.Date
	To       pgtype.Date
	Statuses []string
}

// ListActiveBookings returns occupancy rows between From and To inclusive.
// An empty RoomIDs matches every room.
func (q *Queries) ListActiveBookings(ctx context.Context, db psqlbuilder.DBTX, arg ListActiveBookingsParams) ([]Occupancy, error) {
	b := psqlbuilder.Select("room_id", "booking_date", "time_slot", "status").
		From("bookings").
		Where(squirrel.Eq{"status": arg.Statuses}).
		Where(squirrel.GtOrEq{"booking_date": arg.From}).
		Where(squirrel.LtOrEq{"booking_date": arg.To}).
		OrderBy("booking_date", "room_id", "time_slot")
	if len(arg.RoomIDs) > 0 {
		b = b.Where(squirrel.Eq{"room_id": arg.RoomIDs})
	}
	return selectMany[Occupancy](ctx, db, b)
}

// ListPendingBookingsByPaymentRef matches only the owner's rows; a reference
// alone is guessable.
func (q *Queries) ListPendingBookingsByPaymentRef(ctx context.Context, db psqlbuilder.DBTX, userID uuid.UUID, reference string) ([]Booking, error) {
	b := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID, "payment_reference": reference, "status": "pending"}).
		OrderBy("booking_date", "room_id").
		Suffix("FOR UPDATE")
	return selectMany[Booking](ctx, db, b)
}

type UpdateBookingStatusParams struct {
	ID        uuid.UUID
	Status    string
	PaidAt    pgtype.Timestamptz
	FailedAt  pgtype.Timestamptz
	UpdatedAt time.Time
}

func (q *Queries) UpdateBookingStatus(ctx context.Context, db psqlbuilder.DBTX, arg UpdateBookingStatusParams) (int64, error) {
	b := psqlbuilder.Update("bookings").
		Set("status", arg.Status).
		Set("paid_at", arg.PaidAt).
		Set("failed_at", arg.FailedAt).
		Set("updated_at", arg.UpdatedAt).
		Where(squirrel.Eq{"id": arg.ID})
	return exec(ctx, db, b)
}

func (q *Queries) ListBookingsByUser(ctx context.Context, db psqlbuilder.DBTX, userID uuid.UUID, limit uint64) ([]BookingWithRoom, error) {
	cols := make([]string, 0, len(bookingColumns)+1)
	for _, c := range bookingColumns {
		cols = append(cols, "b."+c)
	}
	cols = append(cols, "r.name AS room_name")

	b := psqlbuilder.Select(cols...).
		From("bookings b").
		Join("rooms r ON r.id = b.room_id").
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.created_at DESC", "b.booking_date", "b.room_id").
		Limit(limit)
	return selectMany[BookingWithRoom](ctx, db, b)
}
