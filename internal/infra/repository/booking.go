package repository

import (
	"context"
	"sort"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
	"medoffice-booking/internal/infra/repository/converter"
	"medoffice-booking/internal/pkg/pgconv"
)

// paymentOwnerConstraint keeps one payment reference to one user.
const paymentOwnerConstraint = "ex_bookings_payment_owner"

type BookingWriteQueries interface {
	LockRoomDay(ctx context.Context, db psqlbuilder.DBTX, roomID int32, dayNumber int32) error
	InsertBookings(ctx context.Context, db psqlbuilder.DBTX, rows []dbq.Booking) error
	UpdateBookingStatus(ctx context.Context, db psqlbuilder.DBTX, arg dbq.UpdateBookingStatusParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
}

func NewBookingRepository(queries BookingWriteQueries) *BookingRepository {
	return &BookingRepository{queries: queries}
}

// LockDays acquires locks in (date, room) order so concurrent writers over
// overlapping days cannot deadlock.
func (r *BookingRepository) LockDays(ctx context.Context, tx psqlbuilder.DBTX, keys []booking.SlotKey) error {
	ordered := uniqueKeys(keys)
	for _, k := range ordered {
		if err := r.queries.LockRoomDay(ctx, tx, int32(k.RoomID), converter.DayNumber(k.Date)); err != nil { // #nosec G115
			return infra.WrapRepoErr("failed to lock room day", err)
		}
	}
	return nil
}

func (r *BookingRepository) InsertMany(ctx context.Context, tx psqlbuilder.DBTX, bookings []*booking.Booking) error {
	rows := make([]dbq.Booking, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, converter.BookingToInfra(b))
	}

	if err := r.queries.InsertBookings(ctx, tx, rows); err != nil {
		if pgconv.ConstraintName(err) == paymentOwnerConstraint {
			return infra.WrapRepoErr("payment reference belongs to another user", err, infra.KindReferenceTaken)
		}
		return infra.WrapRepoErr("failed to insert bookings", err)
	}
	return nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx psqlbuilder.DBTX, bookings []*booking.Booking) error {
	for _, b := range bookings {
		params := dbq.UpdateBookingStatusParams{
			ID:        b.ID(),
			Status:    b.Status().String(),
			PaidAt:    pgconv.TimePtrToPgtype(b.PaidAt()),
			FailedAt:  pgconv.TimePtrToPgtype(b.FailedAt()),
			UpdatedAt: b.UpdatedAt(),
		}
		n, err := r.queries.UpdateBookingStatus(ctx, tx, params)
		if err != nil {
			return infra.WrapRepoErr("failed to update booking status", err)
		}
		if n == 0 {
			return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
		}
	}
	return nil
}

func uniqueKeys(keys []booking.SlotKey) []booking.SlotKey {
	seen := make(map[booking.SlotKey]struct{}, len(keys))
	out := make([]booking.SlotKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].RoomID < out[j].RoomID
	})
	return out
}
