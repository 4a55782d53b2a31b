package converter

import (
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func BookingToInfra(b *booking.Booking) dbq.Booking {
	payment := b.Payment()

	row := dbq.Booking{
		ID:               b.ID(),
		UserID:           b.UserID(),
		RoomID:           int32(b.RoomID()), // #nosec G115 -- room ids are SERIAL
		BookingDate:      pgconv.DateToPgtype(b.Date().Time()),
		TimeSlot:         b.Slot().String(),
		BookingType:      b.BookingType().String(),
		Status:           b.Status().String(),
		TotalPriceCents:  b.Amount().Cents(),
		PaymentReference: payment.Reference,
		PaidAt:           pgconv.TimePtrToPgtype(b.PaidAt()),
		FailedAt:         pgconv.TimePtrToPgtype(b.FailedAt()),
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}

	if payment.CardLast4 != "" {
		row.CardLast4 = pgtype.Text{String: payment.CardLast4, Valid: true}
	}
	if payment.CardholderName != "" {
		row.CardholderName = pgtype.Text{String: payment.CardholderName, Valid: true}
	}

	return row
}

func BookingFromInfra(row dbq.Booking) (*booking.Booking, error) {
	slot, err := booking.ParseTimeSlot(row.TimeSlot)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}
	bookingType, err := booking.ParseBookingType(row.BookingType)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "booking %s", row.ID)
	}

	payment := booking.PaymentInfo{Reference: row.PaymentReference}
	if row.CardLast4.Valid {
		payment.CardLast4 = row.CardLast4.String
	}
	if row.CardholderName.Valid {
		payment.CardholderName = row.CardholderName.String
	}

	return booking.ReconstructBooking(
		row.ID,
		row.UserID,
		int(row.RoomID),
		DateFromInfra(row.BookingDate),
		slot,
		bookingType,
		booking.NewMoney(row.TotalPriceCents),
		status,
		payment,
		pgconv.TimePtrFromPgtype(row.PaidAt),
		pgconv.TimePtrFromPgtype(row.FailedAt),
		row.CreatedAt,
		row.UpdatedAt,
	), nil
}

func OccupancyFromInfra(row dbq.Occupancy) (booking.Occupancy, error) {
	slot, err := booking.ParseTimeSlot(row.TimeSlot)
	if err != nil {
		return booking.Occupancy{}, err
	}
	status, err := booking.ParseStatus(row.Status)
	if err != nil {
		return booking.Occupancy{}, err
	}
	return booking.Occupancy{
		RoomID: int(row.RoomID),
		Date:   DateFromInfra(row.BookingDate),
		Slot:   slot,
		Status: status,
	}, nil
}

func DateFromInfra(d pgtype.Date) booking.Date {
	return booking.DateOf(d.Time)
}

func DateToInfra(d booking.Date) pgtype.Date {
	return pgconv.DateToPgtype(d.Time())
}

// DayNumber maps a date to a stable int4 used as an advisory lock key.
func DayNumber(d booking.Date) int32 {
	return int32(d.Time().Unix() / int64(24*time.Hour/time.Second)) // #nosec G115 -- fits until year 5.8M
}
