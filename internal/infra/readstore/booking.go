package readstore

import (
	"context"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
	"medoffice-booking/internal/infra/repository/converter"
	"medoffice-booking/internal/pkg/pgconv"
	"medoffice-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingReadQueries interface {
	ListActiveBookings(ctx context.Context, db psqlbuilder.DBTX, arg dbq.ListActiveBookingsParams) ([]dbq.Occupancy, error)
	ListBookingsByUser(ctx context.Context, db psqlbuilder.DBTX, userID uuid.UUID, limit uint64) ([]dbq.BookingWithRoom, error)
	ListPendingBookingsByPaymentRef(ctx context.Context, db psqlbuilder.DBTX, userID uuid.UUID, reference string) ([]dbq.Booking, error)
}

type BookingReadStore struct {
	queries BookingReadQueries
	db      psqlbuilder.DBTX
}

func NewBookingReadStore(queries BookingReadQueries, db psqlbuilder.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

// OccupancyBetween returns pending and confirmed bookings from..to inclusive.
// A nil roomIDs slice covers every room.
func (r *BookingReadStore) OccupancyBetween(ctx context.Context, roomIDs []int, from, to booking.Date) ([]booking.Occupancy, error) {
	ids := make([]int32, 0, len(roomIDs))
	for _, id := range roomIDs {
		ids = append(ids, int32(id)) // #nosec G115 -- room ids are SERIAL
	}
	statuses := make([]string, 0, 2)
	for _, s := range booking.ActiveStatuses() {
		statuses = append(statuses, s.String())
	}

	rows, err := r.queries.ListActiveBookings(ctx, r.db, dbq.ListActiveBookingsParams{
		RoomIDs:  ids,
		From:     converter.DateToInfra(from),
		To:       converter.DateToInfra(to),
		Statuses: statuses,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}

	out := make([]booking.Occupancy, 0, len(rows))
	for _, row := range rows {
		o, convErr := converter.OccupancyFromInfra(row)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid booking row", convErr, infra.KindDBFailure)
		}
		out = append(out, o)
	}
	return out, nil
}

// PendingByPaymentRef locks the returned rows when the store runs on a transaction.
func (r *BookingReadStore) PendingByPaymentRef(ctx context.Context, userID uuid.UUID, reference string) ([]*booking.Booking, error) {
	rows, err := r.queries.ListPendingBookingsByPaymentRef(ctx, r.db, userID, reference)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by payment reference", err)
	}

	out := make([]*booking.Booking, 0, len(rows))
	for _, row := range rows {
		b, convErr := converter.BookingFromInfra(row)
		if convErr != nil {
			return nil, infra.WrapRepoErr("invalid booking row", convErr, infra.KindDBFailure)
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByUser(ctx, r.db, userID, uint64(limit)) // #nosec G115 -- limit validated by caller
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}

	views := make([]*queries.BookingView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toBookingView(row))
	}
	return views, nil
}

func toBookingView(row dbq.BookingWithRoom) *queries.BookingView {
	return &queries.BookingView{
		ID:               row.ID,
		RoomID:           int(row.RoomID),
		RoomName:         row.RoomName,
		Date:             converter.DateFromInfra(row.BookingDate).String(),
		TimeSlot:         row.TimeSlot,
		BookingType:      row.BookingType,
		Status:           row.Status,
		AmountCents:      row.TotalPriceCents,
		PaymentReference: row.PaymentReference,
		CardLast4:        pgconv.StringPtrFromPgtype(row.CardLast4),
		PaidAt:           pgconv.TimePtrFromPgtype(row.PaidAt),
		FailedAt:         pgconv.TimePtrFromPgtype(row.FailedAt),
		CreatedAt:        row.CreatedAt,
	}
}
