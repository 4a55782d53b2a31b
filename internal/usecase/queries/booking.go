package queries

import (
	"context"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	// ListByUser returns the user's bookings newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*BookingView, error)
}

type BookingQueries interface {
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*CheckoutView, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
	pricing   PricingQueries
}

func NewBookingQueries(readStore BookingReadStore, pricing PricingQueries) BookingQueries {
	return &bookingQueriesImpl{
		readStore: readStore,
		pricing:   pricing,
	}
}

// History groups the user's bookings by payment reference. The breakdown is
// rebuilt from the stored per-date amounts and the current tax rate and
// deposit.
func (q *bookingQueriesImpl) History(ctx context.Context, userID uuid.UUID, limit int) ([]*CheckoutView, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	rows, err := q.readStore.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrStorageUnavailable)
	}

	table := q.pricing.Table()
	byRef := make(map[string]*CheckoutView, len(rows))
	out := make([]*CheckoutView, 0, len(rows))
	for _, row := range rows {
		view, ok := byRef[row.PaymentReference]
		if !ok {
			view = &CheckoutView{
				PaymentReference: row.PaymentReference,
				BookingType:      row.BookingType,
				Status:           row.Status,
				CreatedAt:        row.CreatedAt,
			}
			byRef[row.PaymentReference] = view
			out = append(out, view)
		}
		view.Bookings = append(view.Bookings, row)
		view.SubtotalCents += row.AmountCents
	}

	for _, view := range out {
		subtotal := booking.NewMoney(view.SubtotalCents)
		tax := subtotal.ApplyRate(table.TaxRateBasisPoints)
		view.TaxCents = tax.Cents()
		view.SecurityDepositCents = table.SecurityDeposit.Cents()
		view.TotalCents = subtotal.Add(tax).Add(table.SecurityDeposit).Cents()
	}
	return out, nil
}
