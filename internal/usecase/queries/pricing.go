package queries

import (
	"context"

	"medoffice-booking/internal/domain/booking"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/pkg/metrics"
)

type PricingQueries interface {
	// Quote has no side effects and never touches storage.
	Quote(ctx context.Context, req reqdto.QuoteRequest) (*booking.Quote, error)
	Table() booking.PricingTable
}

type pricingQueriesImpl struct {
	calculator booking.PriceCalculator
	table      booking.PricingTable
	metrics    *metrics.Metrics
}

func NewPricingQueries(table booking.PricingTable, calculator booking.PriceCalculator, m *metrics.Metrics) PricingQueries {
	return &pricingQueriesImpl{
		calculator: calculator,
		table:      table,
		metrics:    m,
	}
}

func (q *pricingQueriesImpl) Quote(_ context.Context, req reqdto.QuoteRequest) (*booking.Quote, error) {
	bookingType, selections, err := req.ToDomain()
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	quote, err := q.calculator.Quote(selections, bookingType)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	q.metrics.IncQuote(bookingType.String())
	return &quote, nil
}

func (q *pricingQueriesImpl) Table() booking.PricingTable {
	return q.table
}
