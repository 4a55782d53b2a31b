//go:build unit

package queries_test

import (
	"context"
	"testing"

	"medoffice-booking/internal/domain/booking"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/queries"
	"medoffice-booking/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingQueries_Quote(t *testing.T) {
	table := booking.DefaultPricingTable()
	q := queries.NewPricingQueries(table, booking.NewDefaultPriceCalculator(table), nil)
	ctx := context.Background()

	t.Run("正常系: 4日分の全日予約", func(t *testing.T) {
		quote, err := q.Quote(ctx, builder.NewBookingBuilder().BuildQuoteDTO())

		require.NoError(t, err)
		assert.Equal(t, "1492.00", quote.Total.String())
		assert.Equal(t, int64(120000), quote.Subtotal.Cents())
		assert.Equal(t, int64(4200), quote.Tax.Cents())
		assert.Equal(t, int64(25000), quote.SecurityDeposit.Cents())
	})

	t.Run("正常系: 日付なしの選択だけなら0円", func(t *testing.T) {
		quote, err := q.Quote(ctx, builder.NewBookingBuilder().WithSelection(1, "full").BuildQuoteDTO())

		require.NoError(t, err)
		assert.True(t, quote.Total.IsZero())
		assert.Empty(t, quote.Lines)
	})

	t.Run("異常系: 不正な予約種別", func(t *testing.T) {
		_, err := q.Quote(ctx, reqdto.QuoteRequest{BookingType: "weekly"})

		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("料金表をそのまま返す", func(t *testing.T) {
		assert.Equal(t, table, q.Table())
	})
}
