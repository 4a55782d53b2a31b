//go:build unit

package booking_test

import (
	"testing"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(now time.Time) *booking.Services {
	return &booking.Services{
		Clock:           clock.NewMockClock(now),
		PriceCalculator: booking.NewDefaultPriceCalculator(booking.DefaultPricingTable()),
	}
}

func TestNewCheckout(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	svc := newServices(now)
	userID := uuid.New()
	payment, err := booking.NewPaymentInfo(" pi_123 ", "4242", "Grace Hopper")
	require.NoError(t, err)

	t.Run("日付ごとに保留中の予約を作成", func(t *testing.T) {
		sels := []booking.Selection{
			mustSelection(t, 1, "full", "2024-06-10", "2024-06-11", "2024-06-12", "2024-06-13"),
			mustSelection(t, 2, "morning"),
		}

		checkout, err := booking.NewCheckout(svc, userID, sels, booking.TypeDaily, payment)
		require.NoError(t, err)

		require.Len(t, checkout.Bookings, 4)
		assert.Len(t, checkout.IDs(), 4)
		assert.Equal(t, "1492.00", checkout.Quote.Total.String())
		for _, b := range checkout.Bookings {
			assert.Equal(t, booking.StatusPending, b.Status())
			assert.Equal(t, int64(30000), b.Amount().Cents())
			assert.Equal(t, "pi_123", b.Payment().Reference)
			assert.Equal(t, userID, b.UserID())
			assert.Equal(t, now, b.CreatedAt())
		}
	})

	t.Run("月単位は定額を日付で按分", func(t *testing.T) {
		sels := []booking.Selection{mustSelection(t, 1, "morning", "2024-06-10", "2024-06-11", "2024-06-12")}

		checkout, err := booking.NewCheckout(svc, userID, sels, booking.TypeMonthly, payment)
		require.NoError(t, err)

		var sum int64
		for _, b := range checkout.Bookings {
			sum += b.Amount().Cents()
		}
		assert.Equal(t, int64(120000), sum)
		assert.Equal(t, int64(40000), checkout.Bookings[0].Amount().Cents())
	})

	t.Run("日付なしNG", func(t *testing.T) {
		_, err := booking.NewCheckout(svc, userID, []booking.Selection{mustSelection(t, 1, "full")}, booking.TypeDaily, payment)
		require.ErrorIs(t, err, booking.ErrNoDates)
	})

	t.Run("ユーザー未指定NG", func(t *testing.T) {
		_, err := booking.NewCheckout(svc, uuid.Nil, []booking.Selection{mustSelection(t, 1, "full", "2024-06-10")}, booking.TypeDaily, payment)
		require.ErrorIs(t, err, booking.ErrInvalidUser)
	})
}

func TestBooking_StatusTransitions(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	newPending := func() *booking.Booking {
		return booking.ReconstructBooking(uuid.New(), uuid.New(), 1, mustDate(t, "2024-06-10"), booking.SlotFull,
			booking.TypeDaily, booking.NewMoney(30000), booking.StatusPending, booking.PaymentInfo{Reference: "pi_1"},
			nil, nil, now, now)
	}

	t.Run("保留から確定", func(t *testing.T) {
		b := newPending()
		require.NoError(t, b.Confirm(now.Add(time.Minute)))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.NotNil(t, b.PaidAt())
		assert.Equal(t, now.Add(time.Minute), *b.PaidAt())

		require.ErrorIs(t, b.Fail(now), booking.ErrInvalidTransition)
	})

	t.Run("保留から失敗", func(t *testing.T) {
		b := newPending()
		require.NoError(t, b.Fail(now))
		assert.Equal(t, booking.StatusFailed, b.Status())
		assert.NotNil(t, b.FailedAt())
		assert.False(t, b.Status().IsActive())

		require.ErrorIs(t, b.Confirm(now), booking.ErrInvalidTransition)
	})
}

func TestNewPaymentInfo(t *testing.T) {
	_, err := booking.NewPaymentInfo("pi_1", "42a2", "")
	require.ErrorIs(t, err, booking.ErrInvalidPayment)

	_, err = booking.NewPaymentInfo("pi_1", "424", "")
	require.ErrorIs(t, err, booking.ErrInvalidPayment)

	p, err := booking.NewPaymentInfo("pi_1", "", "")
	require.NoError(t, err)
	assert.Empty(t, p.CardLast4)
}
