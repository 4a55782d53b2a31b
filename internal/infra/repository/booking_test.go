//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/infra/dbq"
	"medoffice-booking/internal/infra/psqlbuilder"
	"medoffice-booking/internal/infra/repository/converter"
	"medoffice-booking/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBookingWriteQueries struct {
	mock.Mock
}

func (m *MockBookingWriteQueries) LockRoomDay(ctx context.Context, db psqlbuilder.DBTX, roomID int32, dayNumber int32) error {
	args := m.Called(ctx, db, roomID, dayNumber)
	return args.Error(0)
}

func (m *MockBookingWriteQueries) InsertBookings(ctx context.Context, db psqlbuilder.DBTX, rows []dbq.Booking) error {
	args := m.Called(ctx, db, rows)
	return args.Error(0)
}

func (m *MockBookingWriteQueries) UpdateBookingStatus(ctx context.Context, db psqlbuilder.DBTX, arg dbq.UpdateBookingStatusParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func mustDate(t *testing.T, s string) booking.Date {
	t.Helper()
	d, err := booking.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestBookingRepository_LockDays(t *testing.T) {
	mon := mustDate(t, "2024-06-10")
	tue := mustDate(t, "2024-06-11")

	mockQueries := new(MockBookingWriteQueries)
	var calls [][2]int32
	mockQueries.On("LockRoomDay", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			calls = append(calls, [2]int32{args.Get(2).(int32), args.Get(3).(int32)})
		}).Return(nil)

	err := NewBookingRepository(mockQueries).LockDays(context.Background(), nil, []booking.SlotKey{
		{Date: tue, RoomID: 1},
		{Date: mon, RoomID: 2},
		{Date: mon, RoomID: 1},
		{Date: tue, RoomID: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, [][2]int32{
		{1, converter.DayNumber(mon)},
		{2, converter.DayNumber(mon)},
		{1, converter.DayNumber(tue)},
	}, calls)
	assert.Equal(t, converter.DayNumber(mon)+1, converter.DayNumber(tue))
}

func TestBookingRepository_InsertMany(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	svc := &booking.Services{
		Clock:           clock.NewMockClock(now),
		PriceCalculator: booking.NewDefaultPriceCalculator(booking.DefaultPricingTable()),
	}
	sel, err := booking.NewSelection(1, "full", []string{"2024-06-10", "2024-06-11"})
	require.NoError(t, err)
	checkout, err := booking.NewCheckout(svc, uuid.New(), []booking.Selection{sel}, booking.TypeDaily,
		booking.PaymentInfo{Reference: "pi_1", CardLast4: "4242"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("InsertBookings", mock.Anything, mock.Anything, mock.MatchedBy(func(rows []dbq.Booking) bool {
			return len(rows) == 2 &&
				rows[0].Status == "pending" &&
				rows[0].TotalPriceCents == 30000 &&
				rows[0].CardLast4.Valid && rows[0].CardLast4.String == "4242" &&
				!rows[0].CardholderName.Valid
		})).Return(nil)

		require.NoError(t, NewBookingRepository(mockQueries).InsertMany(context.Background(), nil, checkout.Bookings))
		mockQueries.AssertExpectations(t)
	})

	t.Run("unique violation becomes duplicate key", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("InsertBookings", mock.Anything, mock.Anything, mock.Anything).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_bookings_active_slot"})

		err := NewBookingRepository(mockQueries).InsertMany(context.Background(), nil, checkout.Bookings)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("overlapping half day becomes duplicate key", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("InsertBookings", mock.Anything, mock.Anything, mock.Anything).
			Return(&pgconn.PgError{Code: "23P01", ConstraintName: "ex_bookings_active_overlap"})

		err := NewBookingRepository(mockQueries).InsertMany(context.Background(), nil, checkout.Bookings)
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("another user's payment reference", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("InsertBookings", mock.Anything, mock.Anything, mock.Anything).
			Return(&pgconn.PgError{Code: "23P01", ConstraintName: "ex_bookings_payment_owner"})

		err := NewBookingRepository(mockQueries).InsertMany(context.Background(), nil, checkout.Bookings)
		assert.True(t, infra.IsKind(err, infra.KindReferenceTaken))
		assert.False(t, infra.IsKind(err, infra.KindDuplicateKey))
	})
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	now := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	b := booking.ReconstructBooking(uuid.New(), uuid.New(), 1, mustDate(t, "2024-06-10"), booking.SlotFull,
		booking.TypeDaily, booking.NewMoney(30000), booking.StatusPending, booking.PaymentInfo{Reference: "pi_1"},
		nil, nil, now, now)
	require.NoError(t, b.Confirm(now.Add(time.Minute)))

	t.Run("success", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("UpdateBookingStatus", mock.Anything, mock.Anything, mock.MatchedBy(func(p dbq.UpdateBookingStatusParams) bool {
			return p.ID == b.ID() && p.Status == "confirmed" && p.PaidAt.Valid && !p.FailedAt.Valid
		})).Return(int64(1), nil)

		require.NoError(t, NewBookingRepository(mockQueries).UpdateStatus(context.Background(), nil, []*booking.Booking{b}))
		mockQueries.AssertExpectations(t)
	})

	t.Run("no longer pending", func(t *testing.T) {
		mockQueries := new(MockBookingWriteQueries)
		mockQueries.On("UpdateBookingStatus", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		err := NewBookingRepository(mockQueries).UpdateStatus(context.Background(), nil, []*booking.Booking{b})
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}
