//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"medoffice-booking/internal/domain/booking"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/commands"
	"medoffice-booking/internal/usecase/shared"
	"medoffice-booking/tests/common/builder"
	sharedmock "medoffice-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PaymentCommandsTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	uow       *sharedmock.MockUnitOfWork
	tx        *sharedmock.MockTx
	reads     *sharedmock.MockCommandReads
	bookings  *sharedmock.MockBookingRepository
	processor *sharedmock.MockPaymentProcessor
	publisher *sharedmock.MockEventPublisher
	cache     *sharedmock.MockAvailabilityCache
	clock     *clock.MockClock
	cmds      commands.PaymentCommands
}

func (s *PaymentCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.tx = sharedmock.NewMockTx(s.mockCtrl)
	s.reads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.bookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.processor = sharedmock.NewMockPaymentProcessor(s.mockCtrl)
	s.publisher = sharedmock.NewMockEventPublisher(s.mockCtrl)
	s.cache = sharedmock.NewMockAvailabilityCache(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Bookings().Return(s.bookings).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()

	services := &booking.Services{
		Clock:           s.clock,
		PriceCalculator: booking.NewDefaultPriceCalculator(booking.DefaultPricingTable()),
	}
	s.cmds = commands.NewPaymentCommands(s.uow, services, s.processor, s.publisher, s.cache, "usd")
}

func (s *PaymentCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPaymentCommandsSuite(t *testing.T) {
	suite.Run(t, new(PaymentCommandsTestSuite))
}

func (s *PaymentCommandsTestSuite) pendingBookings(ref string, userID uuid.UUID, n int) []*booking.Booking {
	out := make([]*booking.Booking, n)
	for i := range out {
		out[i] = booking.ReconstructBooking(
			uuid.New(), userID, 1,
			booking.NewDate(2024, time.June, 10).AddDays(i),
			booking.SlotFull, booking.TypeDaily,
			booking.NewMoney(37300), booking.StatusPending,
			booking.PaymentInfo{Reference: ref},
			nil, nil,
			s.clock.Now(), s.clock.Now(),
		)
	}
	return out
}

func (s *PaymentCommandsTestSuite) TestCreateIntent() {
	ctx := context.Background()
	userID := uuid.New()

	s.Run("正常系: サーバー側で算出した金額で決済を作成する", func() {
		req := builder.NewBookingBuilder().BuildQuoteDTO()

		s.processor.EXPECT().CreateIntent(gomock.Any(), booking.NewMoney(149200), "usd", gomock.Any()).
			DoAndReturn(func(_ context.Context, amount booking.Money, currency string, md map[string]string) (*shared.PaymentIntent, error) {
				s.Equal(userID.String(), md["user_id"])
				s.Equal("4", md["units"])
				return &shared.PaymentIntent{Reference: "pi_1", ClientSecret: "secret", AmountCents: amount.Cents(), Currency: currency}, nil
			})

		result, err := s.cmds.CreateIntent(ctx, req, userID)

		s.Require().NoError(err)
		s.Equal("pi_1", result.Intent.Reference)
		s.Equal(int64(149200), result.Quote.Total.Cents())
	})

	s.Run("異常系: 日付のない選択では請求しない", func() {
		req := builder.NewBookingBuilder().WithSelection(1, "full").BuildQuoteDTO()

		_, err := s.cmds.CreateIntent(ctx, req, userID)

		s.True(errs.Is(err, errs.ErrValidation))
		s.True(errs.Is(err, commands.ErrNothingToCharge))
	})

	s.Run("異常系: 決済代行の障害", func() {
		req := builder.NewBookingBuilder().BuildQuoteDTO()
		s.processor.EXPECT().CreateIntent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("processor unavailable"))

		_, err := s.cmds.CreateIntent(ctx, req, userID)

		s.True(errs.Is(err, errs.ErrPayment))
	})
}

func (s *PaymentCommandsTestSuite) TestHandleWebhook() {
	ctx := context.Background()
	userID := uuid.New()

	s.Run("正常系: 決済成功で保留中の予約を確定する", func() {
		pending := s.pendingBookings("pi_ok", userID, 2)
		s.reads.EXPECT().PendingByPaymentRef(gomock.Any(), userID, "pi_ok").Return(pending, nil)
		s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), pending).Return(nil)
		s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Len(1), []int{1, 1})
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev shared.BookingEvent) error {
				s.Equal(shared.EventBookingConfirmed, ev.Type)
				s.Equal(userID, ev.UserID)
				s.Len(ev.BookingIDs, 2)
				return nil
			})

		result, err := s.cmds.HandleWebhook(ctx, reqdto.PaymentWebhookRequest{Type: reqdto.WebhookPaymentSucceeded, Reference: "pi_ok", UserID: userID.String()})

		s.Require().NoError(err)
		s.True(result.Handled)
		s.Equal(booking.StatusConfirmed, result.Status)
		for _, b := range pending {
			s.Equal(booking.StatusConfirmed, b.Status())
			s.Require().NotNil(b.PaidAt())
			s.Equal(s.clock.Now(), *b.PaidAt())
		}
	})

	s.Run("正常系: 決済失敗で予約を失敗にして枠を解放する", func() {
		pending := s.pendingBookings("pi_ng", userID, 1)
		s.reads.EXPECT().PendingByPaymentRef(gomock.Any(), userID, "pi_ng").Return(pending, nil)
		s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), pending).Return(nil)
		s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any())
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		result, err := s.cmds.HandleWebhook(ctx, reqdto.PaymentWebhookRequest{Type: reqdto.WebhookPaymentFailed, Reference: "pi_ng", UserID: userID.String()})

		s.Require().NoError(err)
		s.Equal(booking.StatusFailed, result.Status)
		s.Equal(booking.StatusFailed, pending[0].Status())
	})

	s.Run("正常系: 再送されたイベントは無視する", func() {
		s.reads.EXPECT().PendingByPaymentRef(gomock.Any(), userID, "pi_done").Return(nil, nil)

		result, err := s.cmds.HandleWebhook(ctx, reqdto.PaymentWebhookRequest{Type: reqdto.WebhookPaymentSucceeded, Reference: "pi_done", UserID: userID.String()})

		s.Require().NoError(err)
		s.False(result.Handled)
	})

	s.Run("正常系: 同じ参照を使う他人の予約は確定しない", func() {
		intruder := uuid.New()
		mine := s.pendingBookings("PAY-shared", userID, 1)
		// only the intent owner's rows come back; the intruder's stay pending
		s.reads.EXPECT().PendingByPaymentRef(gomock.Any(), userID, "PAY-shared").Return(mine, nil)
		s.reads.EXPECT().PendingByPaymentRef(gomock.Any(), intruder, gomock.Any()).Times(0)
		s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), mine).Return(nil)
		s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any())
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev shared.BookingEvent) error {
				s.Equal(userID, ev.UserID)
				s.Equal([]uuid.UUID{mine[0].ID()}, ev.BookingIDs)
				return nil
			})

		result, err := s.cmds.HandleWebhook(ctx, reqdto.PaymentWebhookRequest{
			Type: reqdto.WebhookPaymentSucceeded, Reference: "PAY-shared", UserID: userID.String(), AmountCents: 37300,
		})

		s.Require().NoError(err)
		s.Equal(booking.StatusConfirmed, result.Status)
		s.Equal([]uuid.UUID{mine[0].ID()}, result.BookingIDs)
	})

	s.Run("正常系: 金額不足の決済成功は予約を失敗にする", func() {
		pending := s.pendingBookings("PAY-short", userID, 3)
		s.reads.EXPECT().PendingByPaymentRef(gomock.Any(), userID, "PAY-short").Return(pending, nil)
		s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), pending).Return(nil)
		s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any())
		s.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, ev shared.BookingEvent) error {
				s.Equal(shared.EventBookingFailed, ev.Type)
				return nil
			})

		// one booking's worth paid for three
		result, err := s.cmds.HandleWebhook(ctx, reqdto.PaymentWebhookRequest{
			Type: reqdto.WebhookPaymentSucceeded, Reference: "PAY-short", UserID: userID.String(), AmountCents: 37300,
		})

		s.Require().NoError(err)
		s.Equal(booking.StatusFailed, result.Status)
		for _, b := range pending {
			s.Equal(booking.StatusFailed, b.Status())
		}
	})

	s.Run("異常系: ユーザーのない決済イベントは拒否する", func() {
		_, err := s.cmds.HandleWebhook(ctx, reqdto.PaymentWebhookRequest{Type: reqdto.WebhookPaymentSucceeded, Reference: "pi_anon"})

		s.True(errs.Is(err, errs.ErrValidation))
		s.True(errs.Is(err, commands.ErrInvalidWebhookUser))
	})

	s.Run("正常系: 未知のイベント種別は無視する", func() {
		result, err := s.cmds.HandleWebhook(ctx, reqdto.PaymentWebhookRequest{Type: "charge.refunded", Reference: "pi_x"})

		s.Require().NoError(err)
		s.False(result.Handled)
	})

	s.Run("異常系: 更新失敗はストレージエラー", func() {
		pending := s.pendingBookings("pi_err", userID, 1)
		s.reads.EXPECT().PendingByPaymentRef(gomock.Any(), userID, "pi_err").Return(pending, nil)
		s.bookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock"))

		_, err := s.cmds.HandleWebhook(ctx, reqdto.PaymentWebhookRequest{Type: reqdto.WebhookPaymentSucceeded, Reference: "pi_err", UserID: userID.String()})

		s.True(errs.Is(err, errs.ErrStorageUnavailable))
	})
}
