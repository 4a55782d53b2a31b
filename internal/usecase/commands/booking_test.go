//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"medoffice-booking/internal/domain/booking"
	"medoffice-booking/internal/infra"
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

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	uow         *sharedmock.MockUnitOfWork
	tx          *sharedmock.MockTx
	reads       *sharedmock.MockCommandReads
	bookings    *sharedmock.MockBookingRepository
	users       *sharedmock.MockUserRepository
	idempotency *sharedmock.MockIdempotencyRepository
	cache       *sharedmock.MockAvailabilityCache
	drafts      *sharedmock.MockDraftStore
	clock       *clock.MockClock
	cmds        commands.BookingCommands
	userID      uuid.UUID
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.tx = sharedmock.NewMockTx(s.mockCtrl)
	s.reads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.bookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.users = sharedmock.NewMockUserRepository(s.mockCtrl)
	s.idempotency = sharedmock.NewMockIdempotencyRepository(s.mockCtrl)
	s.cache = sharedmock.NewMockAvailabilityCache(s.mockCtrl)
	s.drafts = sharedmock.NewMockDraftStore(s.mockCtrl)
	s.clock = clock.NewMockClock(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
	s.userID = uuid.New()

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Bookings().Return(s.bookings).AnyTimes()
	s.tx.EXPECT().Users().Return(s.users).AnyTimes()
	s.tx.EXPECT().Idempotency().Return(s.idempotency).AnyTimes()
	s.tx.EXPECT().DB().Return(nil).AnyTimes()

	services := &booking.Services{
		Clock:           s.clock,
		PriceCalculator: booking.NewDefaultPriceCalculator(booking.DefaultPricingTable()),
	}
	s.cmds = commands.NewBookingCommands(s.uow, services, s.cache, s.drafts, nil)
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) roomsBookable(ids ...int) {
	rooms := make(map[int]*shared.RoomSnapshot, len(ids))
	for _, id := range ids {
		rooms[id] = &shared.RoomSnapshot{ID: id, Name: "Room", IsAvailable: true}
	}
	s.reads.EXPECT().RoomsByIDs(gomock.Any(), gomock.Any()).Return(rooms, nil)
}

func (s *BookingCommandsTestSuite) expectWriteSucceeds() {
	s.bookings.EXPECT().InsertMany(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.users.EXPECT().MarkHasBookings(gomock.Any(), gomock.Any(), s.userID, s.clock.Now()).Return(nil)
	s.cache.EXPECT().Invalidate(gomock.Any(), gomock.Any(), gomock.Any())
	s.drafts.EXPECT().Delete(gomock.Any(), s.userID).Return(nil)
}

func (s *BookingCommandsTestSuite) TestCommit() {
	ctx := context.Background()

	s.Run("正常系: 4日分の全日予約を保留で作成する", func() {
		req := builder.NewBookingBuilder().BuildCommitDTO()

		s.roomsBookable(1)
		s.bookings.EXPECT().LockDays(gomock.Any(), gomock.Any(), gomock.Len(4)).Return(nil)
		s.reads.EXPECT().OccupancyFor(gomock.Any(), []int{1}, booking.NewDate(2024, time.June, 10), booking.NewDate(2024, time.June, 13)).
			Return(nil, nil)

		var inserted []*booking.Booking
		s.bookings.EXPECT().InsertMany(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, bs []*booking.Booking) error {
				inserted = bs
				return nil
			})
		s.users.EXPECT().MarkHasBookings(gomock.Any(), gomock.Any(), s.userID, s.clock.Now()).Return(nil)
		s.cache.EXPECT().Invalidate(gomock.Any(), []booking.Month{booking.NewDate(2024, time.June, 10).Month()}, []int{1})
		s.drafts.EXPECT().Delete(gomock.Any(), s.userID).Return(nil)

		result, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.Require().NoError(err)
		s.False(result.IsReplayed)
		s.Len(result.BookingIDs, 4)
		s.Equal("pi_test_123", result.PaymentReference)
		s.Equal(int64(149200), result.Quote.Total.Cents())
		s.Require().Len(inserted, 4)
		var sum int64
		for _, b := range inserted {
			s.Equal(booking.StatusPending, b.Status())
			s.Equal(s.userID, b.UserID())
			s.Equal(booking.SlotFull, b.Slot())
			sum += b.Amount().Cents()
		}
		s.Equal(int64(149200), sum)
	})

	s.Run("異常系: 既存の午前予約と全日予約が衝突する", func() {
		req := builder.NewBookingBuilder().
			WithSelection(1, "full", "2024-06-10").
			BuildCommitDTO()

		s.roomsBookable(1)
		s.bookings.EXPECT().LockDays(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.reads.EXPECT().OccupancyFor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]booking.Occupancy{
				{RoomID: 1, Date: booking.NewDate(2024, time.June, 10), Slot: booking.SlotMorning, Status: booking.StatusConfirmed},
			}, nil)

		result, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.Nil(result)
		s.True(errs.Is(err, errs.ErrConflict))
		var conflictErr *booking.ConflictError
		s.Require().True(errs.As(err, &conflictErr))
		s.Require().Len(conflictErr.Conflicts, 1)
		s.Equal(1, conflictErr.Conflicts[0].RoomID)
		s.Equal(booking.NewDate(2024, time.June, 10), conflictErr.Conflicts[0].Date)
	})

	s.Run("異常系: 同一リクエスト内の重複選択は衝突になる", func() {
		req := builder.NewBookingBuilder().
			WithSelection(1, "full", "2024-06-10").
			AddSelection(1, "morning", "2024-06-10").
			BuildCommitDTO()

		s.roomsBookable(1)
		s.bookings.EXPECT().LockDays(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.reads.EXPECT().OccupancyFor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		_, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.True(errs.Is(err, errs.ErrConflict))
	})

	s.Run("異常系: 一意制約違反は衝突として扱う", func() {
		req := builder.NewBookingBuilder().BuildCommitDTO()

		s.roomsBookable(1)
		s.bookings.EXPECT().LockDays(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.reads.EXPECT().OccupancyFor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		s.bookings.EXPECT().InsertMany(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("insert bookings", errors.New("unique violation"), infra.KindDuplicateKey))

		_, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.True(errs.Is(err, errs.ErrConflict))
		var conflictErr *booking.ConflictError
		s.Require().True(errs.As(err, &conflictErr))
		s.Len(conflictErr.Conflicts, 4)
	})

	s.Run("異常系: 他のユーザーの決済参照は使えない", func() {
		req := builder.NewBookingBuilder().BuildCommitDTO()

		s.roomsBookable(1)
		s.bookings.EXPECT().LockDays(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.reads.EXPECT().OccupancyFor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		s.bookings.EXPECT().InsertMany(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("insert bookings", errors.New("exclusion violation"), infra.KindReferenceTaken))

		_, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.True(errs.Is(err, errs.ErrValidation))
		s.True(errs.Is(err, commands.ErrPaymentRefTaken))
		s.False(errs.Is(err, errs.ErrConflict))
	})

	s.Run("異常系: 利用停止中の部屋は検証エラー", func() {
		req := builder.NewBookingBuilder().BuildCommitDTO()

		s.reads.EXPECT().RoomsByIDs(gomock.Any(), []int{1}).
			Return(map[int]*shared.RoomSnapshot{1: {ID: 1, Name: "Room 1", IsAvailable: false}}, nil)

		_, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.True(errs.Is(err, errs.ErrValidation))
		s.True(errs.Is(err, commands.ErrRoomUnavailable))
	})

	s.Run("異常系: 存在しない部屋は検証エラー", func() {
		req := builder.NewBookingBuilder().WithSelection(99, "full", "2024-06-10").BuildCommitDTO()

		s.reads.EXPECT().RoomsByIDs(gomock.Any(), []int{99}).Return(map[int]*shared.RoomSnapshot{}, nil)

		_, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.True(errs.Is(err, errs.ErrValidation))
		s.True(errs.Is(err, commands.ErrRoomNotFound))
	})

	s.Run("異常系: 日付のない選択だけでは検証エラー", func() {
		req := builder.NewBookingBuilder().WithSelection(1, "full").BuildCommitDTO()

		_, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.True(errs.Is(err, errs.ErrValidation))
	})

	s.Run("異常系: 未認証ユーザー", func() {
		req := builder.NewBookingBuilder().BuildCommitDTO()

		_, err := s.cmds.Commit(ctx, req, uuid.Nil, nil)

		s.True(errs.Is(err, errs.ErrUnauthorized))
	})

	s.Run("異常系: ストレージ障害", func() {
		req := builder.NewBookingBuilder().BuildCommitDTO()

		s.roomsBookable(1)
		s.bookings.EXPECT().LockDays(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := s.cmds.Commit(ctx, req, s.userID, nil)

		s.True(errs.Is(err, errs.ErrStorageUnavailable))
	})
}

func (s *BookingCommandsTestSuite) TestCommitIdempotency() {
	ctx := context.Background()
	req := builder.NewBookingBuilder().BuildCommitDTO()

	s.Run("正常系: 新しいキーは予約完了時に記録される", func() {
		key := uuid.New()

		s.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any(), s.clock.Now().Add(24*time.Hour)).
			Return(true, nil)
		s.roomsBookable(1)
		s.bookings.EXPECT().LockDays(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.reads.EXPECT().OccupancyFor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		s.expectWriteSucceeds()
		s.idempotency.EXPECT().Complete(gomock.Any(), gomock.Any(), key, s.userID, gomock.Len(4)).Return(nil)

		result, err := s.cmds.Commit(ctx, req, s.userID, &key)

		s.Require().NoError(err)
		s.False(result.IsReplayed)
	})

	s.Run("正常系: 完了済みのキーは同じ予約IDを返す", func() {
		key := uuid.New()
		previous := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

		var hash string
		s.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
				hash = requestHash
				return false, nil
			})
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{
					Key:         key,
					UserID:      s.userID,
					Status:      shared.IdempotencyCompleted,
					RequestHash: hash,
					BookingIDs:  previous,
					ExpiresAt:   s.clock.Now().Add(time.Hour),
				}, nil
			})

		result, err := s.cmds.Commit(ctx, req, s.userID, &key)

		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(previous, result.BookingIDs)
	})

	s.Run("異常系: 異なるリクエストでのキー再利用", func() {
		key := uuid.New()

		s.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).
			Return(&shared.IdempotencyRecord{
				Status:      shared.IdempotencyCompleted,
				RequestHash: "another-request",
				BookingIDs:  []uuid.UUID{uuid.New()},
				ExpiresAt:   s.clock.Now().Add(time.Hour),
			}, nil)

		_, err := s.cmds.Commit(ctx, req, s.userID, &key)

		s.True(errs.Is(err, errs.ErrValidation))
		s.True(errs.Is(err, commands.ErrIdempotencyKeyReused))
	})

	s.Run("異常系: 処理中のキーは衝突", func() {
		key := uuid.New()

		var hash string
		s.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, _, _ uuid.UUID, _, requestHash string, _ time.Time) (bool, error) {
				hash = requestHash
				return false, nil
			})
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).
			DoAndReturn(func(context.Context, uuid.UUID, uuid.UUID) (*shared.IdempotencyRecord, error) {
				return &shared.IdempotencyRecord{
					Status:      shared.IdempotencyProcessing,
					RequestHash: hash,
					ExpiresAt:   s.clock.Now().Add(time.Hour),
				}, nil
			})

		_, err := s.cmds.Commit(ctx, req, s.userID, &key)

		s.True(errs.Is(err, errs.ErrConflict))
		s.True(errs.Is(err, commands.ErrIdempotencyInProgress))
	})

	s.Run("正常系: 期限切れのキーは再取得して処理する", func() {
		key := uuid.New()

		s.idempotency.EXPECT().TryInsert(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, nil)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, s.userID).
			Return(&shared.IdempotencyRecord{
				Status:      shared.IdempotencyCompleted,
				RequestHash: "stale",
				BookingIDs:  []uuid.UUID{uuid.New()},
				ExpiresAt:   s.clock.Now().Add(-time.Minute),
			}, nil)
		s.idempotency.EXPECT().ClaimExpired(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any(), gomock.Any()).
			Return(true, nil)
		s.roomsBookable(1)
		s.bookings.EXPECT().LockDays(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.reads.EXPECT().OccupancyFor(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		s.expectWriteSucceeds()
		s.idempotency.EXPECT().Complete(gomock.Any(), gomock.Any(), key, s.userID, gomock.Any()).Return(nil)

		result, err := s.cmds.Commit(ctx, req, s.userID, &key)

		s.Require().NoError(err)
		s.False(result.IsReplayed)
	})
}
