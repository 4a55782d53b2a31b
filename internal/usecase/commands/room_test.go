//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"medoffice-booking/internal/domain/room"
	"medoffice-booking/internal/domain/user"
	reqdto "medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/commands"
	"medoffice-booking/internal/usecase/shared"
	sharedmock "medoffice-booking/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRoomCommands_Create(t *testing.T) {
	ctx := context.Background()
	req := reqdto.CreateRoomRequest{Name: "Room 4"}

	setup := func(t *testing.T) (commands.RoomCommands, *sharedmock.MockRoomRepository) {
		ctrl := gomock.NewController(t)
		uow := sharedmock.NewMockUnitOfWork(ctrl)
		tx := sharedmock.NewMockTx(ctrl)
		rooms := sharedmock.NewMockRoomRepository(ctrl)

		uow.EXPECT().Within(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
				return fn(ctx, tx)
			}).AnyTimes()
		tx.EXPECT().Rooms().Return(rooms).AnyTimes()
		tx.EXPECT().DB().Return(nil).AnyTimes()

		clk := clock.NewMockClock(time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC))
		return commands.NewRoomCommands(uow, clk), rooms
	}

	t.Run("正常系: 管理者は部屋を作成できる", func(t *testing.T) {
		cmds, rooms := setup(t)
		rooms.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, r *room.Room) (int, error) {
				assert.Equal(t, "Room 4", r.Name())
				assert.True(t, r.IsAvailable())
				return 4, nil
			})

		id, err := cmds.Create(ctx, req, user.RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, 4, id)
	})

	t.Run("異常系: 一般会員は作成できない", func(t *testing.T) {
		cmds, _ := setup(t)

		_, err := cmds.Create(ctx, req, user.RoleMember)

		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("異常系: 部屋名の重複", func(t *testing.T) {
		cmds, rooms := setup(t)
		rooms.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(0, infra.WrapRepoErr("create room", errors.New("duplicate"), infra.KindDuplicateKey))

		_, err := cmds.Create(ctx, req, user.RoleAdmin)

		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.True(t, errs.Is(err, commands.ErrRoomNameTaken))
	})

	t.Run("異常系: 空の部屋名は検証エラー", func(t *testing.T) {
		cmds, _ := setup(t)

		_, err := cmds.Create(ctx, reqdto.CreateRoomRequest{Name: "  "}, user.RoleAdmin)

		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}
