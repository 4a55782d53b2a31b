//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/queries"
	"medoffice-booking/tests/common/builder"
	queriesmock "medoffice-booking/tests/mock/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRoomQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("一覧: 既定では利用可能な部屋のみ", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRoomReadStore(ctrl)
		rooms := []*queries.RoomView{builder.NewRoomBuilder().BuildReadModel()}
		store.EXPECT().List(gomock.Any(), true).Return(rooms, nil)

		got, err := queries.NewRoomQueries(store).List(ctx, false)

		require.NoError(t, err)
		assert.Equal(t, rooms, got)
	})

	t.Run("一覧: 停止中も含める", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRoomReadStore(ctrl)
		store.EXPECT().List(gomock.Any(), false).Return(nil, errors.New("timeout"))

		_, err := queries.NewRoomQueries(store).List(ctx, true)

		assert.True(t, errs.Is(err, errs.ErrStorageUnavailable))
	})

	t.Run("取得: 存在しない部屋はNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRoomReadStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), 9).Return(nil, infra.WrapRepoErr("find room", nil, infra.KindNotFound))

		_, err := queries.NewRoomQueries(store).Get(ctx, 9)

		assert.True(t, errs.Is(err, errs.ErrNotFound))
		assert.True(t, errs.Is(err, queries.ErrRoomNotFound))
	})
}
