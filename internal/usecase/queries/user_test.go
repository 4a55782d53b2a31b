//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/infra"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase/queries"
	"medoffice-booking/internal/usecase/shared"
	"medoffice-booking/tests/common/builder"
	queriesmock "medoffice-booking/tests/mock/queries"
	sharedmock "medoffice-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserQueries_GetCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		view := builder.NewUserBuilder().BuildReadModel()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		got, err := queries.NewUserQueries(store).GetCurrentUser(ctx, view.ID, user.RoleMember)

		require.NoError(t, err)
		assert.Equal(t, view, got)
	})

	t.Run("異常系: 削除済みユーザーは認証エラー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, infra.WrapRepoErr("find user", nil, infra.KindNotFound))

		_, err := queries.NewUserQueries(store).GetCurrentUser(ctx, uuid.New(), user.RoleMember)

		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("異常系: トークン発行後にロールが変わったら認証エラー", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		view := builder.NewUserBuilder().BuildReadModel()
		store.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := queries.NewUserQueries(store).GetCurrentUser(ctx, view.ID, user.RoleAdmin)

		assert.True(t, errs.Is(err, queries.ErrStaleRole))
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("異常系: DB障害はStorageUnavailable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockUserReadStore(ctrl)
		store.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, infra.WrapRepoErr("find user", errors.New("connection reset"), infra.KindDBFailure))

		_, err := queries.NewUserQueries(store).GetCurrentUser(ctx, uuid.New(), user.RoleMember)

		assert.True(t, errs.Is(err, errs.ErrStorageUnavailable))
	})
}

func TestDraftQueries_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("異常系: 下書きなしはNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := sharedmock.NewMockDraftStore(ctrl)
		store.EXPECT().Load(gomock.Any(), gomock.Any()).Return(nil, shared.ErrDraftNotFound)

		_, err := queries.NewDraftQueries(store).Get(ctx, uuid.New())

		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}
