//go:build unit

package usecase_test

import (
	"testing"
	"time"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/pkg/jwt"
	"medoffice-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidator(t *testing.T) {
	tokens := jwt.NewService("test-secret-key", time.Hour)
	validator := usecase.NewTokenValidator(tokens)
	userID := uuid.New()

	t.Run("有効なトークンからユーザーIDとロールを取り出せる", func(t *testing.T) {
		token, err := tokens.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		gotID, gotRole, err := validator.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, gotID)
		assert.Equal(t, user.RoleAdmin, gotRole)
	})

	t.Run("別の鍵で署名されたトークンは認証エラー", func(t *testing.T) {
		token, err := jwt.NewService("other-secret", time.Hour).GenerateToken(userID, user.RoleMember)
		require.NoError(t, err)

		_, _, err = validator.ValidateToken(token)
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("未知のロールを持つトークンは認証エラー", func(t *testing.T) {
		token, err := tokens.GenerateToken(userID, user.Role("receptionist"))
		require.NoError(t, err)

		_, _, err = validator.ValidateToken(token)
		assert.True(t, errs.Is(err, usecase.ErrTokenRole))
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})

	t.Run("改ざんされた文字列は認証エラー", func(t *testing.T) {
		_, _, err := validator.ValidateToken("not-a-jwt")
		assert.True(t, errs.Is(err, errs.ErrUnauthorized))
	})
}
