//go:build unit

package jwt_test

import (
	"testing"
	"time"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/pkg/clock"
	"medoffice-booking/internal/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	issuedAt := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

	t.Run("正常系: 発行したトークンを検証できる", func(t *testing.T) {
		svc := jwt.NewService("secret", time.Hour, jwt.WithClock(clock.NewMockClock(issuedAt)))
		userID := uuid.New()

		token, err := svc.GenerateToken(userID, user.RoleAdmin)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "admin", claims.Role)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("異常系: 有効期限を過ぎたトークンは期限切れ", func(t *testing.T) {
		clk := clock.NewMockClock(issuedAt)
		svc := jwt.NewService("secret", time.Hour, jwt.WithClock(clk))

		token, err := svc.GenerateToken(uuid.New(), user.RoleMember)
		require.NoError(t, err)

		clk.Add(time.Hour + time.Second)
		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	})

	t.Run("異常系: 別の鍵で署名されたトークンは無効", func(t *testing.T) {
		token, err := jwt.NewService("other", time.Hour).GenerateToken(uuid.New(), user.RoleMember)
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("異常系: subjectとuser_idが食い違うトークンは無効", func(t *testing.T) {
		now := time.Now()
		forged := gojwt.NewWithClaims(gojwt.SigningMethodHS256, jwt.Claims{
			UserID: uuid.New(),
			Role:   "admin",
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "medoffice-booking",
				Audience:  gojwt.ClaimStrings{"medoffice-api"},
				Subject:   uuid.NewString(),
				ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
			},
		})
		token, err := forged.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})

	t.Run("異常系: HS256以外のアルゴリズムは拒否", func(t *testing.T) {
		userID := uuid.New()
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, jwt.Claims{
			UserID: userID,
			Role:   "member",
			RegisteredClaims: gojwt.RegisteredClaims{
				Issuer:    "medoffice-booking",
				Audience:  gojwt.ClaimStrings{"medoffice-api"},
				Subject:   userID.String(),
				ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = jwt.NewService("secret", time.Hour).ValidateToken(token)
		assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	})
}
