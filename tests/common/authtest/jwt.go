//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/pkg/config"
	"medoffice-booking/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens with the same secret the app under test verifies with.
type JWTHelper struct {
	secret   string
	duration time.Duration
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	duration, err := cfg.TokenDuration()
	if err != nil {
		duration = time.Hour
	}
	return &JWTHelper{secret: cfg.Secret, duration: duration}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return h.sign(t, h.secret, h.duration, userID, role)
}

// CreateExpiredToken signs a token whose expiry is already in the past.
func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return h.sign(t, h.secret, -time.Minute, userID, role)
}

// ForeignToken is well formed but signed with a key the app does not trust.
func (h *JWTHelper) ForeignToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	return h.sign(t, h.secret+"-foreign", h.duration, userID, role)
}

func (h *JWTHelper) sign(t *testing.T, secret string, ttl time.Duration, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(secret, ttl).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
