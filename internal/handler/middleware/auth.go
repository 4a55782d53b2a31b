package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/handler/httperr"
	"medoffice-booking/internal/pkg/cookie"
	"medoffice-booking/internal/pkg/errs"
	"medoffice-booking/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
	bearerPrefix   = "Bearer "
)

var (
	errTokenMissing       = errs.New("access token required")
	errInsufficientRole   = errs.New("insufficient permissions")
	errMissingAuthContext = errs.New("role checked before authentication")
)

// AuthMiddleware resolves the caller from the Authorization header or, for
// browser sessions, the access_token cookie.
type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{tokenValidator: tokenValidator}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		err := m.authenticate(c)
		switch {
		case errs.Is(err, errTokenMissing):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Access token required", nil)
			return
		case err != nil:
			slog.Warn("rejected access token", "path", c.FullPath(), "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired token", nil)
			return
		}
		c.Next()
	}
}

// OptionalAuth identifies the caller when it can. Public room listings use it
// so admins also see closed rooms; a bad token just means anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		_ = m.authenticate(c)
		c.Next()
	}
}

// RequireRoleAtLeast must run after RequireAuth.
func (m *AuthMiddleware) RequireRoleAtLeast(minRole user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
			return
		}
		if !role.AtLeast(minRole) {
			httperr.AbortWithError(c, http.StatusForbidden, errInsufficientRole, "Insufficient permissions", nil)
			return
		}
		c.Next()
	}
}

// authenticate stores the caller in the context on success.
func (m *AuthMiddleware) authenticate(c *gin.Context) error {
	token := extractToken(c)
	if token == "" {
		return errTokenMissing
	}

	userID, role, err := m.tokenValidator.ValidateToken(token)
	if err != nil {
		return err
	}

	c.Set(ctxUserIDKey, userID)
	c.Set(ctxUserRoleKey, role)
	return nil
}

// extractToken prefers an explicit Authorization header over the cookie, so
// an API client is never shadowed by a stale browser session.
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, bearerPrefix) {
		if token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)); token != "" {
			return token
		}
	}
	return cookie.GetAccessToken(c)
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	v, ok := c.Get(ctxUserRoleKey)
	if !ok {
		return "", false
	}
	role, ok := v.(user.Role)
	return role, ok
}
