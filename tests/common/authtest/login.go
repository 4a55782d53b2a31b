//go:build unit || e2e

package authtest

import (
	"net/http"
	"strings"
	"testing"

	"medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/handler/dto/response"
	"medoffice-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	loginURL    = "/api/auth/login"
	registerURL = "/api/auth/register"
)

// Session is a signed-in caller as the API sees them.
type Session struct {
	UserID uuid.UUID
	Token  string
}

// LoginUser signs in and returns the access token from the session cookie.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, loginURL,
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, cookie, "login did not set access_token")
	require.NotEmpty(t, cookie.Value)
	return cookie.Value
}

// RegisterAndLogin goes through the public signup path, so the account gets
// the member role and a bcrypt hash exactly as a real tenant would.
func RegisterAndLogin(t *testing.T, router *gin.Engine, email, password string) Session {
	t.Helper()

	local, _, _ := strings.Cut(email, "@")
	w := httptest.PerformRequest(t, router, http.MethodPost, registerURL, request.RegisterRequest{
		FirstName: local,
		LastName:  "Tenant",
		Email:     email,
		Password:  password,
	}, "")

	var registered response.RegisterResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &registered)
	require.NotEqual(t, uuid.Nil, registered.ID)

	return Session{UserID: registered.ID, Token: LoginUser(t, router, email, password)}
}
