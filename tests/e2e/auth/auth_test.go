//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"medoffice-booking/internal/domain/user"
	"medoffice-booking/internal/handler/dto/request"
	"medoffice-booking/internal/handler/dto/response"
	"medoffice-booking/tests/common/authtest"
	"medoffice-booking/tests/common/dbtest"
	"medoffice-booking/tests/common/httptest"
	"medoffice-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	logoutURL   = "/api/auth/logout"
	meURL       = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", string(user.RoleAdmin))
	dbtest.CreateTestUser(s.T(), s.DB, "member@example.com", string(user.RoleMember))
}

func (s *authSuite) TestRegister() {
	s.Run("新規登録でmemberとして作成され、そのままログインできる", func() {
		t := s.T()

		reqBody := request.RegisterRequest{
			FirstName: "Hana",
			LastName:  "Sato",
			Email:     "hana@example.com",
			Password:  "correct-horse",
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var registered response.RegisterResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &registered)
		require.NotEqual(t, uuid.Nil, registered.ID)

		token := authtest.LoginUser(t, s.Router, "hana@example.com", "correct-horse")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		var me response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &me)
		require.Equal(t, registered.ID, me.ID)
		require.Equal(t, string(user.RoleMember), me.Role)
		require.False(t, me.HasBookings)
	})

	s.Run("登録済みのメールアドレスは409", func() {
		reqBody := request.RegisterRequest{
			FirstName: "Dup",
			LastName:  "User",
			Email:     "member@example.com",
			Password:  "password123",
		}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "")
	})

	s.Run("必須項目の欠落は400", func() {
		reqBody := map[string]any{"email": "nobody@example.com", "password": "password123"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, registerURL, reqBody, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "正常なログイン",
			email:          "admin@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
			description:    "有効な認証情報でログインできること",
		},
		{
			name:           "存在しないユーザー",
			email:          "nonexistent@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
			description:    "存在しないユーザーでログインできないこと",
		},
		{
			name:           "間違ったパスワード",
			email:          "admin@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			description:    "間違ったパスワードでログインできないこと",
		},
		{
			name:           "空のメールアドレス",
			email:          "",
			password:       "password123",
			expectedStatus: http.StatusBadRequest,
			description:    "空のメールアドレスは拒否されること",
		},
		{
			name:           "空のパスワード",
			email:          "admin@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
			description:    "空のパスワードは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				var res response.LoginResponse
				httptest.AssertSuccessResponse(t, w, http.StatusOK, &res)
				require.NotEmpty(t, res.AccessToken)
				require.Equal(t, "Bearer", res.TokenType)
				require.Equal(t, string(user.RoleAdmin), res.Role)

				cookie := httptest.ExtractCookie(w, "access_token")
				require.NotNil(t, cookie, "access_token cookie should be set")
				require.True(t, cookie.HttpOnly)
				require.Equal(t, res.AccessToken, cookie.Value)
			}
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("Authorizationヘッダーのトークンでユーザー情報を取得できる", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "member@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		var me response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &me)
		require.Equal(t, "member@example.com", me.Email)
		require.Equal(t, "Test", me.FirstName)
	})

	s.Run("Cookieのトークンでも認証できる", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "member@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		cookies := httptest.ExtractCookies(w)
		w = httptest.PerformRequestWithCookies(t, s.Router, http.MethodGet, meURL, nil, cookies, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("トークンなしは401", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "Access token required")
	})

	s.Run("期限切れトークンは401", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "expired@example.com", string(user.RoleMember))
		token := s.jwt.CreateExpiredToken(t, userID, user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("別の鍵で署名されたトークンは401", func() {
		t := s.T()
		userID := dbtest.CreateTestUser(t, s.DB, "foreign@example.com", string(user.RoleMember))
		token := s.jwt.ForeignToken(t, userID, user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid or expired token")
	})

	s.Run("削除済みユーザーのトークンは401", func() {
		t := s.T()
		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleMember)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Unauthorized")
	})
}

func (s *authSuite) TestLogout() {
	s.Run("ログアウトでCookieが削除される", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		cookie := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, cookie)
		require.Empty(t, cookie.Value)
	})

	s.Run("未認証のログアウトは401", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, logoutURL, nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}
