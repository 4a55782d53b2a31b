package cookie

import (
	"net/http"
	"time"

	"medoffice-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookieName = "access_token"
	// the session is only ever read by the JSON API
	cookiePath = "/api"
)

// SetAccessToken stores the session token in an HttpOnly cookie that expires
// together with the token.
func SetAccessToken(c *gin.Context, cfg config.CookieConfig, token string, ttl time.Duration) {
	http.SetCookie(c.Writer, newCookie(cfg, token, int(ttl.Seconds())))
}

// ClearAccessToken expires the session cookie immediately.
func ClearAccessToken(c *gin.Context, cfg config.CookieConfig) {
	http.SetCookie(c.Writer, newCookie(cfg, "", -1))
}

func GetAccessToken(c *gin.Context) string {
	token, err := c.Cookie(AccessTokenCookieName)
	if err != nil {
		return ""
	}
	return token
}

func newCookie(cfg config.CookieConfig, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     AccessTokenCookieName,
		Value:    value,
		Path:     cookiePath,
		Domain:   cfg.Domain,
		MaxAge:   maxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(cfg.SameSite),
	}
}

func sameSite(v string) http.SameSite {
	switch v {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
