package auth

import (
	"net/http"
	"time"

	"github.com/pratododia/cardapio-backend/pkg/config"
)

// SessionCookieName is the cookie carrying the admin JWT.
const SessionCookieName = "auth_token"

// NewSessionCookie builds the admin session cookie. Secure is only enforced
// in prod so local HTTP development keeps working.
func NewSessionCookie(token string, jwtCfg config.JWTConfig, appCfg config.AppConfig) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(jwtCfg.SessionTTL() / time.Second),
		HttpOnly: true,
		Secure:   appCfg.IsProd(),
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearSessionCookie expires the admin session cookie immediately.
func ClearSessionCookie(appCfg config.AppConfig) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   appCfg.IsProd(),
		SameSite: http.SameSiteStrictMode,
	}
}
