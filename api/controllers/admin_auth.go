package controllers

import (
	"net/http"

	"github.com/pratododia/cardapio-backend/api/responses"
	"github.com/pratododia/cardapio-backend/api/validators"
	"github.com/pratododia/cardapio-backend/internal/auth"
	pkgAuth "github.com/pratododia/cardapio-backend/pkg/auth"
	"github.com/pratododia/cardapio-backend/pkg/config"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/logger"
)

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLogin verifies the admin password and sets the session cookie.
func AdminLogin(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body adminLoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := svc.Login(r.Context(), body.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		http.SetCookie(w, pkgAuth.NewSessionCookie(token, cfg.JWT, cfg.App))
		responses.WriteSuccess(w, map[string]string{"status": "authenticated"})
	}
}

// AdminLogout revokes the redis session and clears the cookie. The cookie is
// cleared even when the token no longer parses.
func AdminLogout(svc auth.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		token := ""
		if cookie, err := r.Cookie(pkgAuth.SessionCookieName); err == nil {
			token = cookie.Value
		}

		if err := svc.Logout(r.Context(), token); err != nil && logg != nil {
			logg.Error(r.Context(), "revoke admin session", err)
		}

		http.SetCookie(w, pkgAuth.ClearSessionCookie(cfg.App))
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
