package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pratododia/cardapio-backend/api/responses"
	pkgAuth "github.com/pratododia/cardapio-backend/pkg/auth"
	"github.com/pratododia/cardapio-backend/pkg/auth/session"
	"github.com/pratododia/cardapio-backend/pkg/config"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/logger"
)

// AdminAuth validates the admin session cookie and seeds the request context.
// Every failure mode (missing cookie, bad signature, expired token, revoked
// session) answers the same UNAUTHORIZED.
func AdminAuth(cfg config.JWTConfig, verifier session.SessionChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(pkgAuth.SessionCookieName)
			if err != nil || strings.TrimSpace(cookie.Value) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, cookie.Value)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			if claims.ID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if verifier != nil {
				ok, err := verifier.HasSession(r.Context(), claims.ID)
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "validate session"))
					return
				}
				if !ok {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "session unavailable"))
					return
				}
			}

			ctx := context.WithValue(r.Context(), ctxSessionID, claims.ID)
			ctx = context.WithValue(ctx, ctxRole, claims.Role)

			if logg != nil {
				ctx = logg.WithSessionID(ctx, claims.ID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
