package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pratododia/cardapio-backend/api/responses"
	"github.com/pratododia/cardapio-backend/pkg/config"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/logger"
)

// RateLimiterStore is the counter surface backing the fixed window.
type RateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// LoginRateLimit throttles login attempts per client IP with a fixed window.
func LoginRateLimit(cfg config.AuthRateLimitConfig, store RateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.LoginWindow <= 0 || cfg.LoginIPLimit <= 0 || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if ip == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := fmt.Sprintf("rl:ip:login:%s", ip)
			count, err := store.IncrWithTTL(ctx, key, cfg.LoginWindow)
			if err != nil {
				// Redis trouble must not lock admins out.
				if logg != nil {
					logg.Error(ctx, "login.rate_limit.store", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			if count > int64(cfg.LoginIPLimit) {
				if logg != nil {
					logCtx := logg.WithFields(ctx, map[string]any{
						"ip":             ip,
						"attempts":       count,
						"limit":          cfg.LoginIPLimit,
						"window_seconds": int(cfg.LoginWindow.Seconds()),
					})
					logg.Warn(logCtx, "login.rate_limit.blocked")
				}
				responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many login attempts"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
