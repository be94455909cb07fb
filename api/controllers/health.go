package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/pratododia/cardapio-backend/api/responses"
	"github.com/pratododia/cardapio-backend/pkg/config"
	pkgerrors "github.com/pratododia/cardapio-backend/pkg/errors"
	"github.com/pratododia/cardapio-backend/pkg/logger"
)

// Pinger is the readiness surface a datasource exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cardapio-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the datasources; any failure answers 503.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Cardapio-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]string{}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				checks["database"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.database", err)
				}
			} else {
				checks["database"] = "up"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				checks["redis"] = "down"
				healthy = false
				if logg != nil {
					logg.Error(ctx, "health.redis", err)
				}
			} else {
				checks["redis"] = "up"
			}
		}

		if !healthy {
			responses.WriteError(r.Context(), nil, w,
				pkgerrors.New(pkgerrors.CodeDependency, "dependencies unavailable").WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
