package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pratododia/cardapio-backend/api/controllers"
	"github.com/pratododia/cardapio-backend/api/middleware"
	"github.com/pratododia/cardapio-backend/internal/auth"
	"github.com/pratododia/cardapio-backend/internal/dishes"
	"github.com/pratododia/cardapio-backend/internal/orders"
	"github.com/pratododia/cardapio-backend/pkg/auth/session"
	"github.com/pratododia/cardapio-backend/pkg/config"
	"github.com/pratododia/cardapio-backend/pkg/db"
	"github.com/pratododia/cardapio-backend/pkg/logger"
	"github.com/pratododia/cardapio-backend/pkg/redis"
)

// Deps bundles everything the router needs wired in.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	DB            db.Pinger
	Redis         *redis.Client
	Sessions      session.SessionChecker
	AuthService   auth.Service
	DishesService dishes.Service
	OrdersService orders.Service
	MenuStream    controllers.MenuStreamSource
	Metrics       prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var redisPinger controllers.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.Menu(deps.DishesService, logg))
		r.Get("/menu/stream", controllers.MenuStream(deps.MenuStream, logg))
		r.Post("/orders", controllers.PlaceOrder(deps.OrdersService, logg))
	})

	var limiterStore middleware.RateLimiterStore
	if deps.Redis != nil {
		limiterStore = deps.Redis
	}

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.LoginRateLimit(cfg.AuthRateLimit, limiterStore, logg)).
				Post("/login", controllers.AdminLogin(deps.AuthService, cfg, logg))
			r.Post("/logout", controllers.AdminLogout(deps.AuthService, cfg, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, deps.Sessions, logg))
			r.Route("/dishes", func(r chi.Router) {
				r.Get("/", controllers.AdminListDishes(deps.DishesService, logg))
				r.Post("/", controllers.AdminCreateDish(deps.DishesService, logg))
				r.Delete("/{dishId}", controllers.AdminDeleteDish(deps.DishesService, logg))
				r.Patch("/{dishId}/active", controllers.AdminSetDishActive(deps.DishesService, logg))
			})
		})
	})

	return r
}
