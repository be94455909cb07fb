package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/pratododia/cardapio-backend/api/routes"
	internalauth "github.com/pratododia/cardapio-backend/internal/auth"
	"github.com/pratododia/cardapio-backend/internal/dishes"
	"github.com/pratododia/cardapio-backend/internal/orders"
	"github.com/pratododia/cardapio-backend/pkg/auth/session"
	"github.com/pratododia/cardapio-backend/pkg/config"
	"github.com/pratododia/cardapio-backend/pkg/db"
	"github.com/pratododia/cardapio-backend/pkg/events"
	"github.com/pratododia/cardapio-backend/pkg/logger"
	"github.com/pratododia/cardapio-backend/pkg/metrics"
	"github.com/pratododia/cardapio-backend/pkg/migrate"
	"github.com/pratododia/cardapio-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	orderMetrics := metrics.NewOrderMetrics(registry)

	publisher := events.NewRedisPublisher(redisClient)
	subscriber := events.NewSubscriber(redisClient, logg)

	dishesService, err := dishes.NewService(dishes.NewRepository(dbClient.DB()), publisher, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create dishes service", err)
		os.Exit(1)
	}

	ordersRepo := orders.NewRepository(dbClient.DB())
	engine, err := orders.NewEngine(ordersRepo, dbClient, cfg.Orders)
	if err != nil {
		logg.Error(context.Background(), "failed to create stock engine", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(ordersRepo, engine, cfg.WhatsApp, publisher, orderMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	authService, err := internalauth.NewService(cfg.JWT, cfg.Admin, sessionManager, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:        cfg,
			Logger:        logg,
			DB:            dbClient,
			Redis:         redisClient,
			Sessions:      sessionManager,
			AuthService:   authService,
			DishesService: dishesService,
			OrdersService: ordersService,
			MenuStream:    subscriber,
			Metrics:       registry,
		}),
	}

	notifyCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-notifyCtx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}

	logg.Info(ctx, "api server stopped")
}
