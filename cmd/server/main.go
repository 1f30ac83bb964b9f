package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"driverpay/internal/app"
	"driverpay/internal/config"
	"driverpay/internal/handler"
	"driverpay/internal/logger"
	internalRedis "driverpay/internal/redis"
	"driverpay/internal/repository/postgres"
	"driverpay/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		var err error
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			logger.Warn("failed to initialize New Relic", zap.Error(err))
			nrApp = nil
		} else {
			logger.Info("New Relic enabled", zap.String("app", cfg.NewRelic.AppName))
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	logger.Info("connected to PostgreSQL", zap.String("database", cfg.Database.DBName))

	// Redis is optional: without it caching, locking and idempotency are off.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = app.NewRedisClient(ctx, cfg.Redis, nrApp)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
		}
	}

	server := wireServer(db, redisClient, nrApp, cfg)

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	logger.Info("server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Interfaces stay nil (not typed-nil) when Redis is off.
	var (
		cacheStore internalRedis.CacheStoreInterface
		lockStore  internalRedis.LockStoreInterface
		redisCheck handler.HealthCheck
	)
	if redisClient != nil {
		cacheStore = internalRedis.NewCacheStore(redisClient, cfg.Redis.DriverTTL, cfg.Redis.DashboardTTL)
		lockStore = internalRedis.NewLockStore(redisClient)
		redisCheck = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	store := postgres.NewStore(db)

	// Initialize services.
	driverService := service.NewDriverService(store, cacheStore, lockStore)
	tripService := service.NewTripService(store, driverService, cacheStore)
	settlementService := service.NewSettlementService(store, cacheStore)
	dashboardService := service.NewDashboardService(store, cacheStore)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		DriverHandler:     handler.NewDriverHandler(driverService),
		TripHandler:       handler.NewTripHandler(tripService),
		SettlementHandler: handler.NewSettlementHandler(settlementService),
		DashboardHandler:  handler.NewDashboardHandler(dashboardService),
		HealthHandler: handler.NewHealthHandler(map[string]handler.HealthCheck{
			"postgres": db.PingContext,
			"redis":    redisCheck,
		}),
		CORS:        cfg.CORS,
		RedisClient: redisClient,
		NewRelicApp: nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
