package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"driverpay/internal/config"
	"driverpay/internal/handler"
	"driverpay/internal/middleware"
)

// ServiceName labels HTTP metrics.
const ServiceName = "driverpay"

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	DriverHandler     *handler.DriverHandler
	TripHandler       *handler.TripHandler
	SettlementHandler *handler.SettlementHandler
	DashboardHandler  *handler.DashboardHandler
	HealthHandler     *handler.HealthHandler
	CORS              config.CORSConfig
	RedisClient       *redis.Client
	NewRelicApp       *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(ServiceName))
	router.Use(middleware.CORS(deps.CORS))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	router.GET("/", deps.HealthHandler.Root)
	router.GET("/health", deps.HealthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		drivers := api.Group("/drivers")
		{
			drivers.GET("", deps.DriverHandler.List)
			drivers.POST("", deps.DriverHandler.Create)
			drivers.GET("/:id", deps.DriverHandler.Get)
			drivers.PUT("/:id", deps.DriverHandler.Update)
			drivers.DELETE("/:id", deps.DriverHandler.Delete)
		}

		trips := api.Group("/trips")
		{
			trips.GET("", deps.TripHandler.List)
			trips.POST("", deps.TripHandler.Create)
		}

		settlements := api.Group("/settlements")
		{
			settlements.GET("", deps.SettlementHandler.List)
			settlements.PUT("/:id/pay", deps.SettlementHandler.Pay)
		}

		api.GET("/history", deps.SettlementHandler.History)
		api.GET("/dashboard", deps.DashboardHandler.Get)
	}

	return router
}
