package app

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/domain"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/handler"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	CarHandler     *handler.CarHandler
	BookingHandler *handler.BookingHandler
	SyncHandler    *handler.SyncHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	JWTSecret      string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators()

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())

	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	if deps.RedisClient != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.AuthMiddleware(deps.JWTSecret)

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
		}

		cars := v1.Group("/cars")
		{
			cars.GET("", deps.CarHandler.List)
			cars.GET("/:id", deps.CarHandler.Get)
			cars.GET("/:id/availability", deps.CarHandler.Availability)
			cars.DELETE("/:id", authRequired, deps.CarHandler.Delete)
		}

		bookings := v1.Group("/bookings", authRequired)
		{
			bookings.POST("", deps.BookingHandler.Create)
			bookings.GET("", deps.BookingHandler.List)
			bookings.GET("/:id", deps.BookingHandler.Get)
			bookings.POST("/:id/confirm", deps.BookingHandler.Confirm)
			bookings.POST("/:id/activate", deps.BookingHandler.Activate)
			bookings.POST("/:id/cancel", deps.BookingHandler.Cancel)
			bookings.POST("/:id/complete", deps.BookingHandler.Complete)
		}

		if deps.SyncHandler != nil {
			sync := v1.Group("/sync", authRequired)
			{
				sync.POST("/cars/pull", deps.SyncHandler.PullCars)
				sync.POST("/bookings/:id/push", deps.SyncHandler.PushBooking)
				sync.GET("/status", deps.SyncHandler.Status)
			}
		}
	}

	return router
}

// registerValidators adds the catalog enum validators used by binding tags.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("fueltype", func(fl validator.FieldLevel) bool {
		return domain.FuelType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("transmission", func(fl validator.FieldLevel) bool {
		return domain.Transmission(fl.Field().String()).IsValid()
	})
}
