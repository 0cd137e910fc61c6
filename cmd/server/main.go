package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/app"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/config"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/erp"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/handler"
	internalRedis "github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/redis"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/repository/postgres"
	"github.com/ELHADJAMORMAHDI/Location-voiture-web/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	server := wireServer(db, redisClient, nrApp, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Repositories.
	carRepo := postgres.NewCarRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	availabilityRepo := postgres.NewAvailabilityRepository(db)

	// Services.
	notificationService := service.NewNotificationService()
	availabilityService := service.NewAvailabilityService(bookingRepo, availabilityRepo)
	bookingService := service.NewBookingService(db, bookingRepo, customerRepo, carRepo, availabilityService, lockStore, notificationService)
	carService := service.NewCarService(carRepo, cacheStore)
	authService := service.NewAuthService(customerRepo)

	// Handlers.
	authHandler := handler.NewAuthHandler(authService, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	carHandler := handler.NewCarHandler(carService, availabilityService)
	bookingHandler := handler.NewBookingHandler(bookingService)

	var syncHandler *handler.SyncHandler
	if cfg.ERP.Enabled {
		erpClient := erp.NewHTTPClient(cfg.ERP.BaseURL, cfg.ERP.APIKey, cfg.ERP.Timeout)
		syncService := service.NewSyncService(erpClient, carRepo, customerRepo, bookingRepo, cacheStore)
		syncHandler = handler.NewSyncHandler(syncService)
	}

	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    authHandler,
		CarHandler:     carHandler,
		BookingHandler: bookingHandler,
		SyncHandler:    syncHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
		JWTSecret:      cfg.Auth.JWTSecret,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
