package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-folio/cache"
	"hotel-folio/config"
	"hotel-folio/controllers"
	"hotel-folio/events"
	"hotel-folio/routes"
	"hotel-folio/services"
	"hotel-folio/utils"
)

func main() {
	cfg := config.Load()

	log := utils.InitLogger(cfg.IsProduction())
	defer log.Sync()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	log.Info("database connected, migrations applied", zap.String("driver", cfg.DBDriver))

	// Redis and RabbitMQ are optional; the service runs without either.
	var rateCache services.RateCache
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, rate cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			rateCache = cache.NewRedisRateCache(client, cfg.RateCacheTTL)
			log.Info("rate cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.RateCacheTTL))
		}
	}

	var publisher services.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := events.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Warn("rabbitmq unavailable, booking events disabled", zap.Error(err))
		} else {
			defer pub.Close()
			publisher = pub
			log.Info("booking events enabled", zap.String("exchange", events.ExchangeName))
		}
	}

	roomTypeService := services.NewRoomTypeService(db, rateCache)
	roomService := services.NewRoomService(db)
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db, publisher)
	quoteService := services.NewQuoteService(roomTypeService)

	router := routes.SetupRouter(routes.Controllers{
		RoomTypes: controllers.NewRoomTypeController(roomTypeService),
		Rooms:     controllers.NewRoomController(roomService, availabilityService),
		Bookings:  controllers.NewBookingController(bookingService),
		Quotes:    controllers.NewQuoteController(quoteService),
		Reports:   controllers.NewReportController(bookingService),
	}, routes.Options{
		CorsOrigins:     cfg.CorsOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("server stopped gracefully")
}
