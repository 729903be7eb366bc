package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/booking-api/internal/config"
	"github.com/jwalitptl/booking-api/internal/handler"
	availabilityHandler "github.com/jwalitptl/booking-api/internal/handler/availability"
	bookingHandler "github.com/jwalitptl/booking-api/internal/handler/booking"
	"github.com/jwalitptl/booking-api/internal/middleware"
	"github.com/jwalitptl/booking-api/internal/repository/postgres"
	"github.com/jwalitptl/booking-api/internal/router"
	availabilityService "github.com/jwalitptl/booking-api/internal/service/availability"
	bookingService "github.com/jwalitptl/booking-api/internal/service/booking"
	"github.com/jwalitptl/booking-api/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appLogger := logger.NewLogger(nil)

	// Repositories
	base := postgres.NewBaseRepository(db)
	serviceRepo := postgres.NewServiceRepository(base)
	technicianRepo := postgres.NewTechnicianRepository(base)
	hoursRepo := postgres.NewBusinessHoursRepository(base)
	timeOffRepo := postgres.NewTimeOffRepository(base)
	bookingRepo := postgres.NewBookingRepository(base)
	customerRepo := postgres.NewCustomerRepository(base)
	eventRepo := postgres.NewBookingEventRepository(base)

	// Services
	slotCache := availabilityService.NewCache(cfg.Availability.CacheTTL)
	availabilitySvc := availabilityService.NewService(
		serviceRepo,
		technicianRepo,
		hoursRepo,
		timeOffRepo,
		bookingRepo,
		slotCache,
		availabilityService.Config{
			SlotIntervalMinutes: cfg.Availability.SlotIntervalMinutes,
			CacheTTL:            cfg.Availability.CacheTTL,
		},
		appLogger,
	)
	bookingSvc := bookingService.NewService(
		bookingRepo,
		serviceRepo,
		customerRepo,
		eventRepo,
		slotCache,
		bookingService.Policy{
			CancellationNotice:  time.Duration(cfg.Booking.CancellationNoticeHours) * time.Hour,
			CancellationFeeRate: cfg.Booking.CancellationFeeRate,
			RescheduleNotice:    time.Duration(cfg.Booking.RescheduleNoticeHours) * time.Hour,
		},
		appLogger,
	)

	// Handlers
	h := handler.NewHandler()
	availabilityH := availabilityHandler.NewHandler(availabilitySvc)
	bookingH := bookingHandler.NewHandler(bookingSvc)

	r := router.NewRouter(availabilityH, bookingH, h, router.RouterConfig{
		RateLimit:      rate.Limit(50),
		RateBurst:      100,
		RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		CORSConfig:     middleware.DefaultCORSConfig(),
		MetricsPrefix:  "booking_api",
	})
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
