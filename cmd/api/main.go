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

	"github.com/mediagenda/booking-api/internal/config"
	"github.com/mediagenda/booking-api/internal/handler"
	appointmentHandler "github.com/mediagenda/booking-api/internal/handler/appointment"
	"github.com/mediagenda/booking-api/internal/middleware"
	"github.com/mediagenda/booking-api/internal/notification"
	"github.com/mediagenda/booking-api/internal/repository/memory"
	"github.com/mediagenda/booking-api/internal/router"
	bookingService "github.com/mediagenda/booking-api/internal/service/booking"
	"github.com/mediagenda/booking-api/pkg/logger"
	"github.com/mediagenda/booking-api/pkg/metrics"
	"github.com/mediagenda/booking-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := validator.RegisterBookingRules(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validation rules")
	}

	appLogger := logger.NewLogger(nil)
	appointmentRepo := memory.NewAppointmentRepository()

	var notifier notification.Notifier
	if cfg.SMTP.Configured() {
		notifier = notification.NewEmailNotifier(cfg.SMTP)
		log.Info().Str("host", cfg.SMTP.Host).Msg("confirmation emails enabled")
	} else {
		notifier = notification.NewLogNotifier(appLogger)
		log.Info().Msg("SMTP not configured, confirmation emails will be logged only")
	}

	m := metrics.NewMetrics("mediagenda")
	bookingSvc := bookingService.NewService(appointmentRepo, notifier, m)

	h := handler.NewHandler()
	aptHandler := appointmentHandler.NewHandler(bookingSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	}

	r := router.NewRouter(h, router.Config{
		RateLimit:     rate.Limit(cfg.Server.RateLimitRPS),
		RateBurst:     cfg.Server.RateLimitBurst,
		CORSConfig:    corsConfig,
		MetricsPrefix: "mediagenda_http",
	}, aptHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
