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

	"github.com/itsivali/careconnect-v1/internal/config"
	"github.com/itsivali/careconnect-v1/internal/email"
	"github.com/itsivali/careconnect-v1/internal/handler"
	appointmentHandler "github.com/itsivali/careconnect-v1/internal/handler/appointment"
	authHandler "github.com/itsivali/careconnect-v1/internal/handler/auth"
	billingHandler "github.com/itsivali/careconnect-v1/internal/handler/billing"
	catalogHandler "github.com/itsivali/careconnect-v1/internal/handler/catalog"
	doctorHandler "github.com/itsivali/careconnect-v1/internal/handler/doctor"
	patientHandler "github.com/itsivali/careconnect-v1/internal/handler/patient"
	"github.com/itsivali/careconnect-v1/internal/middleware"
	"github.com/itsivali/careconnect-v1/internal/repository/postgres"
	"github.com/itsivali/careconnect-v1/internal/router"
	appointmentService "github.com/itsivali/careconnect-v1/internal/service/appointment"
	authService "github.com/itsivali/careconnect-v1/internal/service/auth"
	billingService "github.com/itsivali/careconnect-v1/internal/service/billing"
	catalogService "github.com/itsivali/careconnect-v1/internal/service/catalog"
	doctorService "github.com/itsivali/careconnect-v1/internal/service/doctor"
	patientService "github.com/itsivali/careconnect-v1/internal/service/patient"
	"github.com/itsivali/careconnect-v1/pkg/auth"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := middleware.RegisterCustomValidators(); err != nil {
		log.Fatal().Err(err).Msg("failed to register validators")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Repositories
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	serviceRepo := postgres.NewServiceRepository(db)
	billRepo := postgres.NewBillRepository(db)
	adminRepo := postgres.NewAdminRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	tokenExpiry := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, tokenExpiry)
	emailSvc := email.NewSMTPService(cfg.SMTP)

	patientSvc := patientService.NewService(patientRepo, appointmentRepo)
	doctorSvc := doctorService.NewService(doctorRepo, appointmentRepo)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo, emailSvc)
	catalogSvc := catalogService.NewService(serviceRepo)
	billingSvc := billingService.NewService(billRepo, patientRepo, serviceRepo)
	authSvc := authService.NewService(patientRepo, adminRepo, jwtSvc, tokenExpiry)

	// HTTP layer
	authMW := middleware.NewAuthMiddleware(jwtSvc)
	r := router.New(
		authMW,
		authHandler.NewHandler(authSvc, patientSvc, outboxRepo),
		patientHandler.NewHandler(patientSvc, outboxRepo),
		doctorHandler.NewHandler(doctorSvc, outboxRepo),
		appointmentHandler.NewHandler(appointmentSvc, outboxRepo),
		catalogHandler.NewHandler(catalogSvc, outboxRepo),
		billingHandler.NewHandler(billingSvc, outboxRepo),
		handler.NewHandler(db),
		router.Config{
			RateLimit:     rate.Limit(100),
			RateBurst:     200,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "careconnect_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
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
