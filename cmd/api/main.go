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

	"github.com/vidamais/portal-api/internal/config"
	"github.com/vidamais/portal-api/internal/email"
	"github.com/vidamais/portal-api/internal/handler"
	appointmentHandler "github.com/vidamais/portal-api/internal/handler/appointment"
	auditHandler "github.com/vidamais/portal-api/internal/handler/audit"
	authHandler "github.com/vidamais/portal-api/internal/handler/auth"
	billingHandler "github.com/vidamais/portal-api/internal/handler/billing"
	patientHandler "github.com/vidamais/portal-api/internal/handler/patient"
	recordHandler "github.com/vidamais/portal-api/internal/handler/record"
	"github.com/vidamais/portal-api/internal/middleware"
	"github.com/vidamais/portal-api/internal/model"
	"github.com/vidamais/portal-api/internal/repository/memory"
	"github.com/vidamais/portal-api/internal/router"
	"github.com/vidamais/portal-api/internal/seed"
	"github.com/vidamais/portal-api/internal/service/access"
	appointmentService "github.com/vidamais/portal-api/internal/service/appointment"
	"github.com/vidamais/portal-api/internal/service/audit"
	authService "github.com/vidamais/portal-api/internal/service/auth"
	billingService "github.com/vidamais/portal-api/internal/service/billing"
	"github.com/vidamais/portal-api/internal/service/notification"
	patientService "github.com/vidamais/portal-api/internal/service/patient"
	recordService "github.com/vidamais/portal-api/internal/service/record"
	pkgauth "github.com/vidamais/portal-api/pkg/auth"
	"github.com/vidamais/portal-api/pkg/logger"
	"github.com/vidamais/portal-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.Setup(cfg.Logging)

	model.RegisterValidations()

	// Initialize in-memory stores
	patientRepo := memory.NewPatientRepository()
	appointmentRepo := memory.NewAppointmentRepository()
	invoiceRepo := memory.NewInvoiceRepository()
	recordRepo := memory.NewMedicalRecordRepository()

	if cfg.Seed.Enabled {
		if err := seed.Load(context.Background(), seed.Stores{
			Patients:     patientRepo,
			Appointments: appointmentRepo,
			Invoices:     invoiceRepo,
			Records:      recordRepo,
		}); err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	// Initialize core services
	appMetrics := metrics.NewMetrics("vidamais", "portal")
	auditor := audit.NewService(appLogger)
	policy := access.NewPolicy(appMetrics)

	var emailSvc email.Service
	if cfg.SMTP.Host != "" {
		emailSvc = email.NewSMTPService(cfg.SMTP)
	} else {
		emailSvc = email.NewNoopService()
	}
	notifSvc := notification.NewService(patientRepo, emailSvc)

	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	authSvc := authService.NewService(patientRepo, jwtSvc, auditor)
	appointmentSvc := appointmentService.NewService(appointmentRepo, policy, notifSvc, auditor, appMetrics)
	billingSvc := billingService.NewService(invoiceRepo, policy, auditor, nil)
	recordSvc := recordService.NewService(recordRepo, policy, auditor)
	patientSvc := patientService.NewService(patientRepo, policy, auditor)

	// Initialize middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc, cfg.JWT.ClaimsCache)

	h := handler.NewHandler()
	authH := authHandler.NewHandler(authSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc)
	billingH := billingHandler.NewHandler(billingSvc)
	recordH := recordHandler.NewHandler(recordSvc)
	patientH := patientHandler.NewHandler(patientSvc, auditor)
	auditH := auditHandler.NewHandler(auditor)

	// Setup router
	r := router.NewRouter(
		authMiddleware,
		authH,
		appointmentH,
		billingH,
		recordH,
		patientH,
		auditH,
		h,
		router.Config{
			RateLimit:     rate.Limit(cfg.RateLimit.RPS),
			RateBurst:     cfg.RateLimit.Burst,
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "portal_api",
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Start server
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting portal API")
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
