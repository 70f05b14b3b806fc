package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/healthcoach/internal/assessment"
	"github.com/mmynk/healthcoach/internal/auth"
	"github.com/mmynk/healthcoach/internal/config"
	"github.com/mmynk/healthcoach/internal/encryption"
	"github.com/mmynk/healthcoach/internal/events"
	"github.com/mmynk/healthcoach/internal/jobs"
	"github.com/mmynk/healthcoach/internal/mailer"
	"github.com/mmynk/healthcoach/internal/middleware"
	"github.com/mmynk/healthcoach/internal/service"
	"github.com/mmynk/healthcoach/internal/storage/sqlite"
	"github.com/mmynk/healthcoach/pkg/logging"
)

const (
	// Confirmation attempts allowed per reset token.
	resetAttempts = 5
	resetWindow   = 15 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	sealer, err := encryption.NewSealer(cfg.Storage.EncryptionKey)
	if err != nil {
		return fmt.Errorf("encryption: %w", err)
	}

	if dir := filepath.Dir(cfg.Storage.DBPath); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	store, err := sqlite.New(cfg.Storage.DBPath, sealer)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "database", cfg.Storage.DBPath)

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	if cfg.Bootstrap.AdminEmail != "" && cfg.Bootstrap.AdminPassword != "" {
		created, err := authenticator.EnsureAdmin(ctx, cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminPassword)
		if err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
		if created {
			logger.Info("Admin account created", "email", auth.NormalizeEmail(cfg.Bootstrap.AdminEmail))
		}
	}

	var m mailer.Mailer = mailer.NewLogMailer(logger)
	if cfg.Mail.ResendAPIKey != "" {
		m = mailer.NewResendMailer(cfg.Mail.ResendAPIKey, cfg.Mail.From)
		logger.Info("Email delivery enabled", "provider", "resend", "from", cfg.Mail.From)
	} else {
		logger.Warn("RESEND_API_KEY not set, emails will only be logged")
	}

	var assessor service.Assessor
	if cfg.AI.BaseURL != "" {
		assessor = assessment.NewClient(cfg.AI.BaseURL, cfg.AI.APIKey, cfg.AI.Model)
		logger.Info("Assessments enabled", "model", cfg.AI.Model)
	} else {
		logger.Warn("AI_BASE_URL not set, assessments are disabled")
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Events.AMQPURL != "" {
		amqpPublisher := events.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Queue, logger)
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		logger.Info("Record events enabled", "queue", cfg.Events.Queue)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(registry)
	resetLimiter := middleware.NewKeyedLimiter(resetAttempts, resetWindow)

	mux := http.NewServeMux()
	service.Mount(mux, service.Handlers{
		Auth:       service.NewAuthService(authenticator, auth.NewResetTokens(store), store, jwtManager, m, cfg.Auth.AppURL, logger),
		Profile:    service.NewProfileService(store, logger),
		Records:    service.NewRecordService(store, publisher, logger),
		Metrics:    service.NewMetricsService(logger),
		Assessment: service.NewAssessmentService(store, assessor, logger),
		Admin:      service.NewAdminService(store, authenticator, m, cfg.Auth.AppURL, logger),
	}, jwtManager, resetLimiter,
		middleware.LoggingInterceptor(logger),
		metrics.Interceptor(),
	)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if cfg.HTTP.MetricsEnabled {
		mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	housekeeping := jobs.NewHousekeeping(store, logger, registry, resetLimiter)
	scheduler, err := jobs.Schedule(cfg.Jobs.HousekeepingSchedule, housekeeping, cfg.Jobs.HousekeepingTimeout, logger)
	if err != nil {
		return err
	}
	scheduler.Start()

	handler := corsMiddleware(cfg.HTTP.AllowedOrigins(), mux)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      h2c.NewHandler(handler, &http2.Server{}),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
