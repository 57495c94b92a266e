package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OsamaGad1990/tactic-fieldops-api/docs"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/cache"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/config"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/database"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/http/handler"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/http/middleware"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/http/router"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/jobs"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/logger"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/repository"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/service"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/sessionwarehouse"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/storage"
	"go.uber.org/zap"
)

// reportWarmupTimeout bounds one full warmup run across all tenants.
const reportWarmupTimeout = 10 * time.Minute

// @title Tactic FieldOps API
// @version 1.0
// @description Multi-tenant field operations admin API: broadcast notifications, off-route visit requests, and visit KPI reporting

// @contact.name API Support
// @contact.email support@tactic.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "fieldops-staging.tactic.local"
	case "production":
		docs.SwaggerInfo.Host = "fieldops.tactic.local"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize attachment storage
	attachmentStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize session warehouse connection (optional - for work-time KPIs)
	// This connection is read-only and the app continues without it if not configured
	var sessions *sessionwarehouse.Client
	if cfg.SessionWarehouse.Enabled {
		sessions, err = sessionwarehouse.NewClient(&cfg.SessionWarehouse, log)
		if err != nil {
			// Log error but don't fail - the session warehouse is optional
			log.Warn("Session warehouse connection failed, continuing without it",
				zap.Error(err),
			)
		} else if sessions != nil {
			log.Info("Session warehouse connected successfully",
				zap.Int("max_open_conns", cfg.SessionWarehouse.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.SessionWarehouse.QueryTimeout),
			)
		}
	} else {
		log.Info("Session warehouse not configured, skipping",
			zap.Bool("enabled", cfg.SessionWarehouse.Enabled),
		)
	}

	// Initialize the report cache (optional - reports are recomputed on miss)
	reportCache := cache.NewReportCache(&cfg.Redis, log)

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	visitRequestRepo := repository.NewVisitRequestRepository(db)

	// Initialize services
	rosterService := service.NewRosterService(userRepo, log)
	broadcastService := service.NewBroadcastService(notificationRepo, userRepo, attachmentStorage, log)
	visitRequestService := service.NewVisitRequestService(visitRequestRepo, notificationRepo, userRepo, log)
	visitReportService := service.NewVisitReportService(visitRepo, userRepo, sessions, reportCache, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(cfg, log)
	tenantFilterMiddleware := middleware.NewTenantFilterMiddleware(log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	rosterHandler := handler.NewRosterHandler(rosterService, log)
	broadcastHandler := handler.NewBroadcastHandler(broadcastService, cfg.Storage.MaxUploadSizeMB, log)
	visitRequestHandler := handler.NewVisitRequestHandler(visitRequestService, log)
	reportHandler := handler.NewReportHandler(visitReportService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		sessions,
		reportCache,
		authMiddleware,
		tenantFilterMiddleware,
		rateLimiter,
		rosterHandler,
		broadcastHandler,
		visitRequestHandler,
		reportHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.ReportWarmupEnabled {
		scheduler = jobs.NewScheduler(log)

		warmupJob := jobs.NewReportWarmupJob(tenantRepo, visitReportService, log, reportWarmupTimeout)
		if err := scheduler.AddJob(jobs.ReportWarmupJobName, cfg.Jobs.ReportWarmupSchedule, warmupJob.Run); err != nil {
			log.Error("Failed to register report warmup job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with report warmup job",
				zap.String("cron_expr", cfg.Jobs.ReportWarmupSchedule),
				zap.Duration("timeout", reportWarmupTimeout),
			)
		}
	} else {
		log.Info("Report warmup disabled",
			zap.Bool("enabled", cfg.Jobs.ReportWarmupEnabled),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close optional connections if initialized
		if sessions != nil {
			if err := sessions.Close(); err != nil {
				log.Warn("Error closing session warehouse connection", zap.Error(err))
			}
		}
		if err := reportCache.Close(); err != nil {
			log.Warn("Error closing report cache connection", zap.Error(err))
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
