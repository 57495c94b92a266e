package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/OsamaGad1990/tactic-fieldops-api/internal/auth"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/cache"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/config"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/database"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/http/handler"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/http/middleware"
	"github.com/OsamaGad1990/tactic-fieldops-api/internal/sessionwarehouse"

	_ "github.com/OsamaGad1990/tactic-fieldops-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg                    *config.Config
	logger                 *zap.Logger
	db                     *gorm.DB
	sessions               *sessionwarehouse.Client
	reportCache            *cache.ReportCache
	authMiddleware         *auth.Middleware
	tenantFilterMiddleware *middleware.TenantFilterMiddleware
	rateLimiter            *middleware.RateLimiter
	rosterHandler          *handler.RosterHandler
	broadcastHandler       *handler.BroadcastHandler
	visitRequestHandler    *handler.VisitRequestHandler
	reportHandler          *handler.ReportHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	sessions *sessionwarehouse.Client,
	reportCache *cache.ReportCache,
	authMiddleware *auth.Middleware,
	tenantFilterMiddleware *middleware.TenantFilterMiddleware,
	rateLimiter *middleware.RateLimiter,
	rosterHandler *handler.RosterHandler,
	broadcastHandler *handler.BroadcastHandler,
	visitRequestHandler *handler.VisitRequestHandler,
	reportHandler *handler.ReportHandler,
) *Router {
	return &Router{
		cfg:                    cfg,
		logger:                 logger,
		db:                     db,
		sessions:               sessions,
		reportCache:            reportCache,
		authMiddleware:         authMiddleware,
		tenantFilterMiddleware: tenantFilterMiddleware,
		rateLimiter:            rateLimiter,
		rosterHandler:          rosterHandler,
		broadcastHandler:       broadcastHandler,
		visitRequestHandler:    visitRequestHandler,
		reportHandler:          reportHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP) // Apply IP-based rate limiting globally

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
				"max_idle_closed":      stats.MaxIdleClosed,
				"max_lifetime_closed":  stats.MaxLifetimeClosed,
			},
		})
	})

	// Combined readiness check. The session warehouse and report cache are
	// optional dependencies: their state is reported but never fails readiness.
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		// Check database
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		// Check session warehouse (optional)
		warehouseStatus := rt.sessions.HealthCheck(r.Context())
		checks["session_warehouse"] = warehouseStatus

		// Check report cache (optional)
		checks["report_cache"] = map[string]interface{}{
			"status": rt.reportCache.HealthCheck(r.Context()),
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)
			r.Use(rt.tenantFilterMiddleware.Filter)

			// Recipient acknowledgements: any authenticated user may ack
			// broadcasts addressed to them.
			r.Post("/broadcasts/{id}/read", rt.broadcastHandler.MarkRead)
			r.Post("/broadcasts/{id}/actioned", rt.broadcastHandler.MarkActioned)

			// Admin portal surface
			r.Group(func(r chi.Router) {
				r.Use(rt.authMiddleware.RequireAdmin)

				r.Get("/roster", rt.rosterHandler.List)

				r.Route("/broadcasts", func(r chi.Router) {
					r.Post("/", rt.broadcastHandler.Send)
					r.Get("/", rt.broadcastHandler.List)
					r.Get("/{id}", rt.broadcastHandler.GetDetail)
					r.Get("/{id}/attachment", rt.broadcastHandler.DownloadAttachment)
				})

				r.Route("/visit-requests", func(r chi.Router) {
					r.Get("/", rt.visitRequestHandler.List)
					r.Post("/{id}/approve", rt.visitRequestHandler.Approve)
					r.Post("/{id}/reject", rt.visitRequestHandler.Reject)
				})

				r.Get("/reports/yesterday-visits", rt.reportHandler.YesterdayVisits)
			})
		})
	})

	return r
}
