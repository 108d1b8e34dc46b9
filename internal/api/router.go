package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"profileguard/internal/api/handlers"
	apimiddleware "profileguard/internal/api/middleware"
	"profileguard/internal/config"
	"profileguard/internal/infrastructure/cache"
	"profileguard/pkg/logger"
)

// Router holds dependencies for the API router
type Router struct {
	config   config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router instance
func NewRouter(cfg config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log.WithComponent("router"),
	}
}

// Setup sets up the Chi router with all routes and middleware
func (r *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Core middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(apimiddleware.Logger(r.logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.config.CORS.AllowedOrigins,
		AllowedMethods:   r.config.CORS.AllowedMethods,
		AllowedHeaders:   r.config.CORS.AllowedHeaders,
		AllowCredentials: r.config.CORS.AllowCredentials,
		MaxAge:           r.config.CORS.MaxAge,
	}))

	// Rate limiting
	if r.config.RateLimit.Enabled && r.cache != nil {
		router.Use(apimiddleware.RateLimiter(r.cache, r.config.RateLimit))
	}

	// Health checks
	router.Get("/health", r.handlers.Health.Check)
	router.Get("/ready", r.handlers.Health.Ready)

	// API v1 routes
	router.Route("/api/v1", func(api chi.Router) {
		// Profile analysis
		api.Post("/analyze", r.handlers.Analysis.Analyze)
		api.Post("/analyze/batch", r.handlers.Analysis.AnalyzeBatch)

		// Manual audit and message scanning
		api.Post("/manual", r.handlers.Analysis.AuditManual)
		api.Post("/message", r.handlers.Analysis.ScanMessage)

		// Community reports
		api.Post("/report", r.handlers.Reports.Submit)
		api.Get("/reports/recent", r.handlers.Reports.Recent)

		// History and statistics
		api.Get("/history", r.handlers.Stats.History)
		api.Get("/statistics", r.handlers.Stats.Statistics)

		// Classifier status
		api.Get("/model", r.handlers.Model.Info)
	})

	return router
}
