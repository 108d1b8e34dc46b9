package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"profileguard/internal/api"
	"profileguard/internal/api/handlers"
	"profileguard/internal/config"
	"profileguard/internal/domain/services"
	"profileguard/internal/infrastructure/cache"
	"profileguard/internal/infrastructure/database"
	"profileguard/internal/infrastructure/database/repository"
	"profileguard/internal/scrape"
	"profileguard/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadDefault()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var log *logger.Logger
	if cfg.App.Environment == "production" {
		log = logger.NewProduction()
	} else {
		log = logger.NewDevelopment()
	}
	logger.SetGlobal(log)

	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Environment).
		Str("version", cfg.App.Version).
		Msg("starting ProfileGuard")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize infrastructure
	db, redisCache := initInfrastructure(ctx, cfg, log)
	defer func() {
		if db != nil {
			db.Close()
		}
		if redisCache != nil {
			redisCache.Close()
		}
	}()

	// Initialize repositories
	var repos *repository.Repositories
	if db != nil {
		repos = repository.New(db.Pool())
		log.Info().Msg("repositories initialized with database")
	} else {
		log.Warn().Msg("running without database - reports and history unavailable")
	}

	// Load the classifier, falling back to heuristics when absent
	var classifier services.Classifier
	if cfg.ML.ModelPath != "" {
		fc, err := services.LoadForestClassifier(cfg.ML.ModelPath, log)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.ML.ModelPath).Msg("classifier not loaded, heuristic scoring active")
		} else {
			classifier = fc
			info := fc.Info()
			log.Info().
				Str("version", info.Version).
				Int("trees", info.NumTrees).
				Float64("accuracy", info.Accuracy).
				Msg("classifier loaded")
		}
	}

	// Initialize services
	extractor := services.NewFeatureExtractor(log)
	scorer := services.NewScorer(classifier, log)
	subscores := services.NewSubscoreAnalyzer()
	auditor := services.NewManualAuditor(log)
	scanner := services.NewMessageScanner(log)

	// Build the acquisition chain
	fetchers := []scrape.Fetcher{}
	if cfg.Scraper.Enabled {
		fetchers = append(fetchers, scrape.NewInstagramFetcher(scrape.InstagramConfig{
			RequestTimeout: cfg.Scraper.RequestTimeout,
			UserAgent:      cfg.Scraper.UserAgent,
			AppID:          cfg.Scraper.AppID,
		}, log))
	}
	fetchers = append(fetchers, scrape.NewSimulatedFetcher(log))
	chain := scrape.NewChain(log, fetchers...)

	analyzerDeps := services.AnalyzerDeps{
		Fetcher:   chain,
		Extractor: extractor,
		Scorer:    scorer,
		Subscores: subscores,
	}
	if repos != nil {
		analyzerDeps.Reports = repos.Reports
		analyzerDeps.History = repos.Analyses
	}
	if redisCache != nil {
		analyzerDeps.Cache = redisCache
	}
	analyzer := services.NewAnalyzer(analyzerDeps, log)

	// Initialize handlers
	h := handlers.NewHandlers(handlers.Dependencies{
		Analyzer: analyzer,
		Auditor:  auditor,
		Scanner:  scanner,
		Scorer:   scorer,
		Cache:    redisCache,
		Repos:    repos,
		Logger:   log,
	})

	// Create router
	router := api.NewRouter(*cfg, h, redisCache, log)
	httpHandler := router.Setup()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.HTTPPort),
		Handler:      httpHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", httpServer.Addr).
			Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("shutdown complete")
}

// initInfrastructure initializes database and cache connections. Both
// are optional; a failed connection is logged and the service runs
// degraded.
func initInfrastructure(ctx context.Context, cfg *config.Config, log *logger.Logger) (*database.PostgresDB, *cache.RedisCache) {
	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to PostgreSQL, continuing without database")
	}

	redisCache, err := cache.NewRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn().Err(err).Msg("failed to connect to Redis, continuing without cache")
		return db, nil
	}

	return db, redisCache
}
