package handlers

import (
	"profileguard/internal/domain/services"
	"profileguard/internal/infrastructure/cache"
	"profileguard/internal/infrastructure/database/repository"
	"profileguard/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Analysis *AnalysisHandler
	Reports  *ReportsHandler
	Stats    *StatsHandler
	Model    *ModelHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Analyzer *services.Analyzer
	Auditor  *services.ManualAuditor
	Scanner  *services.MessageScanner
	Scorer   *services.Scorer
	Cache    *cache.RedisCache
	Repos    *repository.Repositories
	Logger   *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.Repos, deps.Logger),
		Analysis: NewAnalysisHandler(deps.Analyzer, deps.Auditor, deps.Scanner, deps.Logger),
		Reports:  NewReportsHandler(deps.Repos, deps.Cache, deps.Logger),
		Stats:    NewStatsHandler(deps.Repos, deps.Logger),
		Model:    NewModelHandler(deps.Scorer, deps.Logger),
	}
}
