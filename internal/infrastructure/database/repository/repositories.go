package repository

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles all repositories over one pool
type Repositories struct {
	Reports  *ReportRepository
	Analyses *AnalysisRepository
}

// New creates all repositories
func New(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Reports:  NewReportRepository(pool),
		Analyses: NewAnalysisRepository(pool),
	}
}
