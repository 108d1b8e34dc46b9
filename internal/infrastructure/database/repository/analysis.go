package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"profileguard/internal/domain/models"
)

// AnalysisRepository persists completed profile analyses
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new analysis repository
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

// SaveAnalysis inserts an analysis record
func (r *AnalysisRepository) SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}

	query := `
		INSERT INTO analyses (
			id, username, platform, final_score, risk_level,
			data_source, result, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`

	_, err := r.pool.Exec(ctx, query,
		record.ID, record.Username, record.Platform, record.FinalScore,
		record.RiskLevel, record.DataSource, record.Result, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// List retrieves analyses newest first
func (r *AnalysisRepository) List(ctx context.Context, limit, offset int) ([]*models.AnalysisRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, username, platform, final_score, risk_level,
		       data_source, result, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var records []*models.AnalysisRecord
	for rows.Next() {
		var rec models.AnalysisRecord
		if err := rows.Scan(
			&rec.ID, &rec.Username, &rec.Platform, &rec.FinalScore,
			&rec.RiskLevel, &rec.DataSource, &rec.Result, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}

// Statistics aggregates historical analyses by risk tier
func (r *AnalysisRepository) Statistics(ctx context.Context) (models.Statistics, error) {
	stats := models.Statistics{
		RiskCounts: make(map[models.RiskLevel]int64),
	}

	query := `
		SELECT COALESCE(COUNT(*), 0), COALESCE(AVG(final_score), 0)
		FROM analyses`
	if err := r.pool.QueryRow(ctx, query).Scan(&stats.TotalAnalyses, &stats.AverageScore); err != nil {
		return stats, fmt.Errorf("failed to aggregate analyses: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT risk_level, COUNT(*)
		FROM analyses
		GROUP BY risk_level`)
	if err != nil {
		return stats, fmt.Errorf("failed to count by risk level: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			level models.RiskLevel
			count int64
		)
		if err := rows.Scan(&level, &count); err != nil {
			return stats, fmt.Errorf("failed to scan risk count: %w", err)
		}
		stats.RiskCounts[level] = count
	}

	return stats, rows.Err()
}
