package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"profileguard/internal/domain/models"
)

// ReportRepository handles community report persistence
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Create inserts a new community report
func (r *ReportRepository) Create(ctx context.Context, report *models.CommunityReport) (*models.CommunityReport, error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	report.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO community_reports (
			id, username, platform, category, description, evidence,
			risk_level, reporter_ip, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		report.ID, report.Username, report.Platform, report.Category,
		report.Description, report.Evidence, report.RiskLevel,
		report.ReporterIP, report.CreatedAt,
	).Scan(&report.ID, &report.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	return report, nil
}

// SummaryForUsername aggregates the standing reports against a username
func (r *ReportRepository) SummaryForUsername(ctx context.Context, username string) (models.ReportSummary, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(ARRAY_AGG(DISTINCT category) FILTER (WHERE category IS NOT NULL), '{}'),
		       MAX(created_at)
		FROM community_reports
		WHERE LOWER(username) = LOWER($1)`

	var (
		count        int
		categories   []string
		lastReported *time.Time
	)
	if err := r.pool.QueryRow(ctx, query, username).Scan(&count, &categories, &lastReported); err != nil {
		return models.ReportSummary{}, fmt.Errorf("failed to summarize reports: %w", err)
	}

	summary := models.ReportSummary{
		Flagged:      count > 0,
		ReportCount:  count,
		Categories:   categories,
		LastReported: lastReported,
	}
	if count > 0 {
		summary.RiskLevel = models.RiskCritical
	}
	return summary, nil
}

// Recent retrieves the most recently submitted reports
func (r *ReportRepository) Recent(ctx context.Context, limit int) ([]*models.CommunityReport, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, username, platform, category, description, evidence,
		       risk_level, reporter_ip, created_at
		FROM community_reports
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.CommunityReport
	for rows.Next() {
		var report models.CommunityReport
		if err := rows.Scan(
			&report.ID, &report.Username, &report.Platform, &report.Category,
			&report.Description, &report.Evidence, &report.RiskLevel,
			&report.ReporterIP, &report.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, &report)
	}

	return reports, rows.Err()
}

// Count returns the total number of reports
func (r *ReportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM community_reports`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return count, nil
}
