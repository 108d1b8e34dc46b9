package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportCategory classifies what a community report accuses a profile of
type ReportCategory string

const (
	CategoryScam          ReportCategory = "scam"
	CategoryImpersonation ReportCategory = "impersonation"
	CategoryBot           ReportCategory = "bot"
	CategorySpam          ReportCategory = "spam"
	CategoryCatfish       ReportCategory = "catfish"
	CategoryOther         ReportCategory = "other"
)

// ValidCategories lists the report categories accepted by the API
var ValidCategories = []ReportCategory{
	CategoryScam,
	CategoryImpersonation,
	CategoryBot,
	CategorySpam,
	CategoryCatfish,
	CategoryOther,
}

// IsValid reports whether the category is one we accept
func (c ReportCategory) IsValid() bool {
	for _, v := range ValidCategories {
		if c == v {
			return true
		}
	}
	return false
}

// CommunityReport is a user-submitted report against a profile
type CommunityReport struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Username    string         `json:"username" db:"username"`
	Platform    Platform       `json:"platform" db:"platform"`
	Category    ReportCategory `json:"category" db:"category"`
	Description string         `json:"description" db:"description"`
	Evidence    string         `json:"evidence,omitempty" db:"evidence"`
	RiskLevel   RiskLevel      `json:"risk_level" db:"risk_level"`
	ReporterIP  string         `json:"-" db:"reporter_ip"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// ReportSummary aggregates the standing reports against one username
type ReportSummary struct {
	Flagged      bool       `json:"flagged"`
	ReportCount  int        `json:"report_count"`
	Categories   []string   `json:"categories,omitempty"`
	RiskLevel    RiskLevel  `json:"risk_level,omitempty"`
	LastReported *time.Time `json:"last_reported,omitempty"`
}

// AnalysisRecord is a persisted profile analysis, kept for history and
// aggregate statistics.
type AnalysisRecord struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Platform   Platform  `json:"platform" db:"platform"`
	FinalScore float64   `json:"final_score" db:"final_score"`
	RiskLevel  RiskLevel `json:"risk_level" db:"risk_level"`
	DataSource string    `json:"data_source" db:"data_source"`
	Result     []byte    `json:"-" db:"result"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Statistics summarizes historical analyses
type Statistics struct {
	TotalAnalyses int64               `json:"total_analyses"`
	AverageScore  float64             `json:"average_score"`
	RiskCounts    map[RiskLevel]int64 `json:"risk_counts"`
	TotalReports  int64               `json:"total_reports"`
}
