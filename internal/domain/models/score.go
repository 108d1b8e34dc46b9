package models

import "time"

// RiskLevel classifies an analysis outcome into a severity tier
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Label returns the human-readable verdict for the tier
func (r RiskLevel) Label() string {
	switch r {
	case RiskLow:
		return "LOW RISK - Likely Authentic"
	case RiskMedium:
		return "MEDIUM RISK - Suspicious Indicators"
	case RiskHigh:
		return "HIGH RISK - Likely Fake"
	case RiskCritical:
		return "CRITICAL - Flagged by Community"
	default:
		return string(r)
	}
}

// Subscores holds the six diagnostic sub-analyzer scores. Each ranges
// 0-100 and is computed independently of the headline score.
type Subscores struct {
	Metadata   float64 `json:"metadata"`
	Image      float64 `json:"image"`
	Text       float64 `json:"text"`
	Behavior   float64 `json:"behavior"`
	Network    float64 `json:"network"`
	Engagement float64 `json:"engagement"`
}

// ScoreResult is the outcome of the headline scoring stage
type ScoreResult struct {
	FinalScore      float64   `json:"final_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskLabel       string    `json:"risk_label"`
	FakeProbability float64   `json:"fake_probability"`
	ModelVersion    string    `json:"model_version"`
}

// AnalysisResult is the full envelope returned by a profile analysis
type AnalysisResult struct {
	Username string   `json:"username"`
	Platform Platform `json:"platform"`

	FinalScore      float64   `json:"final_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskLabel       string    `json:"risk_label"`
	FakeProbability float64   `json:"fake_probability"`
	ModelVersion    string    `json:"model_version"`

	Subscores Subscores `json:"subscores"`

	Profile ProfileAttributes `json:"profile"`

	// Community flag context. When the username has standing community
	// reports the pipeline short-circuits and these fields explain why.
	CommunityFlagged bool           `json:"community_flagged"`
	CommunityReports *ReportSummary `json:"community_reports,omitempty"`

	Warning    string    `json:"warning,omitempty"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}
