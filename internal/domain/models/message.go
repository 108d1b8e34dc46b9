package models

// MessageScanInput carries a message body to scan for scam patterns
type MessageScanInput struct {
	Text string `json:"text"`
}

// CategoryMatch records the scam keywords found for one category
type CategoryMatch struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// MessageScanResult is the outcome of a scam message scan
type MessageScanResult struct {
	ScamScore  float64         `json:"scam_score"`
	RiskLevel  RiskLevel       `json:"risk_level"`
	Matches    []CategoryMatch `json:"matches"`
	MatchCount int             `json:"match_count"`
	Advice     []string        `json:"advice"`
}
