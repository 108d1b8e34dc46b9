package services

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

func TestMessageScan(t *testing.T) {
	ms := NewMessageScanner(logger.NewDefault())

	tests := []struct {
		name      string
		text      string
		wantScore float64
		wantRisk  models.RiskLevel
		wantCount int
	}{
		{
			name:      "benign message",
			text:      "Hey, are we still on for lunch tomorrow?",
			wantScore: 10,
			wantRisk:  models.RiskLow,
			wantCount: 0,
		},
		{
			name:      "empty message",
			text:      "",
			wantScore: 10,
			wantRisk:  models.RiskLow,
			wantCount: 0,
		},
		{
			name:      "single keyword",
			text:      "I heard bitcoin is doing well lately",
			wantScore: 35,
			wantRisk:  models.RiskLow,
			wantCount: 1,
		},
		{
			name:      "two keywords across categories",
			text:      "This is urgent, send the payment to my bank account",
			wantScore: 65,
			wantRisk:  models.RiskMedium,
			wantCount: 2,
		},
		{
			name:      "three keywords still medium",
			text:      "Act now, this urgent offer expires tonight",
			wantScore: 65,
			wantRisk:  models.RiskMedium,
			wantCount: 3,
		},
		{
			name:      "loaded scam message",
			text:      "You won a lottery prize, click here to claim your crypto investment",
			wantScore: 95,
			wantRisk:  models.RiskHigh,
			wantCount: 7,
		},
		{
			name:      "case insensitive matching",
			text:      "VERIFY YOUR ACCOUNT immediately or it EXPIRES",
			wantScore: 65,
			wantRisk:  models.RiskMedium,
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ms.Scan(tt.text)

			if got.ScamScore != tt.wantScore {
				t.Errorf("ScamScore = %v, want %v", got.ScamScore, tt.wantScore)
			}
			if got.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %v, want %v", got.RiskLevel, tt.wantRisk)
			}
			if got.MatchCount != tt.wantCount {
				t.Errorf("MatchCount = %v (matches %+v), want %v", got.MatchCount, got.Matches, tt.wantCount)
			}
			if diff := cmp.Diff(scanAdvice[tt.wantRisk], got.Advice); diff != "" {
				t.Errorf("advice mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMessageScanCategories(t *testing.T) {
	ms := NewMessageScanner(logger.NewDefault())

	got := ms.Scan("Dear friend, wire transfer the inheritance immediately")

	want := []models.CategoryMatch{
		{Category: "Financial", Keywords: []string{"wire transfer", "inheritance"}},
		{Category: "Urgency/Fear", Keywords: []string{"immediately"}},
		{Category: "Social Engineering", Keywords: []string{"dear friend"}},
	}
	if diff := cmp.Diff(want, got.Matches); diff != "" {
		t.Errorf("matches mismatch (-want +got):\n%s", diff)
	}
	if got.MatchCount != 4 {
		t.Errorf("MatchCount = %v, want 4", got.MatchCount)
	}
	if got.ScamScore != 95 {
		t.Errorf("ScamScore = %v, want 95", got.ScamScore)
	}
}
