package services

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

func TestManualAudit(t *testing.T) {
	m := NewManualAuditor(logger.NewDefault())

	tests := []struct {
		name      string
		input     models.ManualAuditInput
		wantFlags int
		wantScore float64
		wantProb  float64
		wantRisk  models.RiskLevel
	}{
		{
			name: "clean profile",
			input: models.ManualAuditInput{
				Username:      "jane_doe",
				Followers:     800,
				Following:     300,
				Posts:         45,
				Bio:           "Gardening and sourdough",
				HasProfilePic: true,
			},
			wantFlags: 0,
			wantScore: 80.0,
			wantProb:  0.2,
			wantRisk:  models.RiskLow,
		},
		{
			name: "suspicious follow pattern",
			input: models.ManualAuditInput{
				Username:      "kevin1987",
				Followers:     120,
				Following:     2000,
				Posts:         5,
				Bio:           "DM for collab",
				HasProfilePic: false,
			},
			wantFlags: 3,
			wantScore: 35.0,
			wantProb:  0.65,
			wantRisk:  models.RiskMedium,
		},
		{
			name: "declared digits flag without username digits",
			input: models.ManualAuditInput{
				Username:         "kevin",
				Followers:        120,
				Following:        2000,
				Posts:            5,
				Bio:              "DM for collab",
				HasProfilePic:    false,
				DigitsInUsername: true,
			},
			wantFlags: 3,
			wantScore: 35.0,
			wantProb:  0.65,
			wantRisk:  models.RiskMedium,
		},
		{
			name: "every flag raised caps probability",
			input: models.ManualAuditInput{
				Username:      "crypto_guru_777",
				Followers:     3,
				Following:     900,
				Posts:         0,
				Bio:           "invest now, guaranteed returns",
				HasProfilePic: false,
			},
			wantFlags: 5,
			wantScore: 5.0,
			wantProb:  0.95,
			wantRisk:  models.RiskHigh,
		},
		{
			name: "single flag stays low risk",
			input: models.ManualAuditInput{
				Username:      "sam99",
				Followers:     600,
				Following:     200,
				Posts:         30,
				Bio:           "Cyclist. Coffee enthusiast.",
				HasProfilePic: true,
			},
			wantFlags: 1,
			wantScore: 65.0,
			wantProb:  0.35,
			wantRisk:  models.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Audit(tt.input)

			if len(got.Flags) != tt.wantFlags {
				t.Errorf("flags = %v, want %d of them", got.Flags, tt.wantFlags)
			}
			if got.FinalScore != tt.wantScore {
				t.Errorf("FinalScore = %v, want %v", got.FinalScore, tt.wantScore)
			}
			if got.FakeProbability != tt.wantProb {
				t.Errorf("FakeProbability = %v, want %v", got.FakeProbability, tt.wantProb)
			}
			if got.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %v, want %v", got.RiskLevel, tt.wantRisk)
			}
			if diff := cmp.Diff(auditRecommendations[tt.wantRisk], got.Recommendations); diff != "" {
				t.Errorf("recommendations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestManualAuditBioKeywordFlag(t *testing.T) {
	m := NewManualAuditor(logger.NewDefault())

	got := m.Audit(models.ManualAuditInput{
		Username:      "friendly_stranger",
		Followers:     400,
		Following:     100,
		Posts:         12,
		Bio:           "Lottery winner looking for a sugar daddy, CashApp only",
		HasProfilePic: true,
	})

	if len(got.Flags) != 1 {
		t.Fatalf("flags = %v, want exactly the bio keyword flag", got.Flags)
	}
	flag := got.Flags[0]
	for _, kw := range []string{"cashapp", "lottery", "sugar daddy"} {
		if !strings.Contains(flag, kw) {
			t.Errorf("flag %q missing matched keyword %q", flag, kw)
		}
	}
}

func TestMatchBioKeywords(t *testing.T) {
	tests := []struct {
		bio  string
		want []string
	}{
		{"", nil},
		{"Normal person with hobbies", nil},
		{"CRYPTO expert, DM to invest", []string{"crypto", "invest"}},
		{"please help me, send money", []string{"help me"}},
	}

	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, matchBioKeywords(tt.bio)); diff != "" {
			t.Errorf("matchBioKeywords(%q) mismatch (-want +got):\n%s", tt.bio, diff)
		}
	}
}
