package services

import (
	"errors"
	"testing"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

type stubClassifier struct {
	pReal float64
	pFake float64
	err   error
}

func (s *stubClassifier) PredictProbability(models.FeatureVector) (float64, float64, error) {
	return s.pReal, s.pFake, s.err
}

func (s *stubClassifier) Version() string { return "rf-test" }

func (s *stubClassifier) Info() models.ModelInfo {
	return models.ModelInfo{Loaded: true, Version: "rf-test"}
}

func TestScoreClassifierBranch(t *testing.T) {
	log := logger.NewDefault()

	tests := []struct {
		name      string
		pReal     float64
		pFake     float64
		wantScore float64
		wantRisk  models.RiskLevel
	}{
		{"clearly authentic", 0.93, 0.07, 93, models.RiskLow},
		{"suspicious", 0.45, 0.55, 45, models.RiskMedium},
		{"clearly fake", 0.12, 0.88, 12, models.RiskHigh},
		{"boundary at 0.4 stays low", 0.6, 0.4, 60, models.RiskLow},
		{"boundary at 0.7 stays medium", 0.3, 0.7, 30, models.RiskMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer(&stubClassifier{pReal: tt.pReal, pFake: tt.pFake}, log)
			got := s.Score(models.ProfileAttributes{Username: "x"}, models.FeatureVector{})

			if got.FinalScore != tt.wantScore {
				t.Errorf("FinalScore = %v, want %v", got.FinalScore, tt.wantScore)
			}
			if got.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %v, want %v", got.RiskLevel, tt.wantRisk)
			}
			if got.ModelVersion != "rf-test" {
				t.Errorf("ModelVersion = %q, want rf-test", got.ModelVersion)
			}
			if got.FakeProbability != tt.pFake {
				t.Errorf("FakeProbability = %v, want %v", got.FakeProbability, tt.pFake)
			}
		})
	}
}

func TestScoreHeuristicBranch(t *testing.T) {
	log := logger.NewDefault()

	tests := []struct {
		name      string
		profile   models.ProfileAttributes
		wantScore float64
		wantRisk  models.RiskLevel
	}{
		{
			name: "thin new account",
			profile: models.ProfileAttributes{
				Followers:     5,
				Following:     30,
				Posts:         1,
				HasProfilePic: false,
			},
			wantScore: 45,
			wantRisk:  models.RiskHigh,
		},
		{
			name: "established account",
			profile: models.ProfileAttributes{
				Followers:     2000,
				Following:     300,
				Posts:         150,
				HasProfilePic: true,
			},
			wantScore: 100,
			wantRisk:  models.RiskLow,
		},
		{
			name: "follow farm",
			profile: models.ProfileAttributes{
				Followers:     40,
				Following:     3000,
				Posts:         20,
				HasProfilePic: true,
			},
			wantScore: 70,
			wantRisk:  models.RiskMedium,
		},
		{
			name:      "every penalty applies",
			profile:   models.ProfileAttributes{Following: 5000},
			wantScore: 15,
			wantRisk:  models.RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer(nil, log)
			got := s.Score(tt.profile, models.FeatureVector{})

			if got.FinalScore != tt.wantScore {
				t.Errorf("FinalScore = %v, want %v", got.FinalScore, tt.wantScore)
			}
			if got.RiskLevel != tt.wantRisk {
				t.Errorf("RiskLevel = %v, want %v", got.RiskLevel, tt.wantRisk)
			}
			if got.ModelVersion != HeuristicVersion {
				t.Errorf("ModelVersion = %q, want %q", got.ModelVersion, HeuristicVersion)
			}

			wantFake := round2(1 - tt.wantScore/100)
			if got.FakeProbability != wantFake {
				t.Errorf("FakeProbability = %v, want %v", got.FakeProbability, wantFake)
			}
		})
	}
}

func TestScoreFallsBackOnClassifierError(t *testing.T) {
	s := NewScorer(&stubClassifier{err: errors.New("model corrupted")}, logger.NewDefault())

	profile := models.ProfileAttributes{
		Followers:     5,
		Following:     30,
		Posts:         1,
		HasProfilePic: false,
	}
	got := s.Score(profile, models.FeatureVector{})

	if got.ModelVersion != HeuristicVersion {
		t.Fatalf("ModelVersion = %q, want heuristic fallback", got.ModelVersion)
	}
	if got.FinalScore != 45 {
		t.Errorf("FinalScore = %v, want 45", got.FinalScore)
	}
	if got.RiskLevel != models.RiskHigh {
		t.Errorf("RiskLevel = %v, want HIGH", got.RiskLevel)
	}
}

func TestScoreBoundsBothBranches(t *testing.T) {
	log := logger.NewDefault()
	profiles := []models.ProfileAttributes{
		{},
		{Followers: 1, Following: 100000, Posts: 0},
		{Followers: 1000000, Following: 1, Posts: 10000, HasProfilePic: true},
	}

	for _, p := range profiles {
		for _, s := range []*Scorer{
			NewScorer(nil, log),
			NewScorer(&stubClassifier{pReal: 0.5, pFake: 0.5}, log),
		} {
			got := s.Score(p, models.FeatureVector{})
			if got.FinalScore < 0 || got.FinalScore > 100 {
				t.Errorf("FinalScore %v out of [0,100] for %+v", got.FinalScore, p)
			}
		}
	}
}
