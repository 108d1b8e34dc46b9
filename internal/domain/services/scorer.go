package services

import (
	"math"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

// HeuristicVersion tags results produced by the rule-based fallback
const HeuristicVersion = "heuristic-fallback"

// Classifier is the trained-model interface used by the scorer. The
// loaded random forest satisfies it; when no model is available the
// scorer falls back to heuristic rules.
type Classifier interface {
	PredictProbability(fv models.FeatureVector) (pReal, pFake float64, err error)
	Version() string
	Info() models.ModelInfo
}

// Scorer produces the headline authenticity score for a profile. It
// prefers the trained classifier and degrades to heuristic rules when
// the classifier is absent or fails.
type Scorer struct {
	classifier Classifier
	logger     *logger.Logger
}

// NewScorer creates a scorer. classifier may be nil.
func NewScorer(classifier Classifier, log *logger.Logger) *Scorer {
	return &Scorer{
		classifier: classifier,
		logger:     log.WithComponent("scorer"),
	}
}

// Score computes the headline score for the given profile and features
func (s *Scorer) Score(profile models.ProfileAttributes, features models.FeatureVector) models.ScoreResult {
	if s.classifier != nil {
		pReal, pFake, err := s.classifier.PredictProbability(features)
		if err == nil {
			return s.classifierResult(pReal, pFake)
		}
		s.logger.Warn().
			Err(err).
			Str("username", profile.Username).
			Msg("classifier unavailable, using heuristic rules")
	}

	return s.heuristicResult(profile)
}

// classifierResult maps classifier probabilities to a score and tier
func (s *Scorer) classifierResult(pReal, pFake float64) models.ScoreResult {
	var risk models.RiskLevel
	switch {
	case pFake > 0.7:
		risk = models.RiskHigh
	case pFake > 0.4:
		risk = models.RiskMedium
	default:
		risk = models.RiskLow
	}

	return models.ScoreResult{
		FinalScore:      round2(pReal * 100),
		RiskLevel:       risk,
		RiskLabel:       risk.Label(),
		FakeProbability: round2(pFake),
		ModelVersion:    s.classifier.Version(),
	}
}

// heuristicResult scores by penalty rules, starting from 100
func (s *Scorer) heuristicResult(profile models.ProfileAttributes) models.ScoreResult {
	score := 100.0

	if profile.Followers < 10 {
		score -= 20
	}
	if profile.Following > 500 && profile.Following > profile.Followers*5 {
		score -= 30
	}
	if !profile.HasProfilePic {
		score -= 20
	}
	if profile.Posts < 3 {
		score -= 15
	}

	score = clampScore(score)

	var risk models.RiskLevel
	switch {
	case score >= 80:
		risk = models.RiskLow
	case score >= 50:
		risk = models.RiskMedium
	default:
		risk = models.RiskHigh
	}

	return models.ScoreResult{
		FinalScore:      score,
		RiskLevel:       risk,
		RiskLabel:       risk.Label(),
		FakeProbability: round2(1 - score/100),
		ModelVersion:    HeuristicVersion,
	}
}

// ModelInfo reports on the active classifier
func (s *Scorer) ModelInfo() models.ModelInfo {
	if s.classifier == nil {
		return models.ModelInfo{Loaded: false}
	}
	return s.classifier.Info()
}

func clampScore(score float64) float64 {
	return math.Max(0, math.Min(100, score))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
