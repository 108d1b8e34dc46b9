package services

import (
	"strings"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

// FeatureExtractor projects profile attributes onto the classifier
// feature space.
type FeatureExtractor struct {
	logger *logger.Logger
}

// NewFeatureExtractor creates a feature extractor
func NewFeatureExtractor(log *logger.Logger) *FeatureExtractor {
	return &FeatureExtractor{
		logger: log.WithComponent("feature-extractor"),
	}
}

// Extract builds the feature vector for a profile. Missing numeric
// attributes are treated as zero so degraded acquisition data still
// produces a usable vector.
func (fe *FeatureExtractor) Extract(profile models.ProfileAttributes) models.FeatureVector {
	return models.FeatureVector{
		Followers:         float64(profile.Followers),
		Following:         float64(profile.Following),
		Posts:             float64(profile.Posts),
		AccountAge:        float64(profile.AccountAgeDays),
		BioLength:         float64(len(profile.Bio)),
		HasProfilePic:     boolFeature(profile.HasProfilePic),
		UsernameHasDigits: boolFeature(usernameHasDigits(profile.Username)),
		FollowerRatio:     float64(profile.Followers) / float64(profile.Following+1),
	}
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func usernameHasDigits(username string) bool {
	return strings.ContainsAny(username, "0123456789")
}
