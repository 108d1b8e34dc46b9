package services

import (
	"strings"

	"profileguard/internal/domain/models"
)

// SubscoreAnalyzer computes the six diagnostic subscores. Each analyzer
// starts from 100, applies its own penalties, and floors at zero. The
// analyzers are independent of each other and of the headline score.
type SubscoreAnalyzer struct{}

// NewSubscoreAnalyzer creates a subscore analyzer
func NewSubscoreAnalyzer() *SubscoreAnalyzer {
	return &SubscoreAnalyzer{}
}

// Analyze computes all six subscores for a profile
func (a *SubscoreAnalyzer) Analyze(profile models.ProfileAttributes) models.Subscores {
	return models.Subscores{
		Metadata:   a.metadataScore(profile),
		Image:      a.imageScore(profile),
		Text:       a.textScore(profile),
		Behavior:   a.behaviorScore(profile),
		Network:    a.networkScore(profile),
		Engagement: a.engagementScore(profile),
	}
}

// metadataScore penalizes inflated following counts and empty accounts
func (a *SubscoreAnalyzer) metadataScore(p models.ProfileAttributes) float64 {
	score := 100.0
	if p.Following > p.Followers*2 && p.Followers < 100 {
		score -= 30
	}
	if p.Followers < 50 {
		score -= 10
	}
	if p.Posts == 0 {
		score -= 20
	}
	return floorScore(score)
}

// imageScore penalizes the absence of a profile picture
func (a *SubscoreAnalyzer) imageScore(p models.ProfileAttributes) float64 {
	score := 100.0
	if !p.HasProfilePic {
		score -= 50
	}
	return floorScore(score)
}

// textScore penalizes thin bios and follow-bait phrasing
func (a *SubscoreAnalyzer) textScore(p models.ProfileAttributes) float64 {
	score := 100.0
	if strings.TrimSpace(p.Bio) == "" || len(p.Bio) < 5 {
		score -= 30
	}
	if strings.Contains(strings.ToLower(p.Bio), "follow back") {
		score -= 20
	}
	return floorScore(score)
}

// behaviorScore penalizes accounts with little posting activity
func (a *SubscoreAnalyzer) behaviorScore(p models.ProfileAttributes) float64 {
	score := 100.0
	if p.Posts == 0 {
		score -= 30
	}
	if p.Posts < 5 {
		score -= 10
	}
	return floorScore(score)
}

// networkScore penalizes small follower networks
func (a *SubscoreAnalyzer) networkScore(p models.ProfileAttributes) float64 {
	score := 100.0
	if p.Followers < 10 {
		score -= 40
	} else if p.Followers < 100 {
		score -= 10
	}
	return floorScore(score)
}

// engagementScore penalizes implausible followers-per-post ratios,
// both too low and bot-farm high.
func (a *SubscoreAnalyzer) engagementScore(p models.ProfileAttributes) float64 {
	score := 100.0
	ratio := p.EngagementRatio()
	if ratio < 0.5 {
		score -= 20
	}
	if ratio > 500 {
		score -= 20
	}
	return floorScore(score)
}

func floorScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	return score
}
