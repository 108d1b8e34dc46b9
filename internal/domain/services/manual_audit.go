package services

import (
	"math"
	"strings"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

// bioScamKeywords are checked case-insensitively against the bio during
// a manual audit.
var bioScamKeywords = []string{
	"crypto",
	"invest",
	"cashapp",
	"lottery",
	"sugar daddy",
	"help me",
}

var auditRecommendations = map[models.RiskLevel][]string{
	models.RiskLow: {
		"Profile shows typical signs of an authentic account",
		"Stay alert for sudden changes in behavior or requests for money",
	},
	models.RiskMedium: {
		"Verify the profile through a video call or mutual contacts before trusting it",
		"Do not share personal or financial information",
		"Check whether the profile photo appears elsewhere using reverse image search",
	},
	models.RiskHigh: {
		"Do not engage with this profile",
		"Do not send money or share personal information under any circumstances",
		"Report the profile to the platform",
		"Block the account if it has contacted you",
	},
}

// ManualAuditor applies rule-based checks to user-described profiles,
// for cases where automated acquisition is not possible.
type ManualAuditor struct {
	logger *logger.Logger
}

// NewManualAuditor creates a manual auditor
func NewManualAuditor(log *logger.Logger) *ManualAuditor {
	return &ManualAuditor{
		logger: log.WithComponent("manual-auditor"),
	}
}

// Audit evaluates the described profile and returns the flags raised,
// an authenticity score, and tier-appropriate recommendations.
func (m *ManualAuditor) Audit(input models.ManualAuditInput) models.ManualAuditResult {
	flags := []string{}

	if !input.HasProfilePic {
		flags = append(flags, "No profile picture")
	}
	if input.Following > 500 && input.Following > input.Followers*5 {
		flags = append(flags, "Following count disproportionate to followers")
	}
	if input.Posts == 0 {
		flags = append(flags, "No posts")
	}
	if input.DigitsInUsername || usernameHasDigits(input.Username) {
		flags = append(flags, "Username contains digits")
	}
	if kw := matchBioKeywords(input.Bio); len(kw) > 0 {
		flags = append(flags, "Bio contains scam-associated keywords: "+strings.Join(kw, ", "))
	}

	fakeProb := math.Min(0.2+0.15*float64(len(flags)), 0.95)

	var risk models.RiskLevel
	switch {
	case fakeProb > 0.7:
		risk = models.RiskHigh
	case fakeProb > 0.4:
		risk = models.RiskMedium
	default:
		risk = models.RiskLow
	}

	m.logger.Debug().
		Str("username", input.Username).
		Int("flags", len(flags)).
		Str("risk_level", string(risk)).
		Msg("manual audit complete")

	return models.ManualAuditResult{
		Username:        input.Username,
		FinalScore:      round2((1 - fakeProb) * 100),
		RiskLevel:       risk,
		RiskLabel:       risk.Label(),
		FakeProbability: round2(fakeProb),
		Flags:           flags,
		Recommendations: auditRecommendations[risk],
	}
}

// matchBioKeywords returns the scam keywords present in the bio
func matchBioKeywords(bio string) []string {
	lower := strings.ToLower(bio)
	var matched []string
	for _, kw := range bioScamKeywords {
		if strings.Contains(lower, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}
