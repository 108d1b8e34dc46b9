package services

import (
	"strings"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

// Keyword categories scanned for in messages. Matching is
// case-insensitive substring; a keyword listed under two categories
// counts once per category.
var (
	financialKeywords = []string{
		"lottery",
		"prize",
		"crypto",
		"bitcoin",
		"investment",
		"wire transfer",
		"cashapp",
		"gift card",
		"bank account",
		"inheritance",
		"won",
		"claim",
	}

	urgencyKeywords = []string{
		"act now",
		"urgent",
		"immediately",
		"click here",
		"limited time",
		"expires",
		"last chance",
		"account suspended",
	}

	socialEngineeringKeywords = []string{
		"verify your account",
		"confirm your identity",
		"send me your",
		"password",
		"trust me",
		"keep this secret",
		"dear friend",
		"you have been selected",
	}
)

var scanAdvice = map[models.RiskLevel][]string{
	models.RiskLow: {
		"No strong scam indicators found",
		"Remain cautious with unsolicited messages from unknown senders",
	},
	models.RiskMedium: {
		"This message contains language commonly used in scams",
		"Do not click links or share personal information",
		"Verify the sender through a separate channel before responding",
	},
	models.RiskHigh: {
		"This message matches known scam patterns",
		"Do not respond, click links, or send money",
		"Report the sender to the platform and block them",
	},
}

// MessageScanner detects scam language in direct messages
type MessageScanner struct {
	logger *logger.Logger
}

// NewMessageScanner creates a message scanner
func NewMessageScanner(log *logger.Logger) *MessageScanner {
	return &MessageScanner{
		logger: log.WithComponent("message-scanner"),
	}
}

// Scan lower-cases the text, collects keyword matches per category, and
// scores on the total match count.
func (ms *MessageScanner) Scan(text string) models.MessageScanResult {
	lower := strings.ToLower(text)

	matches := []models.CategoryMatch{}
	total := 0

	for _, cat := range []struct {
		name     string
		keywords []string
	}{
		{"Financial", financialKeywords},
		{"Urgency/Fear", urgencyKeywords},
		{"Social Engineering", socialEngineeringKeywords},
	} {
		var found []string
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				found = append(found, kw)
			}
		}
		if len(found) > 0 {
			matches = append(matches, models.CategoryMatch{
				Category: cat.name,
				Keywords: found,
			})
			total += len(found)
		}
	}

	var score float64
	switch {
	case total >= 4:
		score = 95
	case total >= 2:
		score = 65
	case total >= 1:
		score = 35
	default:
		score = 10
	}

	var risk models.RiskLevel
	switch {
	case score > 80:
		risk = models.RiskHigh
	case score > 50:
		risk = models.RiskMedium
	default:
		risk = models.RiskLow
	}

	ms.logger.Debug().
		Int("matches", total).
		Float64("scam_score", score).
		Msg("message scanned")

	return models.MessageScanResult{
		ScamScore:  score,
		RiskLevel:  risk,
		Matches:    matches,
		MatchCount: total,
		Advice:     scanAdvice[risk],
	}
}
