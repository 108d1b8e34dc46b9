package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

const (
	reportSummaryCacheTTL = 5 * time.Minute
	communityFlagScore    = 10.0
)

// ProfileFetcher acquires profile attributes. The scrape chain
// implements it; tests substitute a stub.
type ProfileFetcher interface {
	Fetch(ctx context.Context, username string, platform models.Platform) (models.ProfileAttributes, error)
}

// ReportChecker aggregates standing community reports for a username
type ReportChecker interface {
	SummaryForUsername(ctx context.Context, username string) (models.ReportSummary, error)
}

// HistoryWriter persists completed analyses
type HistoryWriter interface {
	SaveAnalysis(ctx context.Context, record *models.AnalysisRecord) error
}

// SummaryCache caches report summaries between requests
type SummaryCache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Analyzer runs the full profile analysis pipeline: community report
// check, acquisition, feature extraction, scoring, and subscore
// diagnostics, then records the outcome.
type Analyzer struct {
	fetcher   ProfileFetcher
	extractor *FeatureExtractor
	scorer    *Scorer
	subscores *SubscoreAnalyzer
	reports   ReportChecker
	history   HistoryWriter
	cache     SummaryCache
	logger    *logger.Logger
}

// AnalyzerDeps collects the analyzer's collaborators. reports, history
// and cache may be nil; the corresponding steps are skipped.
type AnalyzerDeps struct {
	Fetcher   ProfileFetcher
	Extractor *FeatureExtractor
	Scorer    *Scorer
	Subscores *SubscoreAnalyzer
	Reports   ReportChecker
	History   HistoryWriter
	Cache     SummaryCache
}

// NewAnalyzer creates an analyzer
func NewAnalyzer(deps AnalyzerDeps, log *logger.Logger) *Analyzer {
	return &Analyzer{
		fetcher:   deps.Fetcher,
		extractor: deps.Extractor,
		scorer:    deps.Scorer,
		subscores: deps.Subscores,
		reports:   deps.Reports,
		history:   deps.History,
		cache:     deps.Cache,
		logger:    log.WithComponent("analyzer"),
	}
}

// Analyze runs the pipeline for one username. Acquisition failures
// degrade to fallback attributes and never fail the analysis.
func (a *Analyzer) Analyze(ctx context.Context, username string, platform models.Platform) (models.AnalysisResult, error) {
	summary := a.reportSummary(ctx, username)
	if summary != nil && summary.Flagged {
		result := a.flaggedResult(username, platform, summary)
		a.record(ctx, result)
		return result, nil
	}

	profile, err := a.fetcher.Fetch(ctx, username, platform)
	if err != nil {
		a.logger.Warn().
			Err(err).
			Str("username", username).
			Msg("acquisition failed, scoring fallback attributes")
		profile = models.ProfileAttributes{
			Username:   username,
			Platform:   platform,
			IsPrivate:  true,
			DataSource: "fallback",
			Warning:    "Profile data could not be retrieved; analysis is based on defaults",
		}
	}

	features := a.extractor.Extract(profile)
	score := a.scorer.Score(profile, features)

	result := models.AnalysisResult{
		Username:         username,
		Platform:         platform,
		FinalScore:       score.FinalScore,
		RiskLevel:        score.RiskLevel,
		RiskLabel:        score.RiskLabel,
		FakeProbability:  score.FakeProbability,
		ModelVersion:     score.ModelVersion,
		Subscores:        a.subscores.Analyze(profile),
		Profile:          profile,
		CommunityReports: summary,
		Warning:          profile.Warning,
		AnalyzedAt:       time.Now().UTC(),
	}

	a.record(ctx, result)
	return result, nil
}

// flaggedResult short-circuits scoring for community-flagged usernames
func (a *Analyzer) flaggedResult(username string, platform models.Platform, summary *models.ReportSummary) models.AnalysisResult {
	risk := models.RiskCritical
	return models.AnalysisResult{
		Username:        username,
		Platform:        platform,
		FinalScore:      communityFlagScore,
		RiskLevel:       risk,
		RiskLabel:       risk.Label(),
		FakeProbability: round2(1 - communityFlagScore/100),
		ModelVersion:    a.scorer.ModelInfo().Version,
		Profile: models.ProfileAttributes{
			Username:   username,
			Platform:   platform,
			DataSource: "community-reports",
		},
		CommunityFlagged: true,
		CommunityReports: summary,
		AnalyzedAt:       time.Now().UTC(),
	}
}

// reportSummary returns the community report summary, cached. Returns
// nil when no report store is configured or the lookup fails.
func (a *Analyzer) reportSummary(ctx context.Context, username string) *models.ReportSummary {
	if a.reports == nil {
		return nil
	}

	cacheKey := "reports:user:" + username

	if a.cache != nil {
		var cached models.ReportSummary
		found, err := a.cache.GetJSON(ctx, cacheKey, &cached)
		if err != nil {
			a.logger.Warn().Err(err).Str("username", username).Msg("report summary cache read failed")
		} else if found {
			return &cached
		}
	}

	summary, err := a.reports.SummaryForUsername(ctx, username)
	if err != nil {
		a.logger.Warn().Err(err).Str("username", username).Msg("report summary lookup failed")
		return nil
	}

	if a.cache != nil {
		if err := a.cache.SetJSON(ctx, cacheKey, summary, reportSummaryCacheTTL); err != nil {
			a.logger.Warn().Err(err).Str("username", username).Msg("report summary cache write failed")
		}
	}

	return &summary
}

// record persists the analysis, best effort. A storage failure never
// fails the analysis itself.
func (a *Analyzer) record(ctx context.Context, result models.AnalysisResult) {
	if a.history == nil {
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		a.logger.Error().Err(err).Str("username", result.Username).Msg("encoding analysis record")
		return
	}

	record := &models.AnalysisRecord{
		ID:         uuid.New(),
		Username:   result.Username,
		Platform:   result.Platform,
		FinalScore: result.FinalScore,
		RiskLevel:  result.RiskLevel,
		DataSource: result.Profile.DataSource,
		Result:     payload,
		CreatedAt:  result.AnalyzedAt,
	}

	if err := a.history.SaveAnalysis(ctx, record); err != nil {
		a.logger.Warn().Err(err).Str("username", result.Username).Msg("saving analysis history failed")
	}
}
