package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"profileguard/internal/domain/models"
	"profileguard/pkg/logger"
)

type stubFetcher struct {
	profile models.ProfileAttributes
	err     error
	calls   int
}

func (s *stubFetcher) Fetch(_ context.Context, username string, platform models.Platform) (models.ProfileAttributes, error) {
	s.calls++
	if s.err != nil {
		return models.ProfileAttributes{}, s.err
	}
	p := s.profile
	p.Username = username
	p.Platform = platform
	return p, nil
}

type stubReports struct {
	summary models.ReportSummary
	err     error
	calls   int
}

func (s *stubReports) SummaryForUsername(_ context.Context, _ string) (models.ReportSummary, error) {
	s.calls++
	return s.summary, s.err
}

type stubHistory struct {
	records []*models.AnalysisRecord
	err     error
}

func (s *stubHistory) SaveAnalysis(_ context.Context, record *models.AnalysisRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (m *memoryCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	data, ok := m.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.entries[key] = data
	return nil
}

func newTestAnalyzer(deps AnalyzerDeps) *Analyzer {
	log := logger.NewDefault()
	if deps.Extractor == nil {
		deps.Extractor = NewFeatureExtractor(log)
	}
	if deps.Scorer == nil {
		deps.Scorer = NewScorer(nil, log)
	}
	if deps.Subscores == nil {
		deps.Subscores = NewSubscoreAnalyzer()
	}
	return NewAnalyzer(deps, log)
}

func TestAnalyzeHealthyProfile(t *testing.T) {
	fetcher := &stubFetcher{profile: models.ProfileAttributes{
		Followers:     1200,
		Following:     300,
		Posts:         80,
		Bio:           "Cooking videos and recipes",
		HasProfilePic: true,
		DataSource:    "live",
	}}
	history := &stubHistory{}

	a := newTestAnalyzer(AnalyzerDeps{Fetcher: fetcher, History: history})

	got, err := a.Analyze(context.Background(), "chef_anna", models.PlatformInstagram)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got.FinalScore != 100 {
		t.Errorf("FinalScore = %v, want 100", got.FinalScore)
	}
	if got.RiskLevel != models.RiskLow {
		t.Errorf("RiskLevel = %v, want LOW", got.RiskLevel)
	}
	if got.ModelVersion != HeuristicVersion {
		t.Errorf("ModelVersion = %q, want %q", got.ModelVersion, HeuristicVersion)
	}
	if got.CommunityFlagged {
		t.Error("CommunityFlagged = true without a report checker")
	}
	if got.Subscores.Image != 100 {
		t.Errorf("Subscores.Image = %v, want 100", got.Subscores.Image)
	}

	if len(history.records) != 1 {
		t.Fatalf("history records = %d, want 1", len(history.records))
	}
	rec := history.records[0]
	if rec.Username != "chef_anna" || rec.FinalScore != 100 || rec.DataSource != "live" {
		t.Errorf("record = %+v, want username/score/source preserved", rec)
	}
	var stored models.AnalysisResult
	if err := json.Unmarshal(rec.Result, &stored); err != nil {
		t.Fatalf("record payload is not valid JSON: %v", err)
	}
	if stored.Username != "chef_anna" {
		t.Errorf("stored payload username = %q, want chef_anna", stored.Username)
	}
}

func TestAnalyzeCommunityFlaggedShortCircuits(t *testing.T) {
	last := time.Now().UTC()
	fetcher := &stubFetcher{}
	reports := &stubReports{summary: models.ReportSummary{
		Flagged:      true,
		ReportCount:  4,
		Categories:   []string{"scam"},
		RiskLevel:    models.RiskCritical,
		LastReported: &last,
	}}
	history := &stubHistory{}

	a := newTestAnalyzer(AnalyzerDeps{Fetcher: fetcher, Reports: reports, History: history})

	got, err := a.Analyze(context.Background(), "known_scammer", models.PlatformInstagram)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if !got.CommunityFlagged {
		t.Fatal("CommunityFlagged = false for a flagged username")
	}
	if got.FinalScore != 10 {
		t.Errorf("FinalScore = %v, want 10", got.FinalScore)
	}
	if got.RiskLevel != models.RiskCritical {
		t.Errorf("RiskLevel = %v, want CRITICAL", got.RiskLevel)
	}
	if got.RiskLabel != models.RiskCritical.Label() {
		t.Errorf("RiskLabel = %q, want %q", got.RiskLabel, models.RiskCritical.Label())
	}
	if got.Profile.DataSource != "community-reports" {
		t.Errorf("Profile.DataSource = %q, want community-reports", got.Profile.DataSource)
	}
	if got.CommunityReports == nil || got.CommunityReports.ReportCount != 4 {
		t.Errorf("CommunityReports = %+v, want summary carried through", got.CommunityReports)
	}

	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times, flagged analysis must not fetch", fetcher.calls)
	}
	if len(history.records) != 1 {
		t.Errorf("history records = %d, flagged analyses are still recorded", len(history.records))
	}
}

func TestAnalyzeAcquisitionFailureDegrades(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("all fetchers exhausted")}

	a := newTestAnalyzer(AnalyzerDeps{Fetcher: fetcher})

	got, err := a.Analyze(context.Background(), "ghost_account", models.PlatformTwitter)
	if err != nil {
		t.Fatalf("Analyze() error = %v, acquisition failures must not fail the analysis", err)
	}

	if got.Profile.DataSource != "fallback" {
		t.Errorf("Profile.DataSource = %q, want fallback", got.Profile.DataSource)
	}
	if got.Warning == "" {
		t.Error("Warning should explain that defaults were scored")
	}
	if got.RiskLevel != models.RiskHigh {
		t.Errorf("RiskLevel = %v, zero-attribute fallback should score HIGH", got.RiskLevel)
	}
}

func TestAnalyzeReportSummaryCached(t *testing.T) {
	fetcher := &stubFetcher{profile: models.ProfileAttributes{
		Followers: 900, Following: 200, Posts: 40, HasProfilePic: true, Bio: "hello there",
	}}
	reports := &stubReports{summary: models.ReportSummary{Flagged: false}}
	cache := newMemoryCache()

	a := newTestAnalyzer(AnalyzerDeps{Fetcher: fetcher, Reports: reports, Cache: cache})

	ctx := context.Background()
	if _, err := a.Analyze(ctx, "repeat_user", models.PlatformInstagram); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Analyze(ctx, "repeat_user", models.PlatformInstagram); err != nil {
		t.Fatal(err)
	}

	if reports.calls != 1 {
		t.Errorf("report store queried %d times, want 1 with a warm cache", reports.calls)
	}
	if _, ok := cache.entries["reports:user:repeat_user"]; !ok {
		t.Error("summary missing from cache under reports:user:repeat_user")
	}
}

// A profile literally named "recent" must not share a key with the
// recent-reports listing.
func TestAnalyzeReportSummaryKeyNamespace(t *testing.T) {
	fetcher := &stubFetcher{profile: models.ProfileAttributes{
		Followers: 900, Following: 200, Posts: 40, HasProfilePic: true, Bio: "hello there",
	}}
	reports := &stubReports{summary: models.ReportSummary{Flagged: false}}
	cache := newMemoryCache()
	cache.entries["reports:recent"] = []byte(`[{"id":"not-a-summary"}]`)

	a := newTestAnalyzer(AnalyzerDeps{Fetcher: fetcher, Reports: reports, Cache: cache})

	got, err := a.Analyze(context.Background(), "recent", models.PlatformInstagram)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.CommunityFlagged {
		t.Error("CommunityFlagged = true from an unrelated listing entry")
	}
	if _, ok := cache.entries["reports:user:recent"]; !ok {
		t.Error("summary missing from cache under reports:user:recent")
	}
}

func TestAnalyzeReportLookupFailureIsNonFatal(t *testing.T) {
	fetcher := &stubFetcher{profile: models.ProfileAttributes{
		Followers: 900, Following: 200, Posts: 40, HasProfilePic: true, Bio: "hello there",
	}}
	reports := &stubReports{err: errors.New("db unavailable")}

	a := newTestAnalyzer(AnalyzerDeps{Fetcher: fetcher, Reports: reports})

	got, err := a.Analyze(context.Background(), "someone", models.PlatformInstagram)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.CommunityReports != nil {
		t.Errorf("CommunityReports = %+v, want nil when the lookup fails", got.CommunityReports)
	}
	if got.FinalScore != 100 {
		t.Errorf("FinalScore = %v, want normal scoring to proceed", got.FinalScore)
	}
}

func TestAnalyzeHistoryFailureIsNonFatal(t *testing.T) {
	fetcher := &stubFetcher{profile: models.ProfileAttributes{
		Followers: 900, Following: 200, Posts: 40, HasProfilePic: true, Bio: "hello there",
	}}
	history := &stubHistory{err: errors.New("insert failed")}

	a := newTestAnalyzer(AnalyzerDeps{Fetcher: fetcher, History: history})

	if _, err := a.Analyze(context.Background(), "someone", models.PlatformInstagram); err != nil {
		t.Fatalf("Analyze() error = %v, history failures must not fail the analysis", err)
	}
}
