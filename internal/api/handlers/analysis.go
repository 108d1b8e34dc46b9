package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"profileguard/internal/domain/models"
	"profileguard/internal/domain/services"
	"profileguard/internal/scrape"
	"profileguard/pkg/logger"
)

const maxBatchSize = 10

// AnalysisHandler handles profile, manual, and message analysis
type AnalysisHandler struct {
	analyzer *services.Analyzer
	auditor  *services.ManualAuditor
	scanner  *services.MessageScanner
	logger   *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analyzer *services.Analyzer, auditor *services.ManualAuditor, scanner *services.MessageScanner, log *logger.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analyzer: analyzer,
		auditor:  auditor,
		scanner:  scanner,
		logger:   log.WithComponent("analysis-handler"),
	}
}

// AnalyzeRequest identifies the profile to analyze. URL, ProfileURL,
// and Username are interchangeable; a URL wins when both are present.
type AnalyzeRequest struct {
	URL        string          `json:"url"`
	ProfileURL string          `json:"profile_url"`
	Username   string          `json:"username"`
	Platform   models.Platform `json:"platform"`
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username, platform, errMsg := h.normalize(req)
	if errMsg != "" {
		h.respondError(w, http.StatusBadRequest, errMsg)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), username, platform)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("analysis failed")
		h.respondError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// BatchAnalyzeRequest carries up to ten profiles
type BatchAnalyzeRequest struct {
	Profiles []AnalyzeRequest `json:"profiles"`
}

// BatchResult pairs one input with its outcome
type BatchResult struct {
	Username string                 `json:"username"`
	Platform models.Platform        `json:"platform"`
	Success  bool                   `json:"success"`
	Result   *models.AnalysisResult `json:"result,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// AnalyzeBatch handles POST /api/v1/analyze/batch
func (h *AnalysisHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Profiles) == 0 {
		h.respondError(w, http.StatusBadRequest, "profiles must be a non-empty array")
		return
	}
	if len(req.Profiles) > maxBatchSize {
		h.respondError(w, http.StatusBadRequest, "maximum 10 profiles per batch")
		return
	}

	results := make([]BatchResult, 0, len(req.Profiles))
	for _, p := range req.Profiles {
		username, platform, errMsg := h.normalize(p)
		if errMsg != "" {
			results = append(results, BatchResult{
				Username: p.Username,
				Platform: p.Platform,
				Success:  false,
				Error:    errMsg,
			})
			continue
		}

		result, err := h.analyzer.Analyze(r.Context(), username, platform)
		if err != nil {
			results = append(results, BatchResult{
				Username: username,
				Platform: platform,
				Success:  false,
				Error:    "analysis failed",
			})
			continue
		}

		results = append(results, BatchResult{
			Username: username,
			Platform: platform,
			Success:  true,
			Result:   &result,
		})
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"results":   results,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// AuditManual handles POST /api/v1/manual. Missing or malformed numeric
// fields decode to zero values; the audit always succeeds.
func (h *AnalysisHandler) AuditManual(w http.ResponseWriter, r *http.Request) {
	var input models.ManualAuditInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.respondJSON(w, http.StatusOK, h.auditor.Audit(input))
}

// ScanMessage handles POST /api/v1/message
func (h *AnalysisHandler) ScanMessage(w http.ResponseWriter, r *http.Request) {
	var input models.MessageScanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if input.Text == "" {
		h.respondError(w, http.StatusBadRequest, "message text required")
		return
	}

	h.respondJSON(w, http.StatusOK, h.scanner.Scan(input.Text))
}

// normalize resolves the request to a username and platform
func (h *AnalysisHandler) normalize(req AnalyzeRequest) (string, models.Platform, string) {
	raw := req.URL
	if raw == "" {
		raw = req.ProfileURL
	}
	if raw == "" {
		raw = req.Username
	}

	username := scrape.ExtractUsername(raw)
	if username == "" {
		return "", "", "username or url required"
	}

	platform := req.Platform
	if platform == "" {
		platform = models.PlatformInstagram
	}
	if !platform.IsValid() {
		return "", "", "unsupported platform"
	}

	return username, platform, ""
}

func (h *AnalysisHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (h *AnalysisHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
