package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"profileguard/internal/domain/models"
	"profileguard/internal/infrastructure/cache"
	"profileguard/internal/infrastructure/database/repository"
	"profileguard/pkg/logger"
)

const recentReportsCacheTTL = time.Minute

// ReportsHandler handles community report submission and listing
type ReportsHandler struct {
	repos  *repository.Repositories
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewReportsHandler creates a new ReportsHandler
func NewReportsHandler(repos *repository.Repositories, c *cache.RedisCache, log *logger.Logger) *ReportsHandler {
	return &ReportsHandler{
		repos:  repos,
		cache:  c,
		logger: log.WithComponent("reports-handler"),
	}
}

// SubmitReportRequest is the report submission payload
type SubmitReportRequest struct {
	Username    string                `json:"username"`
	Platform    models.Platform       `json:"platform"`
	Category    models.ReportCategory `json:"category"`
	Description string                `json:"description"`
	Evidence    string                `json:"evidence"`
}

// Submit handles POST /api/v1/report
func (h *ReportsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(req.Username, "@")))
	if username == "" {
		h.respondError(w, http.StatusBadRequest, "username required")
		return
	}
	if req.Platform == "" {
		req.Platform = models.PlatformInstagram
	}
	if !req.Platform.IsValid() {
		h.respondError(w, http.StatusBadRequest, "unsupported platform")
		return
	}
	if req.Category == "" {
		req.Category = models.CategoryOther
	}
	if !req.Category.IsValid() {
		h.respondError(w, http.StatusBadRequest, "unsupported category")
		return
	}

	report := &models.CommunityReport{
		Username:    username,
		Platform:    req.Platform,
		Category:    req.Category,
		Description: req.Description,
		Evidence:    req.Evidence,
		RiskLevel:   models.RiskCritical,
		ReporterIP:  clientIP(r),
	}

	created, err := h.repos.Reports.Create(r.Context(), report)
	if err != nil {
		h.logger.Error().Err(err).Str("username", username).Msg("failed to save report")
		h.respondError(w, http.StatusInternalServerError, "failed to save report")
		return
	}

	if h.cache != nil {
		if err := h.cache.InvalidateReports(r.Context(), username); err != nil {
			h.logger.Warn().Err(err).Str("username", username).Msg("failed to invalidate report cache")
		}
	}

	h.respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"id":      created.ID,
		"message": "Report submitted successfully",
	})
}

// Recent handles GET /api/v1/reports/recent
func (h *ReportsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)

	if h.cache != nil && limit == 20 {
		var cached []*models.CommunityReport
		found, err := h.cache.GetJSON(r.Context(), cache.KeyRecentReports, &cached)
		if err != nil {
			h.logger.Warn().Err(err).Msg("recent reports cache read failed")
		} else if found {
			h.respondJSON(w, http.StatusOK, map[string]any{"reports": cached})
			return
		}
	}

	reports, err := h.repos.Reports.Recent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list recent reports")
		h.respondError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}

	if h.cache != nil && limit == 20 {
		if err := h.cache.SetJSON(r.Context(), cache.KeyRecentReports, reports, recentReportsCacheTTL); err != nil {
			h.logger.Warn().Err(err).Msg("recent reports cache write failed")
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]any{"reports": reports})
}

// clientIP resolves the reporter's address behind proxies
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

func queryInt(r *http.Request, name string, fallback int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (h *ReportsHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (h *ReportsHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
