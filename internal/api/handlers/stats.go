package handlers

import (
	"encoding/json"
	"net/http"

	"profileguard/internal/infrastructure/database/repository"
	"profileguard/pkg/logger"
)

// StatsHandler serves analysis history and aggregate statistics
type StatsHandler struct {
	repos  *repository.Repositories
	logger *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(repos *repository.Repositories, log *logger.Logger) *StatsHandler {
	return &StatsHandler{
		repos:  repos,
		logger: log.WithComponent("stats-handler"),
	}
}

// History handles GET /api/v1/history
func (h *StatsHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	records, err := h.repos.Analyses.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list analysis history")
		h.respondError(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"history": records,
		"limit":   limit,
		"offset":  offset,
	})
}

// Statistics handles GET /api/v1/statistics
func (h *StatsHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repos.Analyses.Statistics(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to aggregate statistics")
		h.respondError(w, http.StatusInternalServerError, "failed to aggregate statistics")
		return
	}

	reportCount, err := h.repos.Reports.Count(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("failed to count reports")
	} else {
		stats.TotalReports = reportCount
	}

	h.respondJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func (h *StatsHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
