package handlers

import (
	"encoding/json"
	"net/http"

	"profileguard/internal/domain/services"
	"profileguard/pkg/logger"
)

// ModelHandler reports on the loaded classifier
type ModelHandler struct {
	scorer *services.Scorer
	logger *logger.Logger
}

// NewModelHandler creates a new ModelHandler
func NewModelHandler(scorer *services.Scorer, log *logger.Logger) *ModelHandler {
	return &ModelHandler{
		scorer: scorer,
		logger: log.WithComponent("model-handler"),
	}
}

// Info handles GET /api/v1/model
func (h *ModelHandler) Info(w http.ResponseWriter, r *http.Request) {
	info := h.scorer.ModelInfo()

	version := info.Version
	if !info.Loaded {
		version = services.HeuristicVersion
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"ml-version": version,
		"model":      info,
	}); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode JSON response")
	}
}
