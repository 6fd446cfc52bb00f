package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
)

// HealthHandler handles HTTP requests for application health
type HealthHandler struct {
	storage     interfaces.CIMStorage
	renderer    interfaces.DocumentRenderer
	synthesizer interfaces.NarrativeSynthesizer
	logger      arbor.ILogger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(
	storage interfaces.CIMStorage,
	renderer interfaces.DocumentRenderer,
	synthesizer interfaces.NarrativeSynthesizer,
	logger arbor.ILogger,
) *HealthHandler {
	return &HealthHandler{
		storage:     storage,
		renderer:    renderer,
		synthesizer: synthesizer,
		logger:      logger,
	}
}

// HealthResponse is the body for GET /api/health
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Documents     int    `json:"documents"`
	RenderEngine  string `json:"render_engine"`
	NarrativeMode string `json:"narrative_mode"`
}

// GetHealthHandler handles GET /api/health
func (h *HealthHandler) GetHealthHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	resp := HealthResponse{
		Status:        "healthy",
		Version:       common.GetVersion(),
		RenderEngine:  h.renderer.Engine(),
		NarrativeMode: h.synthesizer.Mode(),
	}

	count, err := h.storage.CountDocuments(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count documents for health check")
		resp.Status = "degraded"
	} else {
		resp.Documents = count
	}

	WriteJSON(w, http.StatusOK, resp)
}
