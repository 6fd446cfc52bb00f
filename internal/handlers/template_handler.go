package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoria/internal/interfaces"
)

// TemplateHandler handles HTTP requests for CIM template discovery
type TemplateHandler struct {
	templates interfaces.TemplateProvider
	logger    arbor.ILogger
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(templates interfaces.TemplateProvider, logger arbor.ILogger) *TemplateHandler {
	return &TemplateHandler{
		templates: templates,
		logger:    logger,
	}
}

// TemplateSummary is the list representation of one template.
type TemplateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tone        string `json:"tone"`
}

// ListTemplatesHandler handles GET /api/templates
func (h *TemplateHandler) ListTemplatesHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	ids, err := h.templates.List()
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list templates")
		WriteError(w, http.StatusInternalServerError, "Failed to list templates")
		return
	}

	summaries := make([]TemplateSummary, 0, len(ids))
	for _, id := range ids {
		tmpl, err := h.templates.Get(id)
		if err != nil {
			h.logger.Warn().Err(err).Str("id", id).Msg("Skipping unreadable template")
			continue
		}
		summaries = append(summaries, TemplateSummary{
			ID:          tmpl.ID,
			Name:        tmpl.Name,
			Description: tmpl.Description,
			Tone:        tmpl.Tone,
		})
	}

	WriteJSON(w, http.StatusOK, summaries)
}
