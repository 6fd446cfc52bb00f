package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// CIMHandler handles HTTP requests for CIM document generation and export
type CIMHandler struct {
	compiler interfaces.DocumentCompiler
	renderer interfaces.DocumentRenderer
	storage  interfaces.CIMStorage
	validate *validator.Validate
	logger   arbor.ILogger
}

// NewCIMHandler creates a new CIMHandler
func NewCIMHandler(
	compiler interfaces.DocumentCompiler,
	renderer interfaces.DocumentRenderer,
	storage interfaces.CIMStorage,
	logger arbor.ILogger,
) *CIMHandler {
	return &CIMHandler{
		compiler: compiler,
		renderer: renderer,
		storage:  storage,
		validate: validator.New(),
		logger:   logger,
	}
}

// GenerateRequest is the request body for POST /api/cims
type GenerateRequest struct {
	CompanyName string `json:"company_name" validate:"required"`
	Industry    string `json:"industry"`
	Description string `json:"description"`

	// Financial series (parallel slices, oldest year first)
	Years     []int     `json:"years"`
	Revenue   []float64 `json:"revenue"`
	NetIncome []float64 `json:"net_income"`
	EBITDA    []float64 `json:"ebitda"`
	CashFlow  []float64 `json:"cash_flow"`

	// Market context
	MarketSize  float64  `json:"market_size" validate:"gte=0"`
	GrowthRate  float64  `json:"growth_rate"`
	Competitors []string `json:"competitors"`
	Trends      []string `json:"trends"`

	// Investment assumptions
	InvestmentAmount float64 `json:"investment_amount" validate:"gte=0"`
	TimeHorizonYears int     `json:"time_horizon_years" validate:"gte=0,lte=50"`
	ExitStrategy     string  `json:"exit_strategy"`

	TemplateID string `json:"template_id"`
}

func (r *GenerateRequest) toInput() interfaces.GenerateInput {
	return interfaces.GenerateInput{
		Company: models.Company{
			Name:        r.CompanyName,
			Industry:    r.Industry,
			Description: r.Description,
		},
		Series: models.FinancialSeries{
			Years:     r.Years,
			Revenue:   r.Revenue,
			NetIncome: r.NetIncome,
			EBITDA:    r.EBITDA,
			CashFlow:  r.CashFlow,
		},
		Market: models.MarketContext{
			MarketSize:  r.MarketSize,
			GrowthRate:  r.GrowthRate,
			Competitors: r.Competitors,
			Trends:      r.Trends,
		},
		Assumptions: models.Assumptions{
			InvestmentAmount: r.InvestmentAmount,
			TimeHorizonYears: r.TimeHorizonYears,
			ExitStrategy:     r.ExitStrategy,
		},
		TemplateID: r.TemplateID,
	}
}

// GenerateHandler handles POST /api/cims
func (h *CIMHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode generate request")
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn().Err(err).Str("company", req.CompanyName).Msg("Generate request validation failed")
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Validation failed: %s", err.Error()))
		return
	}

	doc, err := h.compiler.Generate(r.Context(), req.toInput())
	if err != nil {
		h.logger.Error().Err(err).Str("company", req.CompanyName).Msg("CIM generation failed")
		if strings.Contains(err.Error(), "template lookup") {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "CIM generation failed")
		return
	}

	if err := h.storage.StoreDocument(r.Context(), doc); err != nil {
		h.logger.Error().Err(err).Str("id", doc.ID).Msg("Failed to store generated CIM")
		WriteError(w, http.StatusInternalServerError, "Failed to store generated CIM")
		return
	}

	h.logger.Info().
		Str("id", doc.ID).
		Str("company", doc.CompanyName).
		Str("template", doc.TemplateID).
		Msg("CIM generated")

	WriteJSON(w, http.StatusCreated, doc)
}

// ListCIMsHandler handles GET /api/cims
func (h *CIMHandler) ListCIMsHandler(w http.ResponseWriter, r *http.Request) {
	docs, err := h.storage.ListDocuments(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list CIM documents")
		WriteError(w, http.StatusInternalServerError, "Failed to list CIM documents")
		return
	}

	if docs == nil {
		docs = []*models.CIMDocument{}
	}

	WriteJSON(w, http.StatusOK, docs)
}

// GetCIMHandler handles GET /api/cims/{id}
func (h *CIMHandler) GetCIMHandler(w http.ResponseWriter, r *http.Request) {
	id := extractIDFromPath(r.URL.Path, "/api/cims/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "CIM ID is required")
		return
	}

	doc, err := h.storage.GetDocument(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, "CIM not found")
		} else {
			h.logger.Error().Err(err).Str("id", id).Msg("Failed to get CIM")
			WriteError(w, http.StatusInternalServerError, "Failed to get CIM")
		}
		return
	}

	WriteJSON(w, http.StatusOK, doc)
}

// DeleteCIMHandler handles DELETE /api/cims/{id}
func (h *CIMHandler) DeleteCIMHandler(w http.ResponseWriter, r *http.Request) {
	id := extractIDFromPath(r.URL.Path, "/api/cims/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "CIM ID is required")
		return
	}

	if err := h.storage.DeleteDocument(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, "CIM not found")
		} else {
			h.logger.Error().Err(err).Str("id", id).Msg("Failed to delete CIM")
			WriteError(w, http.StatusInternalServerError, "Failed to delete CIM")
		}
		return
	}

	h.logger.Info().Str("id", id).Msg("CIM deleted")
	WriteSuccess(w, "CIM deleted")
}

// ExportCIMHandler handles POST /api/cims/{id}/export
func (h *CIMHandler) ExportCIMHandler(w http.ResponseWriter, r *http.Request) {
	id := extractIDFromPath(r.URL.Path, "/api/cims/")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "CIM ID is required")
		return
	}

	doc, err := h.storage.GetDocument(r.Context(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			WriteError(w, http.StatusNotFound, "CIM not found")
		} else {
			h.logger.Error().Err(err).Str("id", id).Msg("Failed to get CIM for export")
			WriteError(w, http.StatusInternalServerError, "Failed to get CIM")
		}
		return
	}

	output, err := h.renderer.Export(r.Context(), doc)
	if err != nil {
		h.logger.Error().Err(err).Str("id", id).Msg("CIM export failed")
		if strings.Contains(err.Error(), "missing required sections") {
			WriteError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "CIM export failed")
		return
	}

	h.logger.Info().
		Str("id", id).
		Str("engine", output.Engine).
		Int("pages", output.Pages).
		Int("bytes", len(output.Data)).
		Msg("CIM exported")

	w.Header().Set("Content-Type", output.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename(doc)))
	w.Header().Set("X-Render-Engine", output.Engine)
	w.WriteHeader(http.StatusOK)
	w.Write(output.Data)
}

// exportFilename builds a download filename from the company name.
func exportFilename(doc *models.CIMDocument) string {
	name := strings.TrimSpace(doc.CompanyName)
	if name == "" {
		name = doc.ID
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, name)
	return name + "_CIM.pdf"
}
