package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
	"github.com/ternarybob/memoria/internal/templates"
)

type stubSynthesizer struct{}

func (s stubSynthesizer) Synthesize(ctx context.Context, company models.Company, financial *models.FinancialAnalysis, market *models.MarketAnalysis, roi *models.ROIProjection) *interfaces.NarrativeSections {
	return &interfaces.NarrativeSections{}
}

func (s stubSynthesizer) Mode() string { return "deterministic" }

var _ interfaces.NarrativeSynthesizer = stubSynthesizer{}

func TestGetHealthHandler(t *testing.T) {
	storage := newMemStorage()
	storage.docs["cim_abc"] = sampleDocument()

	handler := NewHealthHandler(storage, &stubRenderer{}, stubSynthesizer{}, arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.GetHealthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, 1, resp.Documents)
	assert.Equal(t, "fpdf", resp.RenderEngine)
	assert.Equal(t, "deterministic", resp.NarrativeMode)
}

func TestGetHealthHandler_MethodNotAllowed(t *testing.T) {
	handler := NewHealthHandler(newMemStorage(), &stubRenderer{}, stubSynthesizer{}, arbor.NewLogger())

	req := httptest.NewRequest("POST", "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.GetHealthHandler(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestListTemplatesHandler(t *testing.T) {
	handler := NewTemplateHandler(templates.NewRegistry(""), arbor.NewLogger())

	req := httptest.NewRequest("GET", "/api/templates", nil)
	rec := httptest.NewRecorder()
	handler.ListTemplatesHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []TemplateSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 3)

	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, "standard")
	assert.Contains(t, ids, "tech")
	assert.Contains(t, ids, "healthcare")
}
