package renderer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/models"
)

func newFpdfService() *Service {
	return NewService(&common.RendererConfig{Engine: "fpdf"}, arbor.NewLogger())
}

func TestExport_MissingSectionsFatal(t *testing.T) {
	service := newFpdfService()

	doc := newTestDocument()
	delete(doc.Sections, models.SectionROIProjections)

	_, err := service.Export(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required sections")
	assert.Contains(t, err.Error(), models.SectionROIProjections)
}

func TestExport_NilDocument(t *testing.T) {
	service := newFpdfService()

	_, err := service.Export(context.Background(), nil)
	require.Error(t, err)
}

func TestExport_FpdfEngine(t *testing.T) {
	service := newFpdfService()

	output, err := service.Export(context.Background(), newTestDocument())
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, "application/pdf", output.ContentType)
	assert.Equal(t, "fpdf", output.Engine)
	assert.False(t, output.ChartDrawn)
	assert.Equal(t, "%PDF", string(output.Data[:4]))
	assert.GreaterOrEqual(t, output.Pages, 1)
	assert.False(t, output.RenderedAt.IsZero())
}

func TestEngine_Selection(t *testing.T) {
	assert.Equal(t, "fpdf", NewService(&common.RendererConfig{Engine: "fpdf"}, arbor.NewLogger()).Engine())
	assert.Equal(t, "chromium", NewService(&common.RendererConfig{Engine: "chromium"}, arbor.NewLogger()).Engine())
	// Unset engine defaults to chromium.
	assert.Equal(t, "chromium", NewService(&common.RendererConfig{}, arbor.NewLogger()).Engine())
}
