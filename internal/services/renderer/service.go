package renderer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// Service implements interfaces.DocumentRenderer. It compiles the document
// into markup, embeds the financial chart, and drives the configured engine
// to produce paginated output.
type Service struct {
	config   *common.RendererConfig
	chromium *chromiumEngine
	fpdf     *fpdfEngine
	logger   arbor.ILogger
}

// Compile-time assertion
var _ interfaces.DocumentRenderer = (*Service)(nil)

// NewService creates a new document renderer
func NewService(config *common.RendererConfig, logger arbor.ILogger) *Service {
	return &Service{
		config:   config,
		chromium: newChromiumEngine(config, logger),
		fpdf:     newFpdfEngine(logger),
		logger:   logger,
	}
}

// Export renders the document to PDF. Missing required sections are a fatal
// validation error distinct from rendering failures; chart problems degrade
// rather than fail.
func (s *Service) Export(ctx context.Context, doc *models.CIMDocument) (*models.RenderedOutput, error) {
	if doc == nil {
		return nil, fmt.Errorf("export: document is required")
	}
	if missing := doc.MissingSections(); len(missing) > 0 {
		return nil, fmt.Errorf("export validation: document %s is missing required sections: %s", doc.ID, strings.Join(missing, ", "))
	}

	startTime := time.Now()
	s.logger.Info().
		Str("id", doc.ID).
		Str("engine", s.Engine()).
		Msg("Starting document export")

	var (
		pdf        []byte
		chartDrawn bool
		err        error
	)

	switch s.Engine() {
	case "fpdf":
		pdf, err = s.fpdf.render(doc)
	default:
		chartSVG := buildChartSVG(doc.Series)
		var html string
		html, err = compileHTML(doc, chartSVG)
		if err != nil {
			return nil, fmt.Errorf("template compilation: %w", err)
		}
		pdf, chartDrawn, err = s.chromium.render(ctx, html, doc.Title)
		if chartSVG == "" {
			chartDrawn = false
		}
	}
	if err != nil {
		return nil, fmt.Errorf("rendering failed: %w", err)
	}

	output := &models.RenderedOutput{
		Data:        pdf,
		ContentType: "application/pdf",
		Pages:       s.countPages(pdf),
		Engine:      s.Engine(),
		ChartDrawn:  chartDrawn,
		RenderedAt:  time.Now().UTC(),
	}

	s.logger.Info().
		Str("id", doc.ID).
		Int("pages", output.Pages).
		Bool("chart_drawn", output.ChartDrawn).
		Dur("duration", time.Since(startTime)).
		Msg("Document export complete")

	return output, nil
}

// Engine identifies the configured rendering backend.
func (s *Service) Engine() string {
	if s.config.Engine == "fpdf" {
		return "fpdf"
	}
	return "chromium"
}

// countPages inspects the generated PDF. Failure to parse the output is a
// warning, not an export failure.
func (s *Service) countPages(pdf []byte) int {
	pdfCtx, err := api.ReadContext(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read generated PDF for page count")
		return 0
	}
	return pdfCtx.PageCount
}
