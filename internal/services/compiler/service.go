package compiler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/errgroup"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// Service implements interfaces.DocumentCompiler. It fans out the three
// analyzers concurrently, feeds their results to the narrative synthesizer,
// and assembles the ordered section set.
type Service struct {
	financial   interfaces.FinancialAnalyzer
	market      interfaces.MarketAnalyzer
	roi         interfaces.ROIProjector
	synthesizer interfaces.NarrativeSynthesizer
	templates   interfaces.TemplateProvider
	logger      arbor.ILogger
}

// Compile-time assertion
var _ interfaces.DocumentCompiler = (*Service)(nil)

// NewService creates a new document compiler
func NewService(
	financial interfaces.FinancialAnalyzer,
	market interfaces.MarketAnalyzer,
	roi interfaces.ROIProjector,
	synthesizer interfaces.NarrativeSynthesizer,
	templates interfaces.TemplateProvider,
	logger arbor.ILogger,
) *Service {
	return &Service{
		financial:   financial,
		market:      market,
		roi:         roi,
		synthesizer: synthesizer,
		templates:   templates,
		logger:      logger,
	}
}

// Generate builds a complete CIM document. Analyzer failures abort the whole
// generation; narrative backend failures do not (the synthesizer absorbs
// them). The returned document always contains the full section set.
func (s *Service) Generate(ctx context.Context, input interfaces.GenerateInput) (*models.CIMDocument, error) {
	if strings.TrimSpace(input.Company.Name) == "" {
		return nil, fmt.Errorf("generation input: company name is required")
	}

	// Resolve the template before any analysis work: an unknown id is fatal
	// and there is no default fallback at this boundary.
	templateID := input.TemplateID
	if templateID == "" {
		templateID = "standard"
	}
	tmpl, err := s.templates.Get(templateID)
	if err != nil {
		return nil, fmt.Errorf("template lookup: %w", err)
	}

	startTime := time.Now()
	s.logger.Info().
		Str("company", input.Company.Name).
		Str("template", templateID).
		Msg("Starting CIM generation")

	// Fan out: the three analyzers are independent pure computations.
	// The first error cancels the group and aborts generation; analyzer
	// errors indicate defective input, so no retry.
	var (
		financial *models.FinancialAnalysis
		market    *models.MarketAnalysis
		roi       *models.ROIProjection
	)

	var g errgroup.Group
	g.Go(func() error {
		var err error
		financial, err = s.financial.Analyze(input.Company, input.Series)
		return err
	})
	g.Go(func() error {
		var err error
		market, err = s.market.Analyze(input.Company, input.Market)
		return err
	})
	g.Go(func() error {
		var err error
		roi, err = s.roi.Project(input.Company, input.Series, input.Assumptions)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	// Fan in: narrative synthesis consumes the analysis results and never
	// fails; the worst case is deterministic template output.
	narrative := s.synthesizer.Synthesize(ctx, input.Company, financial, market, roi)

	now := time.Now().UTC()
	doc := &models.CIMDocument{
		ID:          common.NewCIMID(),
		Title:       fmt.Sprintf("%s - Confidential Information Memorandum", input.Company.DisplayName()),
		CompanyName: input.Company.Name,
		Industry:    input.Company.DisplayIndustry(),
		TemplateID:  templateID,
		Status:      models.StatusDraft,
		Sections:    buildSections(input.Company, financial, market, roi, narrative, tmpl),
		Series:      financial.Series,
		GeneratedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if missing := doc.MissingSections(); len(missing) > 0 {
		return nil, fmt.Errorf("document assembly produced incomplete document, missing sections: %s", strings.Join(missing, ", "))
	}

	s.logger.Info().
		Str("id", doc.ID).
		Str("company", input.Company.Name).
		Int("sections", len(doc.Sections)).
		Str("narrative_mode", s.synthesizer.Mode()).
		Dur("duration", time.Since(startTime)).
		Msg("CIM generation complete")

	return doc, nil
}
