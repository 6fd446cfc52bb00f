package narrative

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// Synthesizer modes, fixed at construction.
const (
	ModeAI            = "ai"
	ModeDeterministic = "deterministic"
)

// Synthesizer implements interfaces.NarrativeSynthesizer as a two-variant
// strategy: AI-backed when a text generator is supplied, deterministic
// otherwise. The variant is selected once at construction; the AI variant
// falls back to the deterministic templates on any generation failure.
type Synthesizer struct {
	generator interfaces.TextGenerator
	logger    arbor.ILogger
	mode      string
}

// Compile-time assertion
var _ interfaces.NarrativeSynthesizer = (*Synthesizer)(nil)

// NewSynthesizer creates a narrative synthesizer. A nil generator selects
// the deterministic variant; the downgrade is logged once here rather than
// per call.
func NewSynthesizer(generator interfaces.TextGenerator, logger arbor.ILogger) *Synthesizer {
	mode := ModeAI
	if generator == nil {
		mode = ModeDeterministic
		logger.Warn().Msg("No text generator configured, all narratives will use deterministic templates")
	}
	return &Synthesizer{
		generator: generator,
		logger:    logger,
		mode:      mode,
	}
}

// Synthesize produces the five narrative sections. The deterministic
// sections are always built; on the AI variant the executive summary is
// replaced with the generated text when the call succeeds. Generation
// failures are logged and absorbed, never propagated.
func (s *Synthesizer) Synthesize(ctx context.Context, company models.Company, financial *models.FinancialAnalysis, market *models.MarketAnalysis, roi *models.ROIProjection) *interfaces.NarrativeSections {
	sections := buildDeterministicSections(company, financial, market, roi)

	if s.mode != ModeAI {
		return sections
	}

	prompt := buildPrompt(company, financial, market)
	response, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("provider", s.generator.ProviderName()).
			Str("company", company.DisplayName()).
			Msg("AI narrative generation failed, using deterministic template")
		return sections
	}

	if strings.TrimSpace(response) == "" {
		s.logger.Warn().
			Str("provider", s.generator.ProviderName()).
			Msg("AI narrative generation returned empty text, using deterministic template")
		return sections
	}

	s.logger.Debug().
		Str("provider", s.generator.ProviderName()).
		Int("response_length", len(response)).
		Msg("AI narrative generation succeeded")

	// The response is used verbatim; its internal section structure is the
	// provider's responsibility and is not validated here.
	sections.ExecutiveSummary = response
	return sections
}

// Mode reports which variant the synthesizer was constructed with.
func (s *Synthesizer) Mode() string {
	return s.mode
}
