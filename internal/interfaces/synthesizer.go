package interfaces

import (
	"context"

	"github.com/ternarybob/memoria/internal/models"
)

// NarrativeSections holds the five prose sections the synthesizer produces.
// Every field is always populated: generation falls back to deterministic
// templates rather than returning partial content.
type NarrativeSections struct {
	ExecutiveSummary     string
	InvestmentHighlights string
	FinancialNarrative   string
	MarketNarrative      string
	InvestmentThesis     string
}

// NarrativeSynthesizer turns analysis results into CIM prose. The AI-backed
// variant consults a TextGenerator and falls back to deterministic templates
// on any failure; Synthesize never returns an error.
type NarrativeSynthesizer interface {
	Synthesize(ctx context.Context, company models.Company, financial *models.FinancialAnalysis, market *models.MarketAnalysis, roi *models.ROIProjection) *NarrativeSections

	// Mode reports which path the synthesizer was constructed with,
	// "ai" or "deterministic".
	Mode() string
}
