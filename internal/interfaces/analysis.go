package interfaces

import (
	"github.com/ternarybob/memoria/internal/models"
)

// FinancialAnalyzer computes metrics and narrative inputs from a company's
// financial series. Stateless: every call is independent.
type FinancialAnalyzer interface {
	// Analyze produces a full financial analysis for the given series.
	// An empty series is replaced by representative defaults and flagged
	// on the result. A series whose slices disagree in length is an error.
	Analyze(company models.Company, series models.FinancialSeries) (*models.FinancialAnalysis, error)
}

// MarketAnalyzer derives market positioning content from caller-provided
// market context, falling back to industry defaults where context is missing.
type MarketAnalyzer interface {
	Analyze(company models.Company, market models.MarketContext) (*models.MarketAnalysis, error)
}

// ROIProjector builds the three-scenario return projection for an
// investment in the company. The series supplies the revenue anchor quoted
// in the narrative; scenario economics derive from the investment amount.
type ROIProjector interface {
	Project(company models.Company, series models.FinancialSeries, assumptions models.Assumptions) (*models.ROIProjection, error)
}
