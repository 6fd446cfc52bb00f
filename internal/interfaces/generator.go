package interfaces

import (
	"context"

	"github.com/ternarybob/memoria/internal/models"
)

// GenerateInput carries everything needed to build one CIM document.
// Zero-value fields fall back to defaults during analysis.
type GenerateInput struct {
	Company     models.Company
	Series      models.FinancialSeries
	Market      models.MarketContext
	Assumptions models.Assumptions
	TemplateID  string
}

// DocumentCompiler assembles a complete CIM document from raw company
// inputs: analyzers fan out in parallel, the synthesizer produces prose,
// and sections are assembled in a fixed order and validated.
type DocumentCompiler interface {
	Generate(ctx context.Context, input GenerateInput) (*models.CIMDocument, error)
}
