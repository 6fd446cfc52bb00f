package compiler

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
	"github.com/ternarybob/memoria/internal/services/financial"
	"github.com/ternarybob/memoria/internal/services/market"
	"github.com/ternarybob/memoria/internal/services/narrative"
	"github.com/ternarybob/memoria/internal/services/roi"
	"github.com/ternarybob/memoria/internal/templates"
)

// flattenContent collapses a content tree into one string for assertions.
func flattenContent(c models.SectionContent) string {
	switch c.Kind {
	case models.ContentText:
		return c.Text
	case models.ContentList:
		var parts []string
		for _, item := range c.Items {
			parts = append(parts, flattenContent(item))
		}
		return strings.Join(parts, "\n")
	case models.ContentKeyed:
		var parts []string
		for _, entry := range c.Block {
			parts = append(parts, entry.Label+": "+flattenContent(entry.Content))
		}
		return strings.Join(parts, "\n")
	default:
		return ""
	}
}

func newTestCompiler() *Service {
	logger := arbor.NewLogger()
	return NewService(
		financial.NewAnalyzer(logger),
		market.NewAnalyzer(logger),
		roi.NewProjector(logger),
		narrative.NewSynthesizer(nil, logger),
		templates.NewRegistry(""),
		logger,
	)
}

func TestGenerate_DocumentCompleteness(t *testing.T) {
	compiler := newTestCompiler()

	doc, err := compiler.Generate(context.Background(), interfaces.GenerateInput{
		Company: models.Company{Name: "Acme Corp", Industry: "Software"},
		Series: models.FinancialSeries{
			Years:   []int{2022, 2023, 2024},
			Revenue: []float64{1_000_000, 1_500_000, 2_200_000},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Len(t, doc.Sections, 8)
	assert.Empty(t, doc.MissingSections())

	for key, section := range doc.Sections {
		assert.False(t, section.Content.IsEmpty(), "section %s has empty content", key)
		assert.NotEmpty(t, section.Title, "section %s has empty title", key)
	}
}

func TestGenerate_SectionOrderDeterminism(t *testing.T) {
	compiler := newTestCompiler()

	input := interfaces.GenerateInput{
		Company: models.Company{Name: "Acme Corp"},
	}

	first, err := compiler.Generate(context.Background(), input)
	require.NoError(t, err)
	second, err := compiler.Generate(context.Background(), input)
	require.NoError(t, err)

	ordered := first.OrderedSections()
	require.Len(t, ordered, 8)
	for i, section := range ordered {
		assert.Equal(t, i+1, section.Order)
	}

	assert.Equal(t, "Executive Summary", ordered[0].Title)
	assert.Equal(t, "Appendices", ordered[7].Title)

	secondOrdered := second.OrderedSections()
	for i := range ordered {
		assert.Equal(t, ordered[i].Title, secondOrdered[i].Title)
	}
}

func TestGenerate_DocumentMetadata(t *testing.T) {
	compiler := newTestCompiler()

	doc, err := compiler.Generate(context.Background(), interfaces.GenerateInput{
		Company: models.Company{Name: "Acme Corp", Industry: "Software"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Corp - Confidential Information Memorandum", doc.Title)
	assert.Equal(t, "Acme Corp", doc.CompanyName)
	assert.Equal(t, models.StatusDraft, doc.Status)
	assert.Equal(t, "standard", doc.TemplateID)
	assert.Contains(t, doc.ID, "cim_")
	assert.False(t, doc.CreatedAt.IsZero())
}

func TestGenerate_CompanyNameRequired(t *testing.T) {
	compiler := newTestCompiler()

	_, err := compiler.Generate(context.Background(), interfaces.GenerateInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "company name is required")
}

func TestGenerate_UnknownTemplateFatal(t *testing.T) {
	compiler := newTestCompiler()

	_, err := compiler.Generate(context.Background(), interfaces.GenerateInput{
		Company:    models.Company{Name: "Acme Corp"},
		TemplateID: "no-such-template",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template lookup")
}

func TestGenerate_InvalidSeriesFatal(t *testing.T) {
	compiler := newTestCompiler()

	_, err := compiler.Generate(context.Background(), interfaces.GenerateInput{
		Company: models.Company{Name: "Acme Corp"},
		Series: models.FinancialSeries{
			Revenue:   []float64{100, 200},
			NetIncome: []float64{10},
		},
	})
	require.Error(t, err)
}

func TestGenerate_EndToEndBaseCase(t *testing.T) {
	compiler := newTestCompiler()

	doc, err := compiler.Generate(context.Background(), interfaces.GenerateInput{
		Company: models.Company{Name: "Summit Analytics", Industry: "Software"},
		Series: models.FinancialSeries{
			Years:   []int{2020, 2021, 2022, 2023, 2024},
			Revenue: []float64{10_000_000, 11_500_000, 13_225_000, 15_208_750, 17_490_063},
		},
		Assumptions: models.Assumptions{InvestmentAmount: 5_000_000},
	})
	require.NoError(t, err)

	roiSection := doc.Sections[models.SectionROIProjections]
	require.NotNil(t, roiSection)
	text := flattenContent(roiSection.Content)
	assert.Contains(t, text, "22.0%")
	assert.Contains(t, text, "4.2x")
	assert.Contains(t, text, "$21.0M")

	execSummary := flattenContent(doc.Sections[models.SectionExecutiveSummary].Content)
	assert.Contains(t, execSummary, "15.0%")
}

func TestGenerate_TemplateTitlesApplied(t *testing.T) {
	compiler := newTestCompiler()

	doc, err := compiler.Generate(context.Background(), interfaces.GenerateInput{
		Company:    models.Company{Name: "Acme Corp", Industry: "Healthcare"},
		TemplateID: "healthcare",
	})
	require.NoError(t, err)

	assert.Equal(t, "healthcare", doc.TemplateID)
	for _, section := range doc.Sections {
		assert.NotEmpty(t, section.Title)
	}
}
