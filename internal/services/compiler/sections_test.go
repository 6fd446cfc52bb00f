package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
	"github.com/ternarybob/memoria/internal/templates"
)

func TestAugmentGrowthStrategy(t *testing.T) {
	strategies := []string{"Expand into adjacent verticals", "Pursue bolt-on acquisitions"}

	augmented := AugmentGrowthStrategy("Market content.", strategies)
	assert.Contains(t, augmented, "## Growth Strategy")
	assert.Contains(t, augmented, "Expand into adjacent verticals")

	// Re-augmenting must not duplicate the block.
	twice := AugmentGrowthStrategy(augmented, strategies)
	assert.Equal(t, augmented, twice)
	assert.Equal(t, 1, strings.Count(twice, "## Growth Strategy"))
}

func TestAugmentGrowthStrategy_NoStrategies(t *testing.T) {
	assert.Equal(t, "Market content.", AugmentGrowthStrategy("Market content.", nil))
}

func TestCollectRisks_Union(t *testing.T) {
	market := &models.MarketAnalysis{
		Risks: []string{"Pricing pressure", "Churn risk"},
	}
	tmpl := &templates.Template{
		IndustryRisks: []string{"Churn risk", "Regulatory change"},
	}

	risks := collectRisks(market, tmpl)
	assert.Equal(t, []string{"Pricing pressure", "Churn risk", "Regulatory change"}, risks)
}

func TestCollectRisks_FallbackDefaults(t *testing.T) {
	risks := collectRisks(&models.MarketAnalysis{}, &templates.Template{})
	require.NotEmpty(t, risks)
	assert.Equal(t, defaultRisks, risks)
}

func TestBuildAppendices_ProvenanceDisclosure(t *testing.T) {
	narrative := &interfaces.NarrativeSections{InvestmentThesis: "Thesis."}

	t.Run("defaults flagged", func(t *testing.T) {
		content := buildAppendices(narrative,
			&models.FinancialAnalysis{UsedDefaults: true},
			&models.MarketAnalysis{UsedDefaults: true})

		text := flattenContent(content)
		assert.Contains(t, text, "illustrative baseline")
		assert.Contains(t, text, "industry default estimates")
	})

	t.Run("supplied data acknowledged", func(t *testing.T) {
		content := buildAppendices(narrative,
			&models.FinancialAnalysis{},
			&models.MarketAnalysis{})

		text := flattenContent(content)
		assert.Contains(t, text, "supplied by the company")
		assert.NotContains(t, text, "illustrative baseline")
	})
}

func TestBuildFinancialSection_RevenueByYear(t *testing.T) {
	financial := &models.FinancialAnalysis{
		Content:    "Overview text.",
		GrowthRate: "15.0%",
		Trend:      "strong growth",
		Series: models.FinancialSeries{
			Years:   []int{2023, 2024},
			Revenue: []float64{2_500_000, 3_200_000},
		},
	}

	content := buildFinancialSection(financial)
	require.Equal(t, models.ContentKeyed, content.Kind)

	var table models.SectionContent
	for _, entry := range content.Block {
		if entry.Label == "Revenue by Year" {
			table = entry.Content
		}
	}
	require.Equal(t, models.ContentKeyed, table.Kind)
	require.Len(t, table.Block, 2)
	assert.Equal(t, "2023", table.Block[0].Label)
	assert.Equal(t, "$2.5M", table.Block[0].Content.Text)
	assert.Equal(t, "2024", table.Block[1].Label)
	assert.Equal(t, "$3.2M", table.Block[1].Content.Text)
}
