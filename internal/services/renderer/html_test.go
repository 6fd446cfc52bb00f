package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/memoria/internal/models"
)

// newTestDocument builds a complete eight-section document by hand.
func newTestDocument() *models.CIMDocument {
	sections := map[string]*models.Section{
		models.SectionExecutiveSummary:     {Title: "Executive Summary", Order: 1, Content: models.TextContent("Summary prose.")},
		models.SectionCompanyOverview:      {Title: "Company Overview", Order: 2, Content: models.KeyedContent(models.LabeledContent{Label: "About", Content: models.TextContent("About text.")})},
		models.SectionMarketAnalysis:       {Title: "Market Analysis", Order: 3, Content: models.TextContent("Market prose.")},
		models.SectionFinancialAnalysis:    {Title: "Financial Analysis", Order: 4, Content: models.TextContent("Financial prose.")},
		models.SectionInvestmentHighlights: {Title: "Investment Highlights", Order: 5, Content: models.TextList([]string{"Highlight one", "Highlight two"})},
		models.SectionROIProjections:       {Title: "ROI Projections", Order: 6, Content: models.TextContent("ROI prose.")},
		models.SectionRiskFactors:          {Title: "Risk Factors", Order: 7, Content: models.TextList([]string{"Risk one"})},
		models.SectionAppendices:           {Title: "Appendices", Order: 8, Content: models.TextContent("Appendix prose.")},
	}

	return &models.CIMDocument{
		ID:          "cim_test",
		Title:       "Acme Corp - Confidential Information Memorandum",
		CompanyName: "Acme Corp",
		Industry:    "Software",
		TemplateID:  "standard",
		Status:      models.StatusDraft,
		Sections:    sections,
		Series: models.FinancialSeries{
			Years:   []int{2022, 2023, 2024},
			Revenue: []float64{1_000_000, 1_500_000, 2_200_000},
			EBITDA:  []float64{200_000, 320_000, 500_000},
		},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
}

func TestCompileHTML_SectionOrderAndTitles(t *testing.T) {
	doc := newTestDocument()

	page, err := compileHTML(doc, "")
	require.NoError(t, err)

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	headings := parsed.Find("section h2").Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
	assert.Equal(t, []string{
		"Executive Summary",
		"Company Overview",
		"Market Analysis",
		"Financial Analysis",
		"Investment Highlights",
		"ROI Projections",
		"Risk Factors",
		"Appendices",
	}, headings)

	assert.Equal(t, 1, parsed.Find("header.cover").Length())
	assert.Contains(t, parsed.Find("header.cover h1").Text(), "Acme Corp")
}

func TestCompileHTML_ChartInjection(t *testing.T) {
	doc := newTestDocument()
	chart := buildChartSVG(doc.Series)
	require.NotEmpty(t, chart)

	page, err := compileHTML(doc, chart)
	require.NoError(t, err)

	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)

	// The chart lives inside the financial analysis section only.
	assert.Equal(t, 1, parsed.Find("figure.chart svg#financial-chart").Length())
	financialSection := parsed.Find("section").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Find("h2").Text() == "Financial Analysis"
	})
	assert.Equal(t, 1, financialSection.Find("figure.chart").Length())

	assert.Contains(t, page, "window.chartRendered")
}

func TestCompileHTML_NoChartForEmptySeries(t *testing.T) {
	doc := newTestDocument()
	doc.Series = models.FinancialSeries{}

	chart := buildChartSVG(doc.Series)
	assert.Empty(t, chart)

	page, err := compileHTML(doc, chart)
	require.NoError(t, err)
	assert.NotContains(t, page, "figure class=\"chart\"")
}

func TestFormatContent_Variants(t *testing.T) {
	t.Run("text renders markdown", func(t *testing.T) {
		out, err := formatContent(models.TextContent("**bold** text"))
		require.NoError(t, err)
		assert.Contains(t, out, "<strong>bold</strong>")
	})

	t.Run("list renders ul", func(t *testing.T) {
		out, err := formatContent(models.TextList([]string{"one", "two"}))
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "<li>"))
		assert.True(t, strings.HasPrefix(out, "<ul>"))
	})

	t.Run("keyed renders dl with escaped labels", func(t *testing.T) {
		out, err := formatContent(models.KeyedContent(
			models.LabeledContent{Label: "A & B", Content: models.TextContent("value")},
		))
		require.NoError(t, err)
		assert.Contains(t, out, "<dt>A &amp; B</dt>")
		assert.Contains(t, out, "<dd>")
	})

	t.Run("nested keyed inside list", func(t *testing.T) {
		out, err := formatContent(models.ListContent(
			models.KeyedContent(models.LabeledContent{Label: "IRR", Content: models.TextContent("22.0%")}),
		))
		require.NoError(t, err)
		assert.Contains(t, out, "<li><dl class=\"keyed\">")
	})

	t.Run("unknown kind fails", func(t *testing.T) {
		_, err := formatContent(models.SectionContent{Kind: "bogus"})
		require.Error(t, err)
	})
}
