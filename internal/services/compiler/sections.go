package compiler

import (
	"fmt"
	"strings"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
	"github.com/ternarybob/memoria/internal/templates"
)

// growthStrategyHeading marks the augmentation block appended to the market
// section. Augmentation is idempotent: content already carrying the heading
// is left untouched.
const growthStrategyHeading = "## Growth Strategy"

// defaultRisks is used when neither analyzer nor template supplies any risk
// statements. The risk section is never empty.
var defaultRisks = []string{
	"Market conditions may change adversely during the holding period",
	"Competition may intensify beyond current expectations",
	"Key customer or supplier relationships may not be retained post-transaction",
	"Regulatory or compliance requirements may increase operating costs",
	"Projected growth rates may not materialize as modeled",
}

// buildSections assembles the fixed eight-section document body in order.
func buildSections(
	company models.Company,
	financial *models.FinancialAnalysis,
	market *models.MarketAnalysis,
	roi *models.ROIProjection,
	narrative *interfaces.NarrativeSections,
	tmpl *templates.Template,
) map[string]*models.Section {
	sections := make(map[string]*models.Section, 8)

	add := func(key, defaultTitle string, order int, content models.SectionContent) {
		sections[key] = &models.Section{
			Title:   tmpl.SectionTitle(key, defaultTitle),
			Content: content,
			Order:   order,
		}
	}

	add(models.SectionExecutiveSummary, "Executive Summary", 1,
		models.TextContent(narrative.ExecutiveSummary))

	add(models.SectionCompanyOverview, "Company Overview", 2,
		buildCompanyOverview(company, financial, market))

	add(models.SectionMarketAnalysis, "Market Analysis", 3,
		models.TextContent(AugmentGrowthStrategy(narrative.MarketNarrative, tmpl.GrowthStrategies)))

	add(models.SectionFinancialAnalysis, "Financial Analysis", 4,
		buildFinancialSection(financial))

	add(models.SectionInvestmentHighlights, "Investment Highlights", 5,
		buildHighlightsSection(financial, market, tmpl))

	add(models.SectionROIProjections, "ROI Projections", 6,
		buildROISection(roi))

	add(models.SectionRiskFactors, "Risk Factors", 7,
		models.TextList(collectRisks(market, tmpl)))

	add(models.SectionAppendices, "Appendices", 8,
		buildAppendices(narrative, financial, market))

	return sections
}

// AugmentGrowthStrategy appends the growth strategy block to market content
// unless the block is already present.
func AugmentGrowthStrategy(content string, strategies []string) string {
	if strings.Contains(content, growthStrategyHeading) {
		return content
	}
	if len(strategies) == 0 {
		return content
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString("\n\n")
	b.WriteString(growthStrategyHeading)
	b.WriteString("\n")
	for _, s := range strategies {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return strings.TrimRight(b.String(), "\n")
}

func buildCompanyOverview(company models.Company, financial *models.FinancialAnalysis, market *models.MarketAnalysis) models.SectionContent {
	about := company.Description
	if about == "" {
		about = fmt.Sprintf("%s operates in the %s sector.", company.DisplayName(), strings.ToLower(company.DisplayIndustry()))
	}

	strengths := make([]string, 0, len(financial.Highlights)+len(market.Advantages))
	strengths = append(strengths, financial.Highlights...)
	strengths = append(strengths, market.Advantages...)

	return models.KeyedContent(
		models.LabeledContent{Label: "About", Content: models.TextContent(about)},
		models.LabeledContent{Label: "Industry", Content: models.TextContent(company.DisplayIndustry())},
		models.LabeledContent{Label: "Key Strengths", Content: models.TextList(strengths)},
	)
}

func buildFinancialSection(financial *models.FinancialAnalysis) models.SectionContent {
	metrics := []models.LabeledContent{
		{Label: "Revenue CAGR", Content: models.TextContent(financial.GrowthRate)},
		{Label: "Trend", Content: models.TextContent(financial.Trend)},
	}
	if financial.Metrics.ProfitMargin.Valid {
		metrics = append(metrics, models.LabeledContent{
			Label:   "Net Margin",
			Content: models.TextContent(common.FormatPercent(financial.Metrics.ProfitMargin.Value)),
		})
	}
	if financial.Metrics.EBITDAMargin.Valid {
		metrics = append(metrics, models.LabeledContent{
			Label:   "EBITDA Margin",
			Content: models.TextContent(common.FormatPercent(financial.Metrics.EBITDAMargin.Value)),
		})
	}
	if financial.Metrics.RevenueGrowth.Valid {
		metrics = append(metrics, models.LabeledContent{
			Label:   "Total Revenue Growth",
			Content: models.TextContent(common.FormatPercent(financial.Metrics.RevenueGrowth.Value)),
		})
	}

	entries := []models.LabeledContent{
		{Label: "Overview", Content: models.TextContent(financial.Content)},
		{Label: "Key Metrics", Content: models.KeyedContent(metrics...)},
	}

	if n := financial.Series.Len(); n > 0 {
		rows := make([]models.LabeledContent, 0, n)
		for i := 0; i < n; i++ {
			label := fmt.Sprintf("Y%d", i+1)
			if len(financial.Series.Years) == n {
				label = fmt.Sprintf("%d", financial.Series.Years[i])
			}
			rows = append(rows, models.LabeledContent{
				Label:   label,
				Content: models.TextContent(common.FormatCurrency(financial.Series.Revenue[i])),
			})
		}
		entries = append(entries, models.LabeledContent{Label: "Revenue by Year", Content: models.KeyedContent(rows...)})
	}

	return models.KeyedContent(entries...)
}

func buildHighlightsSection(financial *models.FinancialAnalysis, market *models.MarketAnalysis, tmpl *templates.Template) models.SectionContent {
	highlights := make([]string, 0, len(financial.Highlights)+len(market.Advantages)+len(tmpl.HighlightEmphasis))
	highlights = append(highlights, financial.Highlights...)
	highlights = append(highlights, market.Advantages...)
	highlights = append(highlights, tmpl.HighlightEmphasis...)
	return models.TextList(highlights)
}

func buildROISection(roi *models.ROIProjection) models.SectionContent {
	scenarioBlock := func(s models.Scenario) models.SectionContent {
		return models.KeyedContent(
			models.LabeledContent{Label: "IRR", Content: models.TextContent(common.FormatPercent(s.IRR))},
			models.LabeledContent{Label: "Return Multiple", Content: models.TextContent(common.FormatMultiple(s.Multiple))},
			models.LabeledContent{Label: "Payback", Content: models.TextContent(common.FormatYears(s.PaybackYears))},
			models.LabeledContent{Label: "Exit Valuation", Content: models.TextContent(common.FormatCurrency(s.ExitValuation))},
		)
	}

	assumptions := models.KeyedContent(
		models.LabeledContent{Label: "Investment Amount", Content: models.TextContent(common.FormatCurrency(roi.Assumptions.InvestmentAmount))},
		models.LabeledContent{Label: "Time Horizon", Content: models.TextContent(fmt.Sprintf("%d years", roi.Assumptions.TimeHorizonYears))},
		models.LabeledContent{Label: "Exit Strategy", Content: models.TextContent(roi.Assumptions.ExitStrategy)},
	)

	return models.KeyedContent(
		models.LabeledContent{Label: "Overview", Content: models.TextContent(roi.Content)},
		models.LabeledContent{Label: roi.Scenarios.Base.Name, Content: scenarioBlock(roi.Scenarios.Base)},
		models.LabeledContent{Label: roi.Scenarios.Optimistic.Name, Content: scenarioBlock(roi.Scenarios.Optimistic)},
		models.LabeledContent{Label: roi.Scenarios.Conservative.Name, Content: scenarioBlock(roi.Scenarios.Conservative)},
		models.LabeledContent{Label: "Assumptions", Content: assumptions},
	)
}

// collectRisks unions analyzer and template risks, de-duplicated in first
// occurrence order, falling back to the fixed defaults when empty.
func collectRisks(market *models.MarketAnalysis, tmpl *templates.Template) []string {
	seen := make(map[string]bool)
	var risks []string
	for _, r := range append(append([]string{}, market.Risks...), tmpl.IndustryRisks...) {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		risks = append(risks, r)
	}
	if len(risks) == 0 {
		return defaultRisks
	}
	return risks
}

func buildAppendices(narrative *interfaces.NarrativeSections, financial *models.FinancialAnalysis, market *models.MarketAnalysis) models.SectionContent {
	entries := []models.LabeledContent{
		{Label: "Investment Thesis", Content: models.TextContent(narrative.InvestmentThesis)},
	}

	// Data provenance disclosure: callers must be able to distinguish real
	// extracted data from illustrative placeholders.
	if financial.UsedDefaults || market.UsedDefaults {
		var notes []string
		if financial.UsedDefaults {
			notes = append(notes, "Financial figures are illustrative baseline values; no financial data was supplied.")
		}
		if market.UsedDefaults {
			notes = append(notes, "Market sizing uses industry default estimates; no market data was supplied.")
		}
		entries = append(entries, models.LabeledContent{
			Label:   "Data Sources",
			Content: models.TextList(notes),
		})
	} else {
		entries = append(entries, models.LabeledContent{
			Label:   "Data Sources",
			Content: models.TextContent("Financial and market figures were supplied by the company."),
		})
	}

	return models.KeyedContent(entries...)
}
