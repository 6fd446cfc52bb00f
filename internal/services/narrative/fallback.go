package narrative

import (
	"fmt"
	"strings"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// buildDeterministicSections interpolates all five narrative sections from
// analyzer output. This path has no external dependencies and always
// produces non-empty content.
func buildDeterministicSections(company models.Company, financial *models.FinancialAnalysis, market *models.MarketAnalysis, roi *models.ROIProjection) *interfaces.NarrativeSections {
	return &interfaces.NarrativeSections{
		ExecutiveSummary:     buildExecutiveSummary(company, financial, market, roi),
		InvestmentHighlights: buildInvestmentHighlights(financial, market),
		FinancialNarrative:   financial.Content,
		MarketNarrative:      market.Content,
		InvestmentThesis:     buildInvestmentThesis(company, financial, market, roi),
	}
}

func buildExecutiveSummary(company models.Company, financial *models.FinancialAnalysis, market *models.MarketAnalysis, roi *models.ROIProjection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s is a %s business demonstrating %s, with revenue compounding at %s.\n\n",
		company.DisplayName(), strings.ToLower(company.DisplayIndustry()), financial.Trend, financial.GrowthRate)

	fmt.Fprintf(&b, "The company addresses a %s market growing at %s annually. %s\n\n",
		common.FormatCurrency(market.MarketSize), common.FormatPercent(market.GrowthRate), market.Opportunity)

	base := roi.Scenarios.Base
	fmt.Fprintf(&b, "An investment of %s is projected to return %s at a %s IRR in the base case, with an exit valuation of %s over a %d-year horizon.",
		common.FormatCurrency(roi.Assumptions.InvestmentAmount),
		common.FormatMultiple(base.Multiple),
		common.FormatPercent(base.IRR),
		common.FormatCurrency(base.ExitValuation),
		roi.Assumptions.TimeHorizonYears)

	return b.String()
}

func buildInvestmentHighlights(financial *models.FinancialAnalysis, market *models.MarketAnalysis) string {
	var b strings.Builder
	for _, h := range financial.Highlights {
		fmt.Fprintf(&b, "- %s\n", h)
	}
	for _, adv := range market.Advantages {
		fmt.Fprintf(&b, "- %s\n", adv)
	}
	return strings.TrimSpace(b.String())
}

func buildInvestmentThesis(company models.Company, financial *models.FinancialAnalysis, market *models.MarketAnalysis, roi *models.ROIProjection) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The investment thesis for %s rests on three pillars: a financial profile of %s, ", company.DisplayName(), financial.Trend)
	fmt.Fprintf(&b, "a %s addressable market expanding at %s annually, ",
		common.FormatCurrency(market.MarketSize), common.FormatPercent(market.GrowthRate))
	fmt.Fprintf(&b, "and a projected %s base-case return multiple with %s as the intended exit.",
		common.FormatMultiple(roi.Scenarios.Base.Multiple), strings.ToLower(roi.Assumptions.ExitStrategy))

	if financial.Metrics.CAGR.Valid {
		fmt.Fprintf(&b, " Historical revenue growth of %s provides context for the projected scenarios, which are modeled on fixed return tiers rather than extrapolated growth.",
			common.FormatPercent(financial.Metrics.CAGR.Value*100))
	}

	return b.String()
}
