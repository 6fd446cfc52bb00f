package narrative

import (
	"fmt"
	"strings"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/models"
)

// maxPromptHighlights bounds how much analyzer output is interpolated into
// the prompt, keeping it well under provider input limits.
const maxPromptHighlights = 6

// buildPrompt assembles the generation prompt from company identity and the
// two analysis results. The backend is instructed to produce five fixed
// markdown sections; the response is used verbatim and not validated against
// that structure.
func buildPrompt(company models.Company, financial *models.FinancialAnalysis, market *models.MarketAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a professional executive summary for a Confidential Information Memorandum.\n\n")
	fmt.Fprintf(&b, "Company: %s\n", company.DisplayName())
	fmt.Fprintf(&b, "Industry: %s\n", company.DisplayIndustry())
	if company.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", company.Description)
	}

	b.WriteString("\nFinancial highlights:\n")
	for i, h := range financial.Highlights {
		if i >= maxPromptHighlights {
			break
		}
		fmt.Fprintf(&b, "- %s\n", h)
	}
	fmt.Fprintf(&b, "- Growth classification: %s (CAGR %s)\n", financial.Trend, financial.GrowthRate)

	fmt.Fprintf(&b, "\nMarket opportunity: %s\n", market.Opportunity)
	b.WriteString("Competitive advantages:\n")
	for i, adv := range market.Advantages {
		if i >= maxPromptHighlights {
			break
		}
		fmt.Fprintf(&b, "- %s\n", adv)
	}

	fmt.Fprintf(&b, "\nMarket size: %s growing at %s annually.\n",
		common.FormatCurrency(market.MarketSize), common.FormatPercent(market.GrowthRate))

	b.WriteString(`
Produce exactly five Markdown sections with these headings, in this order:
## Investment Opportunity
## Key Investment Highlights
## Financial Performance
## Market Opportunity
## Investment Thesis

Keep the tone factual and institutional. Do not invent figures beyond those provided.`)

	return b.String()
}
