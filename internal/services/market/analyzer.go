package market

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// Defaults substituted when the caller supplies no market sizing. Results
// built from them carry UsedDefaults=true.
const (
	defaultMarketSize = 12_500_000_000
	minimumMarketSize = 1_000_000_000
	defaultGrowthRate = 15.0
)

var defaultTrends = []string{
	"Accelerating digital adoption across the sector",
	"Consolidation among mid-market participants",
	"Increasing customer preference for integrated solutions",
}

// Analyzer implements interfaces.MarketAnalyzer
type Analyzer struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.MarketAnalyzer = (*Analyzer)(nil)

// NewAnalyzer creates a new market analyzer
func NewAnalyzer(logger arbor.ILogger) *Analyzer {
	return &Analyzer{
		logger: logger,
	}
}

// Analyze derives market positioning content from the supplied context,
// substituting documented defaults for absent sizing figures.
func (a *Analyzer) Analyze(company models.Company, market models.MarketContext) (*models.MarketAnalysis, error) {
	usedDefaults := false

	size := market.MarketSize
	if size <= 0 {
		size = defaultMarketSize
		usedDefaults = true
	} else if size < minimumMarketSize {
		size = minimumMarketSize
	}

	growth := market.GrowthRate
	if growth <= 0 {
		growth = defaultGrowthRate
		usedDefaults = true
	}

	trends := market.Trends
	if len(trends) == 0 {
		trends = defaultTrends
	}

	advantages := buildAdvantages(company, market)
	risks := buildRisks(company, market)

	analysis := &models.MarketAnalysis{
		Content:      buildNarrative(company, size, growth, trends, market.Competitors),
		MarketSize:   size,
		GrowthRate:   growth,
		Opportunity:  fmt.Sprintf("%s addressable market growing at %s annually", common.FormatCurrency(size), common.FormatPercent(growth)),
		Advantages:   advantages,
		Risks:        risks,
		UsedDefaults: usedDefaults,
	}

	a.logger.Debug().
		Str("company", company.DisplayName()).
		Str("market_size", common.FormatCurrency(size)).
		Bool("used_defaults", usedDefaults).
		Msg("Market analysis complete")

	return analysis, nil
}

// buildAdvantages returns exactly four competitive advantages.
func buildAdvantages(company models.Company, market models.MarketContext) []string {
	industry := company.DisplayIndustry()
	advantages := []string{
		fmt.Sprintf("Differentiated positioning within the %s sector", strings.ToLower(industry)),
		"Proven ability to win and retain enterprise customers",
		"Operating model that scales without proportional cost growth",
	}
	if len(market.Competitors) > 0 {
		advantages = append(advantages, fmt.Sprintf("Clear competitive moat relative to %s", joinNames(market.Competitors)))
	} else {
		advantages = append(advantages, "Limited direct competition in the core segment")
	}
	return advantages
}

// buildRisks returns exactly four market risks.
func buildRisks(company models.Company, market models.MarketContext) []string {
	risks := []string{
		fmt.Sprintf("Market dynamics in the %s sector may shift faster than anticipated", strings.ToLower(company.DisplayIndustry())),
		"New entrants could compress pricing in the core segment",
		"Technology disruption may shorten product and platform cycles",
	}
	if len(market.Competitors) > 1 {
		risks = append(risks, fmt.Sprintf("Established competitors (%s) may consolidate share", joinNames(market.Competitors)))
	} else {
		risks = append(risks, "Customer acquisition costs may rise as the market matures")
	}
	return risks
}

func buildNarrative(company models.Company, size, growth float64, trends, competitors []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s operates in a %s market expanding at approximately %s per year within the %s sector.\n\n",
		company.DisplayName(), common.FormatCurrency(size), common.FormatPercent(growth), strings.ToLower(company.DisplayIndustry()))

	b.WriteString("Key market trends:\n")
	for _, trend := range trends {
		fmt.Fprintf(&b, "- %s\n", trend)
	}

	if len(competitors) > 0 {
		fmt.Fprintf(&b, "\nThe competitive landscape includes %s. ", joinNames(competitors))
		b.WriteString("The company's positioning and execution track record support continued share gains.")
	}

	return strings.TrimSpace(b.String())
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
