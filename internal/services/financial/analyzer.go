package financial

import (
	"fmt"
	"math"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/memoria/internal/common"
	"github.com/ternarybob/memoria/internal/interfaces"
	"github.com/ternarybob/memoria/internal/models"
)

// Trend classification thresholds over CAGR (decimal). Fixed constants,
// not configurable.
const (
	strongGrowthThreshold   = 0.15
	moderateGrowthThreshold = 0.05
)

const (
	TrendStrongGrowth   = "strong growth"
	TrendModerateGrowth = "moderate growth"
	TrendSteadyGrowth   = "steady growth"
)

// defaultSeries is the illustrative baseline substituted when the caller
// supplies no financial data. Results built from it carry UsedDefaults=true.
var defaultSeries = models.FinancialSeries{
	Years:     []int{2020, 2021, 2022, 2023, 2024},
	Revenue:   []float64{1_200_000, 1_500_000, 1_800_000, 2_500_000, 3_200_000},
	NetIncome: []float64{180_000, 225_000, 270_000, 375_000, 480_000},
	EBITDA:    []float64{270_000, 337_500, 405_000, 562_500, 720_000},
	CashFlow:  []float64{240_000, 300_000, 360_000, 500_000, 640_000},
}

// Analyzer implements interfaces.FinancialAnalyzer
type Analyzer struct {
	logger arbor.ILogger
}

// Compile-time assertion
var _ interfaces.FinancialAnalyzer = (*Analyzer)(nil)

// NewAnalyzer creates a new financial analyzer
func NewAnalyzer(logger arbor.ILogger) *Analyzer {
	return &Analyzer{
		logger: logger,
	}
}

// Analyze computes growth metrics, a trend classification, highlights and a
// narrative block for the given series. An empty series is replaced with the
// baseline series and flagged. A series whose parallel slices disagree in
// length is a fatal input error.
func (a *Analyzer) Analyze(company models.Company, series models.FinancialSeries) (*models.FinancialAnalysis, error) {
	usedDefaults := false
	if series.IsEmpty() {
		a.logger.Warn().Str("company", company.DisplayName()).Msg("No financial series supplied, using illustrative baseline")
		series = defaultSeries
		usedDefaults = true
	}

	if err := validateSeries(series); err != nil {
		return nil, fmt.Errorf("financial analysis: %w", err)
	}

	metrics := computeMetrics(series)
	trend := classifyTrend(metrics.CAGR)
	highlights := buildHighlights(series, metrics, trend)

	analysis := &models.FinancialAnalysis{
		Content:      buildNarrative(company, series, metrics, trend),
		Highlights:   highlights,
		GrowthRate:   formatCAGR(metrics.CAGR),
		Trend:        trend,
		Metrics:      metrics,
		Series:       series,
		UsedDefaults: usedDefaults,
	}

	a.logger.Debug().
		Str("company", company.DisplayName()).
		Str("trend", trend).
		Str("cagr", analysis.GrowthRate).
		Bool("used_defaults", usedDefaults).
		Msg("Financial analysis complete")

	return analysis, nil
}

func validateSeries(series models.FinancialSeries) error {
	n := len(series.Revenue)
	if n == 0 {
		return fmt.Errorf("empty revenue series")
	}
	for name, values := range map[string][]float64{
		"net_income": series.NetIncome,
		"ebitda":     series.EBITDA,
		"cash_flow":  series.CashFlow,
	} {
		if len(values) != 0 && len(values) != n {
			return fmt.Errorf("series length mismatch: revenue has %d years, %s has %d", n, name, len(values))
		}
	}
	if len(series.Years) != 0 && len(series.Years) != n {
		return fmt.Errorf("series length mismatch: revenue has %d years, years has %d", n, len(series.Years))
	}
	return nil
}

func computeMetrics(series models.FinancialSeries) models.FinancialMetrics {
	var metrics models.FinancialMetrics

	n := series.Len()
	first := series.Revenue[0]
	last := series.Revenue[n-1]

	// CAGR is undefined for a single year or a non-positive starting value.
	if n > 1 && first > 0 && last > 0 {
		metrics.CAGR = models.ValidMetric(math.Pow(last/first, 1/float64(n-1)) - 1)
	}

	if first != 0 {
		metrics.RevenueGrowth = models.ValidMetric((last/first - 1) * 100)
	}

	if last != 0 {
		if len(series.NetIncome) == n {
			metrics.ProfitMargin = models.ValidMetric(series.NetIncome[n-1] / last * 100)
		}
		if len(series.EBITDA) == n {
			metrics.EBITDAMargin = models.ValidMetric(series.EBITDA[n-1] / last * 100)
		}
	}

	return metrics
}

func classifyTrend(cagr models.Metric) string {
	switch {
	case cagr.Valid && cagr.Value > strongGrowthThreshold:
		return TrendStrongGrowth
	case cagr.Valid && cagr.Value >= moderateGrowthThreshold:
		return TrendModerateGrowth
	default:
		return TrendSteadyGrowth
	}
}

func formatCAGR(cagr models.Metric) string {
	if !cagr.Valid {
		return "not applicable"
	}
	return common.FormatPercent(cagr.Value * 100)
}

// ProjectRevenue extends a historical series forward by compounding its last
// value at the given decimal growth rate, one entry per projected year.
func ProjectRevenue(historical []float64, years int, growthRate float64) []float64 {
	if len(historical) == 0 || years <= 0 {
		return nil
	}
	last := historical[len(historical)-1]
	projected := make([]float64, 0, years)
	for k := 1; k <= years; k++ {
		projected = append(projected, last*math.Pow(1+growthRate, float64(k)))
	}
	return projected
}

func buildHighlights(series models.FinancialSeries, metrics models.FinancialMetrics, trend string) []string {
	n := series.Len()
	var highlights []string

	if metrics.CAGR.Valid {
		highlights = append(highlights, fmt.Sprintf("Revenue compounding at %s annually over %d years", common.FormatPercent(metrics.CAGR.Value*100), n))
	} else {
		highlights = append(highlights, fmt.Sprintf("Current revenue of %s", common.FormatCurrency(series.Revenue[n-1])))
	}

	if metrics.ProfitMargin.Valid {
		highlights = append(highlights, fmt.Sprintf("Net profit margin of %s in the most recent year", common.FormatPercent(metrics.ProfitMargin.Value)))
	}
	if metrics.EBITDAMargin.Valid {
		highlights = append(highlights, fmt.Sprintf("EBITDA margin of %s demonstrating operating leverage", common.FormatPercent(metrics.EBITDAMargin.Value)))
	}
	if len(series.CashFlow) == n && series.CashFlow[n-1] > 0 {
		highlights = append(highlights, fmt.Sprintf("Positive operating cash flow of %s", common.FormatCurrency(series.CashFlow[n-1])))
	}

	highlights = append(highlights, fmt.Sprintf("Financial profile characterized by %s", trend))
	return highlights
}

func buildNarrative(company models.Company, series models.FinancialSeries, metrics models.FinancialMetrics, trend string) string {
	n := series.Len()
	var b strings.Builder

	fmt.Fprintf(&b, "%s has recorded revenue of %s in the most recent fiscal year", company.DisplayName(), common.FormatCurrency(series.Revenue[n-1]))
	if metrics.CAGR.Valid {
		fmt.Fprintf(&b, ", reflecting a compound annual growth rate of %s across the %d-year period", common.FormatPercent(metrics.CAGR.Value*100), n)
	}
	fmt.Fprintf(&b, ". The trajectory is classified as %s.\n\n", trend)

	if metrics.ProfitMargin.Valid {
		fmt.Fprintf(&b, "Profitability remains healthy with a net margin of %s", common.FormatPercent(metrics.ProfitMargin.Value))
		if metrics.EBITDAMargin.Valid {
			fmt.Fprintf(&b, " and an EBITDA margin of %s", common.FormatPercent(metrics.EBITDAMargin.Value))
		}
		b.WriteString(".\n\n")
	}

	if metrics.RevenueGrowth.Valid {
		fmt.Fprintf(&b, "Total revenue growth over the period was %s, from %s to %s.\n\n",
			common.FormatPercent(metrics.RevenueGrowth.Value),
			common.FormatCurrency(series.Revenue[0]),
			common.FormatCurrency(series.Revenue[n-1]))
	}

	if metrics.CAGR.Valid {
		projected := ProjectRevenue(series.Revenue, 3, metrics.CAGR.Value)
		fmt.Fprintf(&b, "Sustaining the historical growth rate would put revenue at approximately %s within three years.",
			common.FormatCurrency(projected[len(projected)-1]))
	}

	return strings.TrimSpace(b.String())
}
