package models

// FinancialSeries is a chronological, parallel set of yearly figures.
// All slices are expected to have equal length. Negative values are legal;
// computations over the series must tolerate them.
type FinancialSeries struct {
	Years     []int     `json:"years"`
	Revenue   []float64 `json:"revenue"`
	NetIncome []float64 `json:"net_income"`
	EBITDA    []float64 `json:"ebitda"`
	CashFlow  []float64 `json:"cash_flow"`
}

// IsEmpty reports whether the series carries no revenue data at all.
func (s FinancialSeries) IsEmpty() bool {
	return len(s.Revenue) == 0
}

// Len returns the number of fiscal years in the series.
func (s FinancialSeries) Len() int {
	return len(s.Revenue)
}

// Metric is a computed value that may be inapplicable for the given input
// (single-year CAGR, margin over zero revenue). Valid is false in that case
// and Value must be ignored.
type Metric struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// ValidMetric wraps a computed value.
func ValidMetric(v float64) Metric { return Metric{Value: v, Valid: true} }

// FinancialMetrics is the machine-readable summary of a financial analysis.
type FinancialMetrics struct {
	CAGR          Metric `json:"cagr"`           // decimal, e.g. 0.15 for 15%
	ProfitMargin  Metric `json:"profit_margin"`  // percent
	EBITDAMargin  Metric `json:"ebitda_margin"`  // percent
	RevenueGrowth Metric `json:"revenue_growth"` // percent over the full period
}

// FinancialAnalysis is the immutable result of the financial analyzer:
// a narrative-ready markdown block plus the raw metrics, highlights and the
// normalized series used for downstream charting.
type FinancialAnalysis struct {
	Content      string           `json:"content"`
	Highlights   []string         `json:"highlights"`
	GrowthRate   string           `json:"growth_rate"` // formatted CAGR, e.g. "15.0%"
	Trend        string           `json:"trend"`
	Metrics      FinancialMetrics `json:"metrics"`
	Series       FinancialSeries  `json:"series"`
	UsedDefaults bool             `json:"used_defaults"`
}

// Assumptions are the investor parameters for ROI projection. Zero values
// are replaced by defaults via WithDefaults.
type Assumptions struct {
	InvestmentAmount float64 `json:"investment_amount"`
	TimeHorizonYears int     `json:"time_horizon_years"`
	ExitStrategy     string  `json:"exit_strategy"`
}

const (
	// DefaultInvestmentAmount is applied when the caller omits an amount.
	DefaultInvestmentAmount = 5_000_000
	// DefaultTimeHorizonYears is applied when the caller omits a horizon.
	DefaultTimeHorizonYears = 5
	// DefaultExitStrategy is applied when the caller omits an exit label.
	DefaultExitStrategy = "Strategic acquisition or IPO"
)

// WithDefaults returns a copy with documented defaults substituted for
// absent fields.
func (a Assumptions) WithDefaults() Assumptions {
	if a.InvestmentAmount <= 0 {
		a.InvestmentAmount = DefaultInvestmentAmount
	}
	if a.TimeHorizonYears <= 0 {
		a.TimeHorizonYears = DefaultTimeHorizonYears
	}
	if a.ExitStrategy == "" {
		a.ExitStrategy = DefaultExitStrategy
	}
	return a
}
