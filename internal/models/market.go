package models

// MarketContext holds industry descriptors supplied with a generation
// request. MarketSize and GrowthRate may be zero, in which case the market
// analyzer substitutes documented defaults.
type MarketContext struct {
	MarketSize  float64  `json:"market_size"`  // total addressable market, USD
	GrowthRate  float64  `json:"growth_rate"`  // percent per year
	Competitors []string `json:"competitors"`
	Trends      []string `json:"trends"`
}

// MarketAnalysis is the immutable result of the market analyzer.
type MarketAnalysis struct {
	Content      string   `json:"content"`
	MarketSize   float64  `json:"market_size"`
	GrowthRate   float64  `json:"growth_rate"`
	Opportunity  string   `json:"opportunity"`
	Advantages   []string `json:"advantages"`
	Risks        []string `json:"risks"`
	UsedDefaults bool     `json:"used_defaults"`
}
