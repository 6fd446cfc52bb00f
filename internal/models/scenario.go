package models

// Scenario describes one projected investment outcome.
type Scenario struct {
	Name          string  `json:"name"`
	IRR           float64 `json:"irr"`            // percent
	Multiple      float64 `json:"multiple"`       // exit multiple, e.g. 4.2x
	PaybackYears  float64 `json:"payback_years"`
	ExitValuation float64 `json:"exit_valuation"` // USD
}

// ScenarioSet is exactly the three named projection tiers. Construction in
// the ROI projector guarantees Optimistic.IRR >= Base.IRR >= Conservative.IRR
// and the same ordering for multiples.
type ScenarioSet struct {
	Base         Scenario `json:"base"`
	Optimistic   Scenario `json:"optimistic"`
	Conservative Scenario `json:"conservative"`
}

// ROIProjection is the immutable result of the ROI projector: the three
// scenarios plus a narrative block embedding them and the applied assumptions.
type ROIProjection struct {
	Content     string      `json:"content"`
	Scenarios   ScenarioSet `json:"scenarios"`
	Assumptions Assumptions `json:"assumptions"`
}
