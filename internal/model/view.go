package model

// PortfolioView is everything the dashboard and the portfolio API endpoint
// return: the per-row valued holdings in store order, the per-fund
// positions, and the aggregate totals.
type PortfolioView struct {
	Holdings  []ValuedHolding  `json:"holdings"`
	Positions []Position       `json:"positions"`
	Summary   PortfolioSummary `json:"summary"`
}
