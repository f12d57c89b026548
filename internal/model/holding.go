package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the calendar-date layout used across the store, the HTML
// forms and the JSON API.
const DateFormat = "2006-01-02"

// Holding is a single recorded purchase of fund units, one row in the
// backing store. Row is the 1-based position of the row among the data rows
// and is assigned by Store.List; it is the identifier used to delete a
// holding.
type Holding struct {
	Row      int             `json:"row"`
	Code     string          `json:"code"`
	Date     time.Time       `json:"date"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CostBasis returns quantity times purchase price.
func (h Holding) CostBasis() decimal.Decimal {
	return h.Quantity.Mul(h.Price)
}

// ValuedHolding is a Holding joined with its live price. CurrentPrice,
// MarketValue and Gain are nil when no live price could be fetched for the
// fund code; the row is still listed with its cost basis.
type ValuedHolding struct {
	Holding
	FundName     string           `json:"fundName"`
	CostBasis    decimal.Decimal  `json:"costBasis"`
	CurrentPrice *decimal.Decimal `json:"currentPrice,omitempty"`
	MarketValue  *decimal.Decimal `json:"marketValue,omitempty"`
	Gain         *decimal.Decimal `json:"gain,omitempty"`
}

// Priced reports whether a live price was available for this holding.
func (v ValuedHolding) Priced() bool {
	return v.CurrentPrice != nil
}

// Position aggregates all holdings of one fund code: total quantity,
// weighted-average cost and current valuation.
type Position struct {
	Code          string           `json:"code"`
	FundName      string           `json:"fundName"`
	Quantity      decimal.Decimal  `json:"quantity"`
	AverageCost   decimal.Decimal  `json:"averageCost"`
	TotalCost     decimal.Decimal  `json:"totalCost"`
	CurrentPrice  *decimal.Decimal `json:"currentPrice,omitempty"`
	CurrentValue  *decimal.Decimal `json:"currentValue,omitempty"`
	ProfitLoss    *decimal.Decimal `json:"profitLoss,omitempty"`
	ProfitLossPct *decimal.Decimal `json:"profitLossPct,omitempty"`
}

// PortfolioSummary holds the aggregate totals over every holding. Degraded
// rows (no live price) contribute to TotalCost only.
type PortfolioSummary struct {
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalValue   decimal.Decimal `json:"totalValue"`
	TotalGain    decimal.Decimal `json:"totalGain"`
	TotalGainPct decimal.Decimal `json:"totalGainPct"`
}
