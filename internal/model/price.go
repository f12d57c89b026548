package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LivePrice is the latest published price for a fund code, fetched fresh
// from the external feed on every listing. It is never persisted.
type LivePrice struct {
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	AsOf  time.Time       `json:"asOf"`
}
