package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fonfolio/internal/model"
)

// Holding builds a model.Holding from string decimals. Fails the test on a
// malformed number or date.
func Holding(t *testing.T, code, date, quantity, price string) model.Holding {
	t.Helper()

	d, err := time.Parse(model.DateFormat, date)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}

	return model.Holding{
		Code:     code,
		Date:     d,
		Quantity: mustDecimal(t, quantity),
		Price:    mustDecimal(t, price),
	}
}

// Price builds a model.LivePrice from a string decimal.
func Price(t *testing.T, code, name, price string) model.LivePrice {
	t.Helper()

	return model.LivePrice{
		Code:  code,
		Name:  name,
		Price: mustDecimal(t, price),
		AsOf:  time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}
