package sheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fonfolio/internal/model"
)

// holdingFromCells parses one sheet row (Code, Date, Quantity, Price) into a
// Holding. The fund code is uppercased and trimmed the way the add form
// normalises it.
func holdingFromCells(cells []interface{}) (model.Holding, error) {
	if len(cells) < 4 {
		return model.Holding{}, fmt.Errorf("row has %d cells, want 4", len(cells))
	}

	code := strings.ToUpper(strings.TrimSpace(cellString(cells[0])))
	if code == "" {
		return model.Holding{}, fmt.Errorf("empty fund code")
	}

	date, err := time.Parse(model.DateFormat, strings.TrimSpace(cellString(cells[1])))
	if err != nil {
		return model.Holding{}, fmt.Errorf("bad date cell: %w", err)
	}

	quantity, err := cellDecimal(cells[2])
	if err != nil {
		return model.Holding{}, fmt.Errorf("bad quantity cell: %w", err)
	}

	price, err := cellDecimal(cells[3])
	if err != nil {
		return model.Holding{}, fmt.Errorf("bad price cell: %w", err)
	}

	return model.Holding{
		Code:     code,
		Date:     date,
		Quantity: quantity,
		Price:    price,
	}, nil
}

// cellsFromHolding renders a Holding as one sheet row. Numbers are written
// as strings to keep the RAW value input from rounding them.
func cellsFromHolding(h model.Holding) []interface{} {
	return []interface{}{
		h.Code,
		h.Date.Format(model.DateFormat),
		h.Quantity.String(),
		h.Price.String(),
	}
}

// cellString renders any cell value the API may hand back as a string.
func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case float64:
		return decimal.NewFromFloat(v).String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// cellDecimal parses a numeric cell. Formatted sheet values may use a comma
// as the decimal separator depending on the spreadsheet locale.
func cellDecimal(cell interface{}) (decimal.Decimal, error) {
	switch v := cell.(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		return decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", "."))
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported cell type %T", cell)
	}
}
