package validation

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fonfolio/internal/api/request"
	"fonfolio/internal/apperrors"
	"fonfolio/internal/model"
)

// ParseAddHolding validates an add-holding request and converts it into a
// Holding ready for the store.
//
// Required fields:
//   - code: non-empty, normalised to upper case
//   - date: YYYY-MM-DD format
//   - quantity: decimal number, must be > 0
//   - price: decimal number, must be >= 0
//
// Returns a field-keyed Error if any check fails.
func ParseAddHolding(req request.AddHoldingRequest) (model.Holding, error) {
	errors := make(map[string]string)

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		errors["code"] = "fund code is required"
	}

	var date time.Time
	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else {
		var err error
		date, err = time.Parse(model.DateFormat, strings.TrimSpace(req.Date))
		if err != nil {
			errors["date"] = "date must be in YYYY-MM-DD format"
		}
	}

	quantity, err := decimal.NewFromString(strings.TrimSpace(req.Quantity))
	switch {
	case err != nil:
		errors["quantity"] = "quantity must be a number"
	case quantity.Sign() <= 0:
		errors["quantity"] = "quantity must be positive"
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	switch {
	case err != nil:
		errors["price"] = "price must be a number"
	case price.Sign() < 0:
		errors["price"] = "price cannot be negative"
	}

	if len(errors) > 0 {
		return model.Holding{}, &Error{Fields: errors}
	}

	return model.Holding{
		Code:     code,
		Date:     date,
		Quantity: quantity,
		Price:    price,
	}, nil
}

// ParseRowIndex parses a row identifier from a URL parameter. Row indexes
// are 1-based positive integers.
func ParseRowIndex(s string) (int, error) {
	row, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || row < 1 {
		return 0, apperrors.ErrInvalidRowIndex
	}
	return row, nil
}
