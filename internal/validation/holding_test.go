package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"fonfolio/internal/api/request"
	"fonfolio/internal/apperrors"
)

func TestParseAddHolding(t *testing.T) {
	t.Run("valid request parses and normalises", func(t *testing.T) {
		h, err := ParseAddHolding(request.AddHoldingRequest{
			Code:     " afa ",
			Date:     "2024-01-01",
			Quantity: "100.5",
			Price:    "1.50",
		})
		if err != nil {
			t.Fatalf("ParseAddHolding failed: %v", err)
		}

		if h.Code != "AFA" {
			t.Errorf("Expected code AFA, got %q", h.Code)
		}
		if !h.Quantity.Equal(decimal.RequireFromString("100.5")) {
			t.Errorf("Expected quantity 100.5, got %s", h.Quantity)
		}
		if !h.Price.Equal(decimal.RequireFromString("1.50")) {
			t.Errorf("Expected price 1.50, got %s", h.Price)
		}
		if h.Date.Format("2006-01-02") != "2024-01-01" {
			t.Errorf("Expected date 2024-01-01, got %s", h.Date)
		}
	})

	t.Run("collects one error per bad field", func(t *testing.T) {
		cases := []struct {
			name  string
			req   request.AddHoldingRequest
			field string
		}{
			{"missing code", request.AddHoldingRequest{Date: "2024-01-01", Quantity: "1", Price: "1"}, "code"},
			{"bad date", request.AddHoldingRequest{Code: "AFA", Date: "01.01.2024", Quantity: "1", Price: "1"}, "date"},
			{"missing date", request.AddHoldingRequest{Code: "AFA", Quantity: "1", Price: "1"}, "date"},
			{"negative quantity", request.AddHoldingRequest{Code: "AFA", Date: "2024-01-01", Quantity: "-1", Price: "1"}, "quantity"},
			{"zero quantity", request.AddHoldingRequest{Code: "AFA", Date: "2024-01-01", Quantity: "0", Price: "1"}, "quantity"},
			{"non-numeric quantity", request.AddHoldingRequest{Code: "AFA", Date: "2024-01-01", Quantity: "ten", Price: "1"}, "quantity"},
			{"negative price", request.AddHoldingRequest{Code: "AFA", Date: "2024-01-01", Quantity: "1", Price: "-0.5"}, "price"},
			{"non-numeric price", request.AddHoldingRequest{Code: "AFA", Date: "2024-01-01", Quantity: "1", Price: "x"}, "price"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := ParseAddHolding(tc.req)

				var vErr *Error
				if !errors.As(err, &vErr) {
					t.Fatalf("Expected validation.Error, got %v", err)
				}
				if _, ok := vErr.Fields[tc.field]; !ok {
					t.Errorf("Expected error on field %q, got %v", tc.field, vErr.Fields)
				}
			})
		}
	})

	t.Run("zero price is valid", func(t *testing.T) {
		if _, err := ParseAddHolding(request.AddHoldingRequest{
			Code: "AFA", Date: "2024-01-01", Quantity: "1", Price: "0",
		}); err != nil {
			t.Errorf("Expected zero price to validate, got %v", err)
		}
	})
}

func TestParseRowIndex(t *testing.T) {
	valid := map[string]int{"1": 1, "42": 42, " 7 ": 7}
	for in, want := range valid {
		row, err := ParseRowIndex(in)
		if err != nil {
			t.Errorf("ParseRowIndex(%q) failed: %v", in, err)
		}
		if row != want {
			t.Errorf("ParseRowIndex(%q) = %d, want %d", in, row, want)
		}
	}

	for _, in := range []string{"", "0", "-1", "abc", "1.5"} {
		if _, err := ParseRowIndex(in); !errors.Is(err, apperrors.ErrInvalidRowIndex) {
			t.Errorf("ParseRowIndex(%q): expected ErrInvalidRowIndex, got %v", in, err)
		}
	}
}
