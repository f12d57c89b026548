package tefas

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"fonfolio/internal/apperrors"
)

func TestFundClient_GetLatestPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the newest row in the window", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/DB/BindHistoryInfo" {
				t.Errorf("Unexpected path %s", r.URL.Path)
			}
			if err := r.ParseForm(); err != nil {
				t.Fatalf("Failed to parse form: %v", err)
			}
			if got := r.PostFormValue("fonkod"); got != "AFA" {
				t.Errorf("Expected fonkod AFA, got %q", got)
			}
			if got := r.PostFormValue("fontip"); got != "YAT" {
				t.Errorf("Expected fontip YAT, got %q", got)
			}

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test server
			w.Write([]byte(`{
				"draw": 0,
				"recordsTotal": 3,
				"recordsFiltered": 3,
				"data": [
					{"TARIH": "1704153600000", "FONKODU": "AFA", "FONUNVAN": "AK Portfoy Alternatif Enerji", "FIYAT": 1.75},
					{"TARIH": "1704326400000", "FONKODU": "AFA", "FONUNVAN": "AK Portfoy Alternatif Enerji", "FIYAT": 1.80},
					{"TARIH": "1704240000000", "FONKODU": "AFA", "FONUNVAN": "AK Portfoy Alternatif Enerji", "FIYAT": 1.78}
				]
			}`))
		}))
		defer server.Close()

		client := NewFundClient(server.URL)
		price, err := client.GetLatestPrice(ctx, "AFA")
		if err != nil {
			t.Fatalf("GetLatestPrice failed: %v", err)
		}

		if !price.Price.Equal(decimal.RequireFromString("1.8")) {
			t.Errorf("Expected latest price 1.8, got %s", price.Price)
		}
		if price.Name != "AK Portfoy Alternatif Enerji" {
			t.Errorf("Unexpected fund name %q", price.Name)
		}
		if price.Code != "AFA" {
			t.Errorf("Unexpected code %q", price.Code)
		}
		if got := price.AsOf.Format("2006-01-02"); got != "2024-01-04" {
			t.Errorf("Expected as-of date 2024-01-04, got %s", got)
		}
	})

	t.Run("unknown code reports price not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck // test server
			w.Write([]byte(`{"draw": 0, "recordsTotal": 0, "recordsFiltered": 0, "data": []}`))
		}))
		defer server.Close()

		client := NewFundClient(server.URL)
		if _, err := client.GetLatestPrice(ctx, "NOPE"); !errors.Is(err, apperrors.ErrPriceNotFound) {
			t.Errorf("Expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("non-200 status fails the lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewFundClient(server.URL)
		if _, err := client.GetLatestPrice(ctx, "AFA"); err == nil {
			t.Error("Expected error on 502 response")
		}
	})

	t.Run("malformed body fails the lookup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			//nolint:errcheck // test server
			w.Write([]byte("<html>maintenance</html>"))
		}))
		defer server.Close()

		client := NewFundClient(server.URL)
		if _, err := client.GetLatestPrice(ctx, "AFA"); err == nil {
			t.Error("Expected error on non-JSON response")
		}
	})
}
