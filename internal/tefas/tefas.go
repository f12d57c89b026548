// Package tefas fetches mutual-fund prices from TEFAS, the Turkish
// electronic fund trading platform. TEFAS publishes one price per fund per
// business day, so the latest price is found by querying a short trailing
// window and taking the most recent row.
package tefas

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fonfolio/internal/apperrors"
	"fonfolio/internal/model"
)

// historyWindowDays is how far back the latest-price query looks. Five days
// always spans at least one business day across weekends and single
// holidays.
const historyWindowDays = 5

// Client is the price feed contract consumed by the portfolio service.
type Client interface {
	// GetLatestPrice returns the most recently published price for the fund
	// code, or apperrors.ErrPriceNotFound if TEFAS has no data for it.
	GetLatestPrice(ctx context.Context, code string) (model.LivePrice, error)
}

// FundClient provides methods for fetching fund data from the TEFAS API.
type FundClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewFundClient creates a new TEFAS client. baseURL is normally
// "https://www.tefas.gov.tr"; tests point it at a local server.
func NewFundClient(baseURL string) *FundClient {
	return &FundClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetLatestPrice fetches the trailing price window for one fund code and
// returns the newest row.
func (c *FundClient) GetLatestPrice(ctx context.Context, code string) (model.LivePrice, error) {
	now := time.Now()
	resp, err := c.queryHistory(ctx, code, now.AddDate(0, 0, -historyWindowDays), now)
	if err != nil {
		return model.LivePrice{}, err
	}

	latest, ok := latestRow(resp.Data)
	if !ok {
		return model.LivePrice{}, fmt.Errorf("%w: %s", apperrors.ErrPriceNotFound, code)
	}

	asOf, err := parseEpochMillis(latest.Date)
	if err != nil {
		return model.LivePrice{}, fmt.Errorf("bad date in TEFAS response for %s: %w", code, err)
	}

	return model.LivePrice{
		Code:  code,
		Name:  latest.Title,
		Price: decimal.NewFromFloat(latest.Price),
		AsOf:  asOf,
	}, nil
}

// queryHistory posts a BindHistoryInfo request for one fund code over the
// given date range. TEFAS expects dd.MM.yyyy dates and form encoding.
func (c *FundClient) queryHistory(ctx context.Context, code string, start, end time.Time) (Response, error) {
	form := url.Values{}
	form.Set("fontip", "YAT")
	form.Set("fonkod", code)
	form.Set("bastarih", start.Format("02.01.2006"))
	form.Set("bittarih", end.Format("02.01.2006"))

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/DB/BindHistoryInfo",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Response{}, fmt.Errorf("tefas returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, fmt.Errorf("failed to parse TEFAS response: %w", err)
	}

	return response, nil
}

// latestRow picks the row with the newest timestamp.
func latestRow(rows []HistoryRow) (HistoryRow, bool) {
	var latest HistoryRow
	found := false
	for _, row := range rows {
		if !found || row.Date > latest.Date {
			latest = row
			found = true
		}
	}
	return latest, found
}

// parseEpochMillis converts the TARIH field (epoch milliseconds as a
// string) to a UTC time.
func parseEpochMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
