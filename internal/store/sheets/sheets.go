// Package sheets implements the holding store on top of a Google
// Spreadsheet with the fixed header schema Code | Date | Quantity | Price.
// The spreadsheet is the sole source of truth: every List reads the full
// data range, and mutations go straight to the sheet.
package sheets

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"fonfolio/internal/apperrors"
	"fonfolio/internal/config"
	"fonfolio/internal/model"
)

// Store reads and writes holding rows on a single worksheet tab.
type Store struct {
	svc           *gsheets.Service
	spreadsheetID string
	tab           string
	sheetID       int64
}

// New connects to the Google Sheets API using the configured service-account
// credential and resolves the worksheet tab. The credential is taken from
// the inline JSON first, then from the credentials file.
//
// Returns apperrors.ErrMissingCredentials if neither source is available and
// apperrors.ErrSheetTabNotFound if the tab does not exist.
func New(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	opt, err := credentialOption(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheets.NewService(ctx, opt, option.WithScopes(gsheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	s := &Store{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		tab:           cfg.SheetTab,
	}

	if err := s.resolveSheetID(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// credentialOption picks the service-account credential source: inline JSON
// from the environment wins over the credentials file.
func credentialOption(cfg config.StoreConfig) (option.ClientOption, error) {
	if cfg.CredentialsJSON != "" {
		return option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)), nil
	}
	if cfg.CredentialsFile != "" {
		if _, err := os.Stat(cfg.CredentialsFile); err == nil {
			return option.WithCredentialsFile(cfg.CredentialsFile), nil
		}
	}
	return nil, apperrors.ErrMissingCredentials
}

// resolveSheetID looks up the numeric sheet ID of the configured tab. The
// DeleteDimension request used by Delete addresses sheets by ID, not title.
func (s *Store) resolveSheetID(ctx context.Context) error {
	meta, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to read spreadsheet metadata: %w", err)
	}

	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == s.tab {
			s.sheetID = sheet.Properties.SheetId
			return nil
		}
	}

	return fmt.Errorf("%w: %s", apperrors.ErrSheetTabNotFound, s.tab)
}

// dataRange covers every data row below the header.
func (s *Store) dataRange() string {
	return fmt.Sprintf("%s!A2:D", s.tab)
}

// List returns all holdings in sheet row order. Rows that cannot be parsed
// (blank lines, malformed numbers) are skipped, matching how a spreadsheet
// tolerates stray content; row indexes still count every physical row so
// Delete stays aligned with the sheet.
func (s *Store) List(ctx context.Context) ([]model.Holding, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataRange()).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", s.tab, err)
	}

	holdings := make([]model.Holding, 0, len(resp.Values))
	for i, cells := range resp.Values {
		h, err := holdingFromCells(cells)
		if err != nil {
			continue
		}
		h.Row = i + 1
		holdings = append(holdings, h)
	}

	return holdings, nil
}

// Append adds the holding as a new row at the bottom of the tab. Quantity
// and price are written as plain strings so the decimal values survive the
// round-trip exactly.
func (s *Store) Append(ctx context.Context, h model.Holding) error {
	vr := &gsheets.ValueRange{
		Values: [][]interface{}{cellsFromHolding(h)},
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, s.dataRange(), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to sheet %q: %w", s.tab, err)
	}

	return nil
}

// Delete removes the physical sheet row at the given 1-based data-row index.
// The index is validated against the current data range first so a stale
// index past the end reports not-found instead of silently truncating the
// sheet.
func (s *Store) Delete(ctx context.Context, row int) error {
	if row < 1 {
		return apperrors.ErrHoldingNotFound
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.dataRange()).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", s.tab, err)
	}
	if row > len(resp.Values) {
		return apperrors.ErrHoldingNotFound
	}

	// Data row n is physical row n+1 (0-based: header is index 0).
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			DeleteDimension: &gsheets.DeleteDimensionRequest{
				Range: &gsheets.DimensionRange{
					SheetId:    s.sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(row),
					EndIndex:   int64(row + 1),
				},
			},
		}},
	}

	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete row %d from sheet %q: %w", row, s.tab, err)
	}

	return nil
}
