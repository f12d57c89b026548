// Package sqlite implements the holding store on a local SQLite database.
// It mirrors the spreadsheet semantics: rows are addressed by their ordinal
// position in insertion order, and quantity and price are stored as decimal
// text so values survive round-trips exactly.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/shopspring/decimal"

	"fonfolio/internal/apperrors"
	"fonfolio/internal/model"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store persists holdings in a single SQLite table.
type Store struct {
	db *sql.DB
}

// New wraps the database connection and brings the schema up to date with
// the embedded goose migrations.
func New(db *sql.DB) (*Store, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// List returns all holdings in insertion order with Row set 1..n.
func (s *Store) List(ctx context.Context) ([]model.Holding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, date, quantity, price
		FROM holding
		ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	var holdings []model.Holding
	for rows.Next() {
		var dateStr, quantityStr, priceStr string
		var h model.Holding

		if err := rows.Scan(&h.Code, &dateStr, &quantityStr, &priceStr); err != nil {
			return nil, fmt.Errorf("failed to scan holding row: %w", err)
		}

		h.Date, err = parseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		h.Quantity, err = decimal.NewFromString(quantityStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse quantity: %w", err)
		}
		h.Price, err = decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse price: %w", err)
		}

		h.Row = len(holdings) + 1
		holdings = append(holdings, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// Append inserts the holding as the last row.
func (s *Store) Append(ctx context.Context, h model.Holding) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO holding (id, code, date, quantity, price)
		VALUES (?, ?, ?, ?, ?)
	`,
		uuid.New().String(),
		h.Code,
		h.Date.Format(model.DateFormat),
		h.Quantity.String(),
		h.Price.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert holding: %w", err)
	}

	return nil
}

// Delete removes the holding at the given 1-based ordinal position. The
// lookup and delete run in one transaction so the position cannot shift
// between them.
func (s *Store) Delete(ctx context.Context, row int) error {
	if row < 1 {
		return apperrors.ErrHoldingNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	var id string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM holding
		ORDER BY rowid ASC
		LIMIT 1 OFFSET ?
	`, row-1).Scan(&id)
	if err == sql.ErrNoRows {
		return apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to locate holding row %d: %w", row, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM holding WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}

	return nil
}

// parseDate accepts both the bare date format written by Append and the
// datetime form SQLite may hand back for DATE columns.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(model.DateFormat, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", s)
}
