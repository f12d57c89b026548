// Package store defines the narrow tabular-store abstraction behind which
// the portfolio rows live. The aggregator only ever lists, appends and
// deletes whole rows, so any backend that can do those three things can
// serve as the portfolio store.
package store

import (
	"context"

	"fonfolio/internal/model"
)

// Store is the holding store contract. Rows are addressed by their 1-based
// position among the data rows as returned by List. Row indexes are only
// stable between a List and the next mutation; callers must not cache them.
type Store interface {
	// List returns every holding in store row order, with Row set 1..n.
	List(ctx context.Context) ([]model.Holding, error)

	// Append adds a holding as a new row at the end of the store.
	Append(ctx context.Context, h model.Holding) error

	// Delete removes the row at the given 1-based index. Returns
	// apperrors.ErrHoldingNotFound if no such row exists; the store is left
	// unchanged on any failure.
	Delete(ctx context.Context, row int) error
}
