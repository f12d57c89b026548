package testutil

import (
	"context"
	"sync"

	"fonfolio/internal/apperrors"
	"fonfolio/internal/model"
)

// MemStore is an in-memory holding store with the same row-index semantics
// as the real backends. Safe for concurrent use.
type MemStore struct {
	mu       sync.Mutex
	holdings []model.Holding

	// ListErr, AppendErr and DeleteErr, when set, are returned by the
	// corresponding operation to simulate store failures.
	ListErr   error
	AppendErr error
	DeleteErr error
}

// NewMemStore creates a MemStore seeded with the given holdings.
func NewMemStore(holdings ...model.Holding) *MemStore {
	s := &MemStore{}
	s.holdings = append(s.holdings, holdings...)
	return s
}

// List returns the holdings in insertion order with Row set 1..n.
func (s *MemStore) List(_ context.Context) ([]model.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ListErr != nil {
		return nil, s.ListErr
	}

	out := make([]model.Holding, len(s.holdings))
	for i, h := range s.holdings {
		h.Row = i + 1
		out[i] = h
	}
	return out, nil
}

// Append adds a holding at the end.
func (s *MemStore) Append(_ context.Context, h model.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.AppendErr != nil {
		return s.AppendErr
	}

	s.holdings = append(s.holdings, h)
	return nil
}

// Delete removes the row at the 1-based index.
func (s *MemStore) Delete(_ context.Context, row int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	if row < 1 || row > len(s.holdings) {
		return apperrors.ErrHoldingNotFound
	}

	s.holdings = append(s.holdings[:row-1], s.holdings[row:]...)
	return nil
}

// Len returns the current number of rows.
func (s *MemStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.holdings)
}
