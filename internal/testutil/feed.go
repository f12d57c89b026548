package testutil

import (
	"context"
	"fmt"
	"sync"

	"fonfolio/internal/apperrors"
	"fonfolio/internal/model"
)

// ScriptedFeed is a price feed test double. It serves prices from a fixed
// map, fails lookups listed in Errs, and counts calls per fund code so
// tests can assert the feed is consulted once per distinct code.
type ScriptedFeed struct {
	mu     sync.Mutex
	Prices map[string]model.LivePrice
	Errs   map[string]error
	calls  map[string]int
}

// NewScriptedFeed creates a feed serving the given prices.
func NewScriptedFeed(prices ...model.LivePrice) *ScriptedFeed {
	f := &ScriptedFeed{
		Prices: make(map[string]model.LivePrice),
		Errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
	for _, p := range prices {
		f.Prices[p.Code] = p
	}
	return f
}

// GetLatestPrice implements tefas.Client.
func (f *ScriptedFeed) GetLatestPrice(_ context.Context, code string) (model.LivePrice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[code]++

	if err, ok := f.Errs[code]; ok {
		return model.LivePrice{}, err
	}
	if price, ok := f.Prices[code]; ok {
		return price, nil
	}
	return model.LivePrice{}, fmt.Errorf("%w: %s", apperrors.ErrPriceNotFound, code)
}

// Calls returns how many times the given code was looked up.
func (f *ScriptedFeed) Calls(code string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[code]
}

// TotalCalls returns the total number of lookups across all codes.
func (f *ScriptedFeed) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}
