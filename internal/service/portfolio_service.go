package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"fonfolio/internal/api/request"
	"fonfolio/internal/model"
	"fonfolio/internal/store"
	"fonfolio/internal/tefas"
	"fonfolio/internal/validation"
)

// priceFetchConcurrency bounds the number of in-flight TEFAS requests per
// listing call.
const priceFetchConcurrency = 4

// PortfolioService joins stored holdings with live fund prices and computes
// per-holding and aggregate valuation. It is stateless: every listing reads
// the full store and fetches prices fresh.
type PortfolioService struct {
	store store.Store
	feed  tefas.Client
}

// NewPortfolioService creates a new PortfolioService with the provided
// store and price feed dependencies.
func NewPortfolioService(st store.Store, feed tefas.Client) *PortfolioService {
	return &PortfolioService{
		store: st,
		feed:  feed,
	}
}

// ListValuedHoldings returns every holding in store row order, enriched
// with live prices, plus the aggregate totals.
//
// The price feed is consulted exactly once per distinct fund code, with
// bounded concurrency. A failed lookup degrades only the holdings of that
// code: they keep their cost basis, their market value and gain are nil, and
// the fund name falls back to the code. Only a store read failure fails the
// whole call.
func (s *PortfolioService) ListValuedHoldings(ctx context.Context) ([]model.ValuedHolding, model.PortfolioSummary, error) {
	holdings, err := s.store.List(ctx)
	if err != nil {
		return nil, model.PortfolioSummary{}, fmt.Errorf("failed to read holdings: %w", err)
	}

	prices := s.fetchPrices(ctx, distinctCodes(holdings))

	valued := make([]model.ValuedHolding, len(holdings))
	for i, h := range holdings {
		valued[i] = valueHolding(h, prices)
	}

	return valued, summarize(valued), nil
}

// GetPortfolioView assembles the complete dashboard view: valued holdings,
// per-fund positions and totals.
func (s *PortfolioService) GetPortfolioView(ctx context.Context) (model.PortfolioView, error) {
	holdings, summary, err := s.ListValuedHoldings(ctx)
	if err != nil {
		return model.PortfolioView{}, err
	}

	return model.PortfolioView{
		Holdings:  holdings,
		Positions: PositionsFromHoldings(holdings),
		Summary:   summary,
	}, nil
}

// AddHolding validates the request and appends a new holding row to the
// store. Invalid input returns a *validation.Error.
func (s *PortfolioService) AddHolding(ctx context.Context, req request.AddHoldingRequest) (model.Holding, error) {
	h, err := validation.ParseAddHolding(req)
	if err != nil {
		return model.Holding{}, err
	}

	if err := s.store.Append(ctx, h); err != nil {
		return model.Holding{}, fmt.Errorf("failed to append holding: %w", err)
	}

	return h, nil
}

// DeleteHolding removes the holding at the given 1-based row index. Returns
// apperrors.ErrHoldingNotFound if the row does not exist; the store is
// unchanged in that case.
func (s *PortfolioService) DeleteHolding(ctx context.Context, row int) error {
	return s.store.Delete(ctx, row)
}

// fetchPrices looks up the live price of each distinct code once. Feed
// failures are logged and the code is simply absent from the result map.
func (s *PortfolioService) fetchPrices(ctx context.Context, codes []string) map[string]model.LivePrice {
	prices := make(map[string]model.LivePrice, len(codes))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(priceFetchConcurrency)

	for _, code := range codes {
		code := code
		g.Go(func() error {
			price, err := s.feed.GetLatestPrice(ctx, code)
			if err != nil {
				log.Printf("price lookup failed for %s: %v", code, err)
				return nil
			}

			mu.Lock()
			prices[code] = price
			mu.Unlock()
			return nil
		})
	}

	//nolint:errcheck // goroutines always return nil; feed errors degrade rows
	g.Wait()

	return prices
}

// distinctCodes returns the fund codes in first-seen order, deduplicated.
func distinctCodes(holdings []model.Holding) []string {
	seen := make(map[string]bool, len(holdings))
	codes := make([]string, 0, len(holdings))
	for _, h := range holdings {
		if !seen[h.Code] {
			seen[h.Code] = true
			codes = append(codes, h.Code)
		}
	}
	return codes
}

// valueHolding joins one holding with its live price and computes the
// derived fields.
func valueHolding(h model.Holding, prices map[string]model.LivePrice) model.ValuedHolding {
	v := model.ValuedHolding{
		Holding:   h,
		FundName:  h.Code,
		CostBasis: h.CostBasis(),
	}

	price, ok := prices[h.Code]
	if !ok {
		return v
	}

	current := price.Price
	marketValue := h.Quantity.Mul(current)
	gain := marketValue.Sub(v.CostBasis)

	v.FundName = price.Name
	v.CurrentPrice = &current
	v.MarketValue = &marketValue
	v.Gain = &gain
	return v
}

// summarize computes the aggregate totals. Degraded rows contribute cost
// basis only; the gain percentage is taken over the cost of priced rows.
func summarize(holdings []model.ValuedHolding) model.PortfolioSummary {
	var summary model.PortfolioSummary
	var pricedCost decimal.Decimal

	for _, v := range holdings {
		summary.TotalCost = summary.TotalCost.Add(v.CostBasis)
		if !v.Priced() {
			continue
		}
		pricedCost = pricedCost.Add(v.CostBasis)
		summary.TotalValue = summary.TotalValue.Add(*v.MarketValue)
		summary.TotalGain = summary.TotalGain.Add(*v.Gain)
	}

	if pricedCost.Sign() > 0 {
		summary.TotalGainPct = summary.TotalGain.Div(pricedCost).Mul(decimal.NewFromInt(100))
	}

	return summary
}

// PositionsFromHoldings groups valued holdings by fund code, in first-seen
// order, into per-fund positions with total quantity, weighted-average cost
// and current valuation. Codes whose quantities sum to zero are skipped.
func PositionsFromHoldings(holdings []model.ValuedHolding) []model.Position {
	type group struct {
		position model.Position
		priced   bool
		price    decimal.Decimal
	}

	var order []string
	groups := make(map[string]*group)

	for _, v := range holdings {
		g, ok := groups[v.Code]
		if !ok {
			g = &group{
				position: model.Position{
					Code:     v.Code,
					FundName: v.FundName,
				},
			}
			if v.Priced() {
				g.priced = true
				g.price = *v.CurrentPrice
			}
			groups[v.Code] = g
			order = append(order, v.Code)
		}

		g.position.Quantity = g.position.Quantity.Add(v.Quantity)
		g.position.TotalCost = g.position.TotalCost.Add(v.CostBasis)
	}

	positions := make([]model.Position, 0, len(order))
	for _, code := range order {
		g := groups[code]
		p := g.position

		if p.Quantity.Sign() == 0 {
			continue
		}
		p.AverageCost = p.TotalCost.DivRound(p.Quantity, 6)

		if g.priced {
			price := g.price
			value := p.Quantity.Mul(price)
			pl := value.Sub(p.TotalCost)

			p.CurrentPrice = &price
			p.CurrentValue = &value
			p.ProfitLoss = &pl
			if p.TotalCost.Sign() > 0 {
				pct := pl.Div(p.TotalCost).Mul(decimal.NewFromInt(100))
				p.ProfitLossPct = &pct
			}
		}

		positions = append(positions, p)
	}

	return positions
}
