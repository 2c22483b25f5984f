package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/batchalloc/internal/config"
	"github.com/example/batchalloc/internal/core/costing"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// CostingServiceImpl implements the CostingService interface.
type CostingServiceImpl struct {
	pricingRepo secondary.PricingRepository
	cfg         *config.Config
	now         func() time.Time
}

// NewCostingService creates a new CostingService with injected dependencies.
// The config supplies the overhead percentage and fallback currency.
func NewCostingService(pricingRepo secondary.PricingRepository, cfg *config.Config) *CostingServiceImpl {
	return &CostingServiceImpl{
		pricingRepo: pricingRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// CostAllocation prices an allocation through the resolution chain.
func (s *CostingServiceImpl) CostAllocation(ctx context.Context, req primary.CostRequest) (*costing.Result, error) {
	in, err := s.fetchPricingInput(ctx, req.Allocation.ItemCode)
	if err != nil {
		return nil, err
	}

	lines := make([]costing.Line, len(req.Allocation.Lines))
	for i, l := range req.Allocation.Lines {
		lines[i] = costing.Line{BatchID: l.BatchID, Qty: l.AllocatedQty}
	}

	result := costing.Cost(lines, in, costing.Options{
		ApplyOverhead:   req.ApplyOverhead,
		OverheadPercent: decimal.NewFromFloat(s.cfg.OverheadPercent),
		FinishedQty:     req.Allocation.TotalAllocated,
	})
	return &result, nil
}

// ResolvePrice resolves one unit price for an item/batch at a quantity.
func (s *CostingServiceImpl) ResolvePrice(ctx context.Context, req primary.ResolvePriceRequest) (*costing.Quote, error) {
	in, err := s.fetchPricingInput(ctx, req.ItemCode)
	if err != nil {
		return nil, err
	}

	quote := costing.ResolveUnitPrice(req.BatchID, req.Quantity, in)
	return &quote, nil
}

// fetchPricingInput pre-fetches all pricing tiers so the core can resolve
// without I/O.
func (s *CostingServiceImpl) fetchPricingInput(ctx context.Context, itemCode string) (costing.PricingInput, error) {
	in := costing.PricingInput{
		Today:    s.now().UTC(),
		Currency: s.cfg.Currency,
	}

	batchPrices, err := s.pricingRepo.ListBatchPrices(ctx, itemCode)
	if err != nil {
		return in, fmt.Errorf("failed to list batch prices: %w", err)
	}
	in.BatchPrices = make(map[string][]costing.PriceEntry)
	for _, r := range batchPrices {
		if entry, ok := recordToPriceEntry(r); ok {
			in.BatchPrices[r.BatchID] = append(in.BatchPrices[r.BatchID], entry)
		}
	}

	listPrices, err := s.pricingRepo.ListItemPrices(ctx, itemCode)
	if err != nil {
		return in, fmt.Errorf("failed to list item prices: %w", err)
	}
	for _, r := range listPrices {
		if entry, ok := recordToPriceEntry(r); ok {
			in.ListPrices = append(in.ListPrices, entry)
		}
	}

	rates, err := s.pricingRepo.GetItemRates(ctx, itemCode)
	if err != nil {
		return in, fmt.Errorf("failed to get item rates: %w", err)
	}
	in.Rates = recordToItemRates(rates)

	return in, nil
}
