package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/batchalloc/internal/config"
	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/costing"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/ports/secondary"
)

func demoPricing() *mockPricingRepo {
	return &mockPricingRepo{
		batchPrices: []*secondary.PriceRecord{
			{ID: "BP-001", ItemCode: "GLY-REF-80", BatchID: "GLY-243112", Price: "12.75", Currency: "MXN", ValidFrom: "2025-01-01", ValidUpto: "2025-12-31"},
		},
		itemPrices: []*secondary.PriceRecord{
			{ID: "IP-001", ItemCode: "GLY-REF-80", Price: "12.00", Currency: "MXN", ValidFrom: "2025-01-01", ValidUpto: "2025-12-31"},
		},
		rates: &secondary.ItemRateRecord{
			ItemCode:     "GLY-REF-80",
			StandardRate: "11.50",
			Currency:     "MXN",
		},
	}
}

func newTestCostingService(repo *mockPricingRepo) *CostingServiceImpl {
	svc := NewCostingService(repo, config.Default())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCostAllocationPrefersBatchPrice(t *testing.T) {
	svc := newTestCostingService(demoPricing())

	alloc := allocation.Result{
		ItemCode:       "GLY-REF-80",
		RequiredQty:    700,
		TotalAllocated: 700,
		Lines: []allocation.Line{
			{BatchID: "GLY-243112", AllocatedQty: 500, FEFORank: 1},
			{BatchID: "GLY-251012", AllocatedQty: 200, FEFORank: 2},
		},
	}

	result, err := svc.CostAllocation(context.Background(), primary.CostRequest{Allocation: alloc})
	if err != nil {
		t.Fatalf("CostAllocation() error = %v", err)
	}

	// 500 * 12.75 = 6375.00 (batch price) + 200 * 12.00 = 2400.00 (price list)
	if got := result.TotalCost.StringFixed(2); got != "8775.00" {
		t.Errorf("TotalCost = %s, want 8775.00", got)
	}
	if result.PerBatch[0].Source != costing.SourceBatchPrice {
		t.Errorf("first line source = %s, want %s", result.PerBatch[0].Source, costing.SourceBatchPrice)
	}
	if result.PerBatch[1].Source != costing.SourcePriceList {
		t.Errorf("second line source = %s, want %s", result.PerBatch[1].Source, costing.SourcePriceList)
	}
	if result.Currency != "MXN" {
		t.Errorf("Currency = %s, want MXN", result.Currency)
	}
}

func TestCostAllocationOverheadFromConfig(t *testing.T) {
	svc := newTestCostingService(demoPricing())

	alloc := allocation.Result{
		ItemCode:       "GLY-REF-80",
		RequiredQty:    100,
		TotalAllocated: 100,
		Lines:          []allocation.Line{{BatchID: "GLY-251012", AllocatedQty: 100, FEFORank: 1}},
	}

	result, err := svc.CostAllocation(context.Background(), primary.CostRequest{
		Allocation:    alloc,
		ApplyOverhead: true,
	})
	if err != nil {
		t.Fatalf("CostAllocation() error = %v", err)
	}

	// 100 * 12.00 = 1200.00 raw, +15% overhead = 1380.00
	if got := result.RawMaterialCost.StringFixed(2); got != "1200.00" {
		t.Errorf("RawMaterialCost = %s, want 1200.00", got)
	}
	if got := result.TotalCost.StringFixed(2); got != "1380.00" {
		t.Errorf("TotalCost = %s, want 1380.00", got)
	}
	if got := result.CostPerUnit.StringFixed(2); got != "13.80" {
		t.Errorf("CostPerUnit = %s, want 13.80", got)
	}
}

func TestCostAllocationRepoError(t *testing.T) {
	svc := newTestCostingService(&mockPricingRepo{err: errors.New("pricing db down")})

	_, err := svc.CostAllocation(context.Background(), primary.CostRequest{
		Allocation: allocation.Result{ItemCode: "GLY-REF-80"},
	})
	if err == nil {
		t.Fatal("CostAllocation() should surface repository errors")
	}
}

func TestResolvePriceFallsBackToStandardRate(t *testing.T) {
	repo := demoPricing()
	repo.batchPrices = nil
	repo.itemPrices = nil
	svc := newTestCostingService(repo)

	quote, err := svc.ResolvePrice(context.Background(), primary.ResolvePriceRequest{
		ItemCode: "GLY-REF-80",
		Quantity: 100,
	})
	if err != nil {
		t.Fatalf("ResolvePrice() error = %v", err)
	}
	if quote.Source != costing.SourceStandardRate {
		t.Errorf("Source = %s, want %s", quote.Source, costing.SourceStandardRate)
	}
	if got := quote.UnitPrice.StringFixed(2); got != "11.50" {
		t.Errorf("UnitPrice = %s, want 11.50", got)
	}
}

func TestResolvePriceNoTierAnswers(t *testing.T) {
	svc := newTestCostingService(&mockPricingRepo{})

	quote, err := svc.ResolvePrice(context.Background(), primary.ResolvePriceRequest{
		ItemCode: "UNKNOWN-ITEM",
		Quantity: 10,
	})
	if err != nil {
		t.Fatalf("ResolvePrice() error = %v", err)
	}
	if quote.Source != costing.SourceNone {
		t.Errorf("Source = %s, want %s", quote.Source, costing.SourceNone)
	}
}
