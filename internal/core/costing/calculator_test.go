package costing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var today = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datePtr(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveUnitPriceTierOrder(t *testing.T) {
	// Fully populated input: every tier could answer, lower tiers must win
	// as they are removed one by one.
	full := func() PricingInput {
		return PricingInput{
			Today:    today,
			Currency: "MXN",
			BatchPrices: map[string][]PriceEntry{
				"B1": {{BatchID: "B1", Price: dec("10.00"), ValidFrom: datePtr(2025, 1, 1), ValidUpto: datePtr(2025, 12, 31)}},
			},
			ListPrices: []PriceEntry{
				{Price: dec("11.00"), MinQty: 50, ValidFrom: datePtr(2025, 1, 1), ValidUpto: datePtr(2025, 12, 31)},
				{Price: dec("12.00"), ValidFrom: datePtr(2020, 1, 1), ValidUpto: datePtr(2020, 12, 31)}, // stale
			},
			Rates: &ItemRates{
				StandardRate:     dec("13.00"),
				LastPurchaseRate: dec("14.00"),
				ValuationRate:    dec("15.00"),
			},
		}
	}

	tests := []struct {
		name       string
		mutate     func(*PricingInput)
		wantPrice  string
		wantSource Source
	}{
		{"batch price wins", func(in *PricingInput) {}, "10.00", SourceBatchPrice},
		{"valid list price", func(in *PricingInput) { in.BatchPrices = nil }, "11.00", SourcePriceList},
		{"any list price ignoring dates", func(in *PricingInput) {
			in.BatchPrices = nil
			in.ListPrices = in.ListPrices[1:]
		}, "12.00", SourcePriceListAnyDate},
		{"standard rate", func(in *PricingInput) {
			in.BatchPrices = nil
			in.ListPrices = nil
		}, "13.00", SourceStandardRate},
		{"last purchase rate", func(in *PricingInput) {
			in.BatchPrices = nil
			in.ListPrices = nil
			in.Rates.StandardRate = decimal.Zero
		}, "14.00", SourceLastPurchaseRate},
		{"valuation rate", func(in *PricingInput) {
			in.BatchPrices = nil
			in.ListPrices = nil
			in.Rates.StandardRate = decimal.Zero
			in.Rates.LastPurchaseRate = decimal.Zero
		}, "15.00", SourceValuationRate},
		{"all tiers exhausted", func(in *PricingInput) {
			in.BatchPrices = nil
			in.ListPrices = nil
			in.Rates = nil
		}, "0", SourceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := full()
			tt.mutate(&in)
			quote := ResolveUnitPrice("B1", 100, in)
			if !quote.UnitPrice.Equal(dec(tt.wantPrice)) {
				t.Errorf("price = %s, want %s", quote.UnitPrice, tt.wantPrice)
			}
			if quote.Source != tt.wantSource {
				t.Errorf("source = %s, want %s", quote.Source, tt.wantSource)
			}
		})
	}
}

func TestResolveUnitPriceMinQty(t *testing.T) {
	in := PricingInput{
		Today:    today,
		Currency: "MXN",
		ListPrices: []PriceEntry{
			{Price: dec("9.00"), MinQty: 500, ValidFrom: datePtr(2025, 1, 1)},
			{Price: dec("11.00"), MinQty: 0, ValidFrom: datePtr(2024, 1, 1)},
		},
	}

	// Large order qualifies for the quantity break (and its entry is newer).
	if q := ResolveUnitPrice("B1", 600, in); !q.UnitPrice.Equal(dec("9.00")) {
		t.Errorf("qty 600 price = %s, want 9.00", q.UnitPrice)
	}
	// Small order falls back to the break-free entry.
	if q := ResolveUnitPrice("B1", 10, in); !q.UnitPrice.Equal(dec("11.00")) {
		t.Errorf("qty 10 price = %s, want 11.00", q.UnitPrice)
	}
}

func TestResolveUnitPriceExpiredBatchPriceSkipped(t *testing.T) {
	in := PricingInput{
		Today:    today,
		Currency: "MXN",
		BatchPrices: map[string][]PriceEntry{
			"B1": {{BatchID: "B1", Price: dec("5.00"), ValidFrom: datePtr(2024, 1, 1), ValidUpto: datePtr(2024, 12, 31)}},
		},
		Rates: &ItemRates{StandardRate: dec("13.00")},
	}

	quote := ResolveUnitPrice("B1", 100, in)
	if quote.Source != SourceStandardRate {
		t.Errorf("source = %s, want %s", quote.Source, SourceStandardRate)
	}
}

func TestCostRoundingStability(t *testing.T) {
	// Per-batch costs are rounded before summation; the total is exactly
	// the sum of the rounded amounts, with no re-rounding drift.
	in := PricingInput{
		Today:    today,
		Currency: "MXN",
		BatchPrices: map[string][]PriceEntry{
			"B1": {{BatchID: "B1", Price: dec("3.333")}},
			"B2": {{BatchID: "B2", Price: dec("3.333")}},
			"B3": {{BatchID: "B3", Price: dec("3.333")}},
		},
	}
	lines := []Line{
		{BatchID: "B1", Qty: 1},
		{BatchID: "B2", Qty: 1},
		{BatchID: "B3", Qty: 1},
	}

	result := Cost(lines, in, Options{FinishedQty: 3})

	var sum decimal.Decimal
	for _, bc := range result.PerBatch {
		if !bc.Amount.Equal(dec("3.33")) {
			t.Errorf("batch %s amount = %s, want 3.33", bc.BatchID, bc.Amount)
		}
		sum = sum.Add(bc.Amount)
	}
	if !result.RawMaterialCost.Equal(sum) {
		t.Errorf("RawMaterialCost = %s, want %s", result.RawMaterialCost, sum)
	}
	if !result.TotalCost.Equal(dec("9.99")) {
		t.Errorf("TotalCost = %s, want 9.99", result.TotalCost)
	}
	if !result.CostPerUnit.Equal(dec("9.99").Div(dec("3"))) {
		t.Errorf("CostPerUnit = %s, want TotalCost/FinishedQty", result.CostPerUnit)
	}
}

func TestCostMissingPriceWarnsAndContinues(t *testing.T) {
	in := PricingInput{
		Today:    today,
		Currency: "MXN",
		BatchPrices: map[string][]PriceEntry{
			"PRICED": {{BatchID: "PRICED", Price: dec("10.00")}},
		},
	}
	lines := []Line{
		{BatchID: "PRICED", Qty: 10},
		{BatchID: "UNPRICED", Qty: 5},
	}

	result := Cost(lines, in, Options{FinishedQty: 15})

	if !result.TotalCost.Equal(dec("100.00")) {
		t.Errorf("TotalCost = %s, want 100.00", result.TotalCost)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want one NO_PRICE warning", result.Warnings)
	}
	if result.PerBatch[1].Source != SourceNone {
		t.Errorf("unpriced source = %s, want NONE", result.PerBatch[1].Source)
	}
	if !result.PerBatch[1].Amount.IsZero() {
		t.Errorf("unpriced amount = %s, want 0", result.PerBatch[1].Amount)
	}
}

func TestCostOverhead(t *testing.T) {
	in := PricingInput{
		Today:    today,
		Currency: "MXN",
		BatchPrices: map[string][]PriceEntry{
			"B1": {{BatchID: "B1", Price: dec("10.00")}},
		},
	}
	lines := []Line{{BatchID: "B1", Qty: 100}}

	result := Cost(lines, in, Options{
		ApplyOverhead:   true,
		OverheadPercent: dec("15"),
		FinishedQty:     100,
	})

	if !result.RawMaterialCost.Equal(dec("1000.00")) {
		t.Errorf("RawMaterialCost = %s, want 1000.00", result.RawMaterialCost)
	}
	if !result.OverheadCost.Equal(dec("150.00")) {
		t.Errorf("OverheadCost = %s, want 150.00", result.OverheadCost)
	}
	if !result.TotalCost.Equal(dec("1150.00")) {
		t.Errorf("TotalCost = %s, want 1150.00", result.TotalCost)
	}
	if !result.CostPerUnit.Equal(dec("11.50")) {
		t.Errorf("CostPerUnit = %s, want 11.50", result.CostPerUnit)
	}
}

func TestCostZeroFinishedQty(t *testing.T) {
	result := Cost(nil, PricingInput{Today: today, Currency: "MXN"}, Options{})
	if !result.CostPerUnit.IsZero() {
		t.Errorf("CostPerUnit = %s, want 0", result.CostPerUnit)
	}
	if !result.TotalCost.IsZero() {
		t.Errorf("TotalCost = %s, want 0", result.TotalCost)
	}
}

func TestCostSourcesDistinctInOrder(t *testing.T) {
	in := PricingInput{
		Today:    today,
		Currency: "MXN",
		BatchPrices: map[string][]PriceEntry{
			"B1": {{BatchID: "B1", Price: dec("10.00")}},
			"B2": {{BatchID: "B2", Price: dec("12.00")}},
		},
		Rates: &ItemRates{StandardRate: dec("9.00")},
	}
	lines := []Line{
		{BatchID: "B1", Qty: 1},
		{BatchID: "B2", Qty: 1},
		{BatchID: "B3", Qty: 1},
	}

	result := Cost(lines, in, Options{FinishedQty: 3})

	want := []Source{SourceBatchPrice, SourceStandardRate}
	if len(result.Sources) != len(want) {
		t.Fatalf("sources = %v, want %v", result.Sources, want)
	}
	for i := range want {
		if result.Sources[i] != want[i] {
			t.Errorf("sources = %v, want %v", result.Sources, want)
		}
	}
}
