package costing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Line is one allocation line to be priced.
type Line struct {
	BatchID string
	Qty     float64
}

// BatchCost is the per-batch cost breakdown.
type BatchCost struct {
	BatchID   string
	Qty       float64
	UnitPrice decimal.Decimal
	Currency  string
	// Amount is Qty * UnitPrice rounded to 2 decimal places. Rounding
	// happens per batch, before summation, to match currency conventions.
	Amount decimal.Decimal
	Source Source
}

// Result is the full cost breakdown for an allocation.
type Result struct {
	TotalCost       decimal.Decimal
	RawMaterialCost decimal.Decimal
	OverheadCost    decimal.Decimal
	CostPerUnit     decimal.Decimal
	Currency        string
	PerBatch        []BatchCost
	// Sources lists the distinct resolution tiers used, in order of first use.
	Sources  []Source
	Warnings []string
}

// Options controls overhead application.
type Options struct {
	// ApplyOverhead adds a flat percentage of raw-material cost.
	ApplyOverhead bool
	// OverheadPercent is a policy value from configuration, not a constant.
	OverheadPercent decimal.Decimal
	// FinishedQty is the quantity the blend yields; drives CostPerUnit.
	FinishedQty float64
}

// Cost prices each line through the resolution chain and aggregates the
// breakdown. A missing price contributes zero and a NO_PRICE warning; the
// calculation never fails for pricing gaps.
func Cost(lines []Line, in PricingInput, opts Options) Result {
	result := Result{Currency: in.Currency}
	seen := make(map[Source]bool)

	for _, line := range lines {
		quote := ResolveUnitPrice(line.BatchID, line.Qty, in)

		if quote.Source == SourceNone {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("NO_PRICE: no price found for batch %s, cost defaults to 0", line.BatchID))
		}
		if result.Currency == "" {
			result.Currency = quote.Currency
		}

		amount := quote.UnitPrice.Mul(decimal.NewFromFloat(line.Qty)).Round(2)
		result.PerBatch = append(result.PerBatch, BatchCost{
			BatchID:   line.BatchID,
			Qty:       line.Qty,
			UnitPrice: quote.UnitPrice,
			Currency:  quote.Currency,
			Amount:    amount,
			Source:    quote.Source,
		})
		result.RawMaterialCost = result.RawMaterialCost.Add(amount)

		if !seen[quote.Source] {
			seen[quote.Source] = true
			result.Sources = append(result.Sources, quote.Source)
		}
	}

	if opts.ApplyOverhead {
		result.OverheadCost = result.RawMaterialCost.
			Mul(opts.OverheadPercent).
			Div(decimal.NewFromInt(100)).
			Round(2)
	}
	result.TotalCost = result.RawMaterialCost.Add(result.OverheadCost)

	if opts.FinishedQty > 0 {
		result.CostPerUnit = result.TotalCost.Div(decimal.NewFromFloat(opts.FinishedQty))
	}

	return result
}
