// Package app contains the application services that orchestrate the
// engine's business logic. Services fetch collaborator data, hand it to the
// pure core, and translate between persistence records and core types.
package app

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/batchalloc/internal/core/blend"
	"github.com/example/batchalloc/internal/core/costing"
	"github.com/example/batchalloc/internal/core/fefo"
	"github.com/example/batchalloc/internal/ports/secondary"
)

const isoDate = "2006-01-02"

// recordToBatch converts an inventory record into the optimizer's batch
// view. Unparseable dates are treated as absent; an unparseable cost marks
// the batch cost-unknown.
func recordToBatch(r *secondary.BatchRecord) fefo.Batch {
	b := fefo.Batch{
		BatchID:           r.BatchID,
		ItemCode:          r.ItemCode,
		Warehouse:         r.Warehouse,
		AvailableQty:      r.AvailableQty,
		CostUnknown:       r.CostUnknown,
		QualityParameters: r.QualityParameters,
	}

	b.ManufacturingDate = parseDate(r.ManufacturingDate)
	b.ExpiryDate = parseDate(r.ExpiryDate)

	if !r.CostUnknown && r.UnitCost != "" {
		if cost, err := decimal.NewFromString(r.UnitCost); err == nil {
			b.UnitCost = cost
		} else {
			b.CostUnknown = true
		}
	} else if r.UnitCost == "" {
		b.CostUnknown = true
	}

	return b
}

func recordToPriceEntry(r *secondary.PriceRecord) (costing.PriceEntry, bool) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return costing.PriceEntry{}, false
	}
	return costing.PriceEntry{
		ItemCode:  r.ItemCode,
		BatchID:   r.BatchID,
		Price:     price,
		Currency:  r.Currency,
		MinQty:    r.MinQty,
		ValidFrom: parseDate(r.ValidFrom),
		ValidUpto: parseDate(r.ValidUpto),
	}, true
}

func recordToItemRates(r *secondary.ItemRateRecord) *costing.ItemRates {
	if r == nil {
		return nil
	}
	return &costing.ItemRates{
		StandardRate:     parseDecimal(r.StandardRate),
		LastPurchaseRate: parseDecimal(r.LastPurchaseRate),
		ValuationRate:    parseDecimal(r.ValuationRate),
		Currency:         r.Currency,
	}
}

func recordToTargetSpec(r *secondary.SpecRecord) blend.TargetSpec {
	if r == nil {
		return blend.TargetSpec{}
	}
	spec := make(blend.TargetSpec, len(r.Parameters))
	for _, p := range r.Parameters {
		spec[p.Param] = blend.Bounds{Min: p.Min, Max: p.Max}
	}
	return spec
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return nil
	}
	return &t
}

func parseDecimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
