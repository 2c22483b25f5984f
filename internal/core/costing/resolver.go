// Package costing contains the pure business logic for pricing an
// allocation. This is part of the Functional Core - no I/O; all pricing data
// is pre-fetched by the caller.
package costing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies which tier of the price-resolution chain produced a
// unit price.
type Source string

const (
	SourceBatchPrice       Source = "BATCH_PRICE"
	SourcePriceList        Source = "PRICE_LIST"
	SourcePriceListAnyDate Source = "PRICE_LIST_ANY_DATE"
	SourceStandardRate     Source = "STANDARD_RATE"
	SourceLastPurchaseRate Source = "LAST_PURCHASE_RATE"
	SourceValuationRate    Source = "VALUATION_RATE"
	// SourceNone means all six tiers failed; the price defaults to zero.
	SourceNone Source = "NONE"
)

// PriceEntry is one batch-specific or item-level price record.
type PriceEntry struct {
	ItemCode  string
	BatchID   string // empty for item-level price-list entries
	Price     decimal.Decimal
	Currency  string
	MinQty    float64
	ValidFrom *time.Time
	ValidUpto *time.Time
}

// ItemRates carries the item master's fallback rates. A zero rate counts as
// unset - ERP item masters default unset rates to zero.
type ItemRates struct {
	StandardRate     decimal.Decimal
	LastPurchaseRate decimal.Decimal
	ValuationRate    decimal.Decimal
	Currency         string
}

// PricingInput contains everything the resolver needs, pre-fetched by the
// caller.
type PricingInput struct {
	Today time.Time
	// BatchPrices maps batch ID to its batch-specific price entries.
	BatchPrices map[string][]PriceEntry
	// ListPrices holds the item-level price-list entries.
	ListPrices []PriceEntry
	Rates      *ItemRates
	// Currency is the fallback currency when no price record names one.
	Currency string
}

// Quote is a resolved unit price with its provenance.
type Quote struct {
	UnitPrice decimal.Decimal
	Currency  string
	Source    Source
}

// ResolveUnitPrice walks the six-tier fallback chain for one batch, first
// hit wins:
//
//  1. batch-specific price valid today
//  2. price-list entry valid today with quantity >= MinQty
//  3. any price-list entry, ignoring validity dates
//  4. standard rate
//  5. last purchase rate
//  6. valuation rate
//
// A missing price is never an error: the chain bottoms out at a zero price
// with Source NONE and the caller warns.
func ResolveUnitPrice(batchID string, qty float64, in PricingInput) Quote {
	if entry := latestValid(in.BatchPrices[batchID], in.Today, -1); entry != nil {
		return quoteFrom(entry, SourceBatchPrice, in.Currency)
	}

	if entry := latestValid(in.ListPrices, in.Today, qty); entry != nil {
		return quoteFrom(entry, SourcePriceList, in.Currency)
	}

	if entry := latestAny(in.ListPrices); entry != nil {
		return quoteFrom(entry, SourcePriceListAnyDate, in.Currency)
	}

	if in.Rates != nil {
		currency := in.Rates.Currency
		if currency == "" {
			currency = in.Currency
		}
		for _, rate := range []struct {
			value  decimal.Decimal
			source Source
		}{
			{in.Rates.StandardRate, SourceStandardRate},
			{in.Rates.LastPurchaseRate, SourceLastPurchaseRate},
			{in.Rates.ValuationRate, SourceValuationRate},
		} {
			if rate.value.IsPositive() {
				return Quote{UnitPrice: rate.value, Currency: currency, Source: rate.source}
			}
		}
	}

	return Quote{UnitPrice: decimal.Zero, Currency: in.Currency, Source: SourceNone}
}

func quoteFrom(entry *PriceEntry, source Source, fallbackCurrency string) Quote {
	currency := entry.Currency
	if currency == "" {
		currency = fallbackCurrency
	}
	return Quote{UnitPrice: entry.Price, Currency: currency, Source: source}
}

// latestValid picks the entry with the most recent ValidFrom among entries
// valid on the given day. qty < 0 skips the MinQty check (batch prices have
// no quantity break).
func latestValid(entries []PriceEntry, today time.Time, qty float64) *PriceEntry {
	var best *PriceEntry
	for i := range entries {
		e := &entries[i]
		if !validOn(e, today) {
			continue
		}
		if qty >= 0 && qty < e.MinQty {
			continue
		}
		if best == nil || after(e.ValidFrom, best.ValidFrom) {
			best = e
		}
	}
	return best
}

// latestAny picks the entry with the most recent ValidFrom, ignoring
// validity windows and quantity breaks. Entries without ValidFrom lose to
// dated ones.
func latestAny(entries []PriceEntry) *PriceEntry {
	var best *PriceEntry
	for i := range entries {
		e := &entries[i]
		if best == nil || after(e.ValidFrom, best.ValidFrom) {
			best = e
		}
	}
	return best
}

func validOn(e *PriceEntry, day time.Time) bool {
	if e.ValidFrom != nil && day.Before(*e.ValidFrom) {
		return false
	}
	if e.ValidUpto != nil && day.After(*e.ValidUpto) {
		return false
	}
	return true
}

func after(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.After(*b)
}
