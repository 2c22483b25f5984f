package secondary

import "context"

// PriceRecord is one price-list or batch-specific price entry as stored by
// the pricing collaborator.
type PriceRecord struct {
	ID        string
	ItemCode  string
	BatchID   string // empty for item-level entries
	Price     string // decimal string
	Currency  string
	MinQty    float64
	ValidFrom string // ISO date, empty = open
	ValidUpto string // ISO date, empty = open
}

// ItemRateRecord carries the item master's fallback rates.
type ItemRateRecord struct {
	ItemCode         string
	ItemName         string
	StandardRate     string // decimal string, empty/zero = unset
	LastPurchaseRate string
	ValuationRate    string
	Currency         string
}

// PricingRepository defines the secondary port for price reads. The engine
// orders the six-tier fallback itself; the repository only exposes the raw
// tiers.
type PricingRepository interface {
	// ListBatchPrices returns batch-specific price entries for the item's
	// allocated lots.
	ListBatchPrices(ctx context.Context, itemCode string) ([]*PriceRecord, error)

	// ListItemPrices returns the item-level price-list entries.
	ListItemPrices(ctx context.Context, itemCode string) ([]*PriceRecord, error)

	// GetItemRates returns the item master rates, or nil when the item is
	// unknown to the pricing collaborator.
	GetItemRates(ctx context.Context, itemCode string) (*ItemRateRecord, error)
}
