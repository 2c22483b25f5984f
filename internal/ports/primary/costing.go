package primary

import (
	"context"

	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/costing"
)

// CostingService defines the primary port for pricing allocations.
type CostingService interface {
	// CostAllocation prices each allocation line through the six-tier
	// resolution chain and returns the aggregated breakdown.
	CostAllocation(ctx context.Context, req CostRequest) (*costing.Result, error)

	// ResolvePrice resolves a single unit price for an item (optionally a
	// specific batch) at a quantity.
	ResolvePrice(ctx context.Context, req ResolvePriceRequest) (*costing.Quote, error)
}

// CostRequest contains parameters for pricing an allocation.
type CostRequest struct {
	Allocation allocation.Result
	// ApplyOverhead adds the configured overhead percentage on top of the
	// raw-material cost.
	ApplyOverhead bool
}

// ResolvePriceRequest contains parameters for a single price resolution.
type ResolvePriceRequest struct {
	ItemCode string
	BatchID  string
	Quantity float64
}
