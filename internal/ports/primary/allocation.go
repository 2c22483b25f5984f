// Package primary defines the primary ports (driving adapters) for the
// engine: the service interfaces through which the outside world requests
// allocations, validations, pricing, and workflows.
package primary

import (
	"context"

	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/fefo"
)

// AllocationService defines the primary port for planning allocations.
type AllocationService interface {
	// Allocate plans an allocation for the requested quantity. The plan is
	// pure: no stock is reserved or decremented.
	Allocate(ctx context.Context, req AllocateRequest) (*AllocateResponse, error)
}

// AllocateRequest contains parameters for planning an allocation.
type AllocateRequest struct {
	ItemCode       string
	RequiredQty    float64
	Warehouse      string
	Mode           fefo.Mode
	IncludeExpired bool
	NearExpiryDays int
}

// AllocateResponse contains the allocation plan and the ordering it was
// walked in.
type AllocateResponse struct {
	Result allocation.Result
	Ranked []fefo.Ranked
}
