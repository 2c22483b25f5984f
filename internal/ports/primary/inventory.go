package primary

import (
	"context"

	"github.com/example/batchalloc/internal/core/fefo"
)

// InventoryService defines the primary port for browsing ranked inventory.
type InventoryService interface {
	// ListRankedBatches fetches an item's available lots and returns them in
	// the requested ordering with expiry annotations.
	ListRankedBatches(ctx context.Context, req ListBatchesRequest) ([]fefo.Ranked, error)
}

// ListBatchesRequest contains parameters for listing ranked batches.
type ListBatchesRequest struct {
	ItemCode       string
	Warehouse      string
	Mode           fefo.Mode
	IncludeExpired bool
	NearExpiryDays int
}
