package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/batchalloc/internal/core/fefo"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// InventoryServiceImpl implements the InventoryService interface.
type InventoryServiceImpl struct {
	inventoryRepo secondary.InventoryRepository
	// now is injectable for tests; defaults to time.Now.
	now func() time.Time
}

// NewInventoryService creates a new InventoryService with injected
// dependencies.
func NewInventoryService(inventoryRepo secondary.InventoryRepository) *InventoryServiceImpl {
	return &InventoryServiceImpl{
		inventoryRepo: inventoryRepo,
		now:           time.Now,
	}
}

// ListRankedBatches fetches an item's available lots and orders them.
func (s *InventoryServiceImpl) ListRankedBatches(ctx context.Context, req primary.ListBatchesRequest) ([]fefo.Ranked, error) {
	records, err := s.inventoryRepo.ListAvailableBatches(ctx, req.ItemCode, req.Warehouse)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	batches := make([]fefo.Batch, len(records))
	for i, r := range records {
		batches[i] = recordToBatch(r)
	}

	mode := req.Mode
	if mode == "" {
		mode = fefo.ModeFEFO
	}

	return fefo.Order(batches, fefo.Options{
		Mode:           mode,
		IncludeExpired: req.IncludeExpired,
		NearExpiryDays: req.NearExpiryDays,
		Today:          s.now().UTC(),
	}), nil
}
