package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/fefo"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// AllocationServiceImpl implements the AllocationService interface.
type AllocationServiceImpl struct {
	inventoryRepo secondary.InventoryRepository
	now           func() time.Time
}

// NewAllocationService creates a new AllocationService with injected
// dependencies.
func NewAllocationService(inventoryRepo secondary.InventoryRepository) *AllocationServiceImpl {
	return &AllocationServiceImpl{
		inventoryRepo: inventoryRepo,
		now:           time.Now,
	}
}

// Allocate plans an allocation: guard, fetch, order, greedy walk.
func (s *AllocationServiceImpl) Allocate(ctx context.Context, req primary.AllocateRequest) (*primary.AllocateResponse, error) {
	// 1. Check guard - a malformed request is a hard failure, not an
	// allocation outcome.
	guard := allocation.CanAllocate(allocation.Request{
		ItemCode:    req.ItemCode,
		RequiredQty: req.RequiredQty,
		Warehouse:   req.Warehouse,
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	// 2. Fetch available batches from the inventory collaborator.
	records, err := s.inventoryRepo.ListAvailableBatches(ctx, req.ItemCode, req.Warehouse)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}

	batches := make([]fefo.Batch, len(records))
	for i, r := range records {
		batches[i] = recordToBatch(r)
	}

	// 3. Order via the optimizer.
	mode := req.Mode
	if mode == "" {
		mode = fefo.ModeFEFO
	}
	ranked := fefo.Order(batches, fefo.Options{
		Mode:           mode,
		IncludeExpired: req.IncludeExpired,
		NearExpiryDays: req.NearExpiryDays,
		Today:          s.now().UTC(),
	})

	// 4. Plan with the pure core.
	result := allocation.Plan(allocation.PlanInput{
		ItemCode:       req.ItemCode,
		RequiredQty:    req.RequiredQty,
		Ordered:        ranked,
		AvailableCount: len(records),
	})

	return &primary.AllocateResponse{Result: result, Ranked: ranked}, nil
}
