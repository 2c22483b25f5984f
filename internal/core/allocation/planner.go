package allocation

import (
	"github.com/example/batchalloc/internal/core/fefo"
)

// Status classifies the outcome of an allocation plan.
type Status string

const (
	// StatusComplete means the required quantity was fully covered.
	StatusComplete Status = "COMPLETE"
	// StatusPartial means some stock was found but not enough.
	StatusPartial Status = "PARTIAL"
	// StatusNoStock means the inventory collaborator returned no batches.
	StatusNoStock Status = "NO_STOCK"
)

// Line is one batch's contribution to an allocation.
type Line struct {
	BatchID      string
	AllocatedQty float64
	// FEFORank is the 1-based position of the batch in the ordered walk.
	FEFORank int
	Warnings []string
}

// PlanInput contains the inputs for planning an allocation.
// All values are pre-fetched and pre-ordered by the caller - no I/O here.
type PlanInput struct {
	ItemCode    string
	RequiredQty float64
	// Ordered is the ranked batch list produced by the fefo optimizer.
	Ordered []fefo.Ranked
	// AvailableCount is the raw number of batches the inventory collaborator
	// returned, before expiry filtering. Distinguishes NO_STOCK from an
	// allocation where every batch was filtered out.
	AvailableCount int
}

// Result is an immutable allocation plan. The engine never reserves or
// decrements real stock; committing the plan is an external concern.
type Result struct {
	ItemCode       string
	RequiredQty    float64
	Lines          []Line
	TotalAllocated float64
	Shortfall      float64
	Status         Status
	// Batches snapshots the allocated lots keyed by batch ID so later
	// pipeline stages need no re-fetch.
	Batches map[string]fefo.Batch
}

// Plan greedily walks the ordered batch list, allocating
// min(available, remaining) at each step until the requirement is covered or
// the list is exhausted.
//
// Invariants: TotalAllocated + Shortfall == RequiredQty, and no line ever
// exceeds its batch's available quantity.
func Plan(input PlanInput) Result {
	result := Result{
		ItemCode:    input.ItemCode,
		RequiredQty: input.RequiredQty,
		Batches:     make(map[string]fefo.Batch),
	}

	remaining := input.RequiredQty
	for _, r := range input.Ordered {
		if remaining <= 0 {
			break
		}
		if r.Batch.AvailableQty <= 0 {
			continue
		}

		qty := r.Batch.AvailableQty
		if qty > remaining {
			qty = remaining
		}

		result.Lines = append(result.Lines, Line{
			BatchID:      r.Batch.BatchID,
			AllocatedQty: qty,
			FEFORank:     r.Rank,
			Warnings:     r.Warnings,
		})
		result.Batches[r.Batch.BatchID] = r.Batch
		result.TotalAllocated += qty
		remaining -= qty
	}

	if remaining < 0 {
		remaining = 0
	}
	result.Shortfall = remaining

	switch {
	case input.AvailableCount == 0:
		result.Status = StatusNoStock
	case result.Shortfall <= 0:
		result.Status = StatusComplete
	default:
		result.Status = StatusPartial
	}

	return result
}
