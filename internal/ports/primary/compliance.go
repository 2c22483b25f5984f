package primary

import (
	"context"

	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/blend"
)

// ComplianceService defines the primary port for blend validation.
type ComplianceService interface {
	// ValidateAllocation blends the allocation's quality parameters and
	// checks them against the item's technical data sheet.
	ValidateAllocation(ctx context.Context, alloc allocation.Result) (*ValidationResponse, error)

	// GetTargetSpec returns the item's technical data sheet, or nil when
	// the item has none.
	GetTargetSpec(ctx context.Context, itemCode string) (*TargetSpecView, error)
}

// ValidationResponse contains the blend verdict.
type ValidationResponse struct {
	Blend    blend.Result
	SpecName string
	// SpecFound is false when the item has no TDS; the blend figures are
	// then informational only.
	SpecFound bool
}

// TargetSpecView is a technical data sheet at the port boundary.
type TargetSpecView struct {
	ItemCode string
	Name     string
	Spec     blend.TargetSpec
}
