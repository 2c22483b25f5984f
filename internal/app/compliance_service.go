package app

import (
	"context"
	"fmt"

	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/blend"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// ComplianceServiceImpl implements the ComplianceService interface.
type ComplianceServiceImpl struct {
	specRepo secondary.SpecRepository
}

// NewComplianceService creates a new ComplianceService with injected
// dependencies.
func NewComplianceService(specRepo secondary.SpecRepository) *ComplianceServiceImpl {
	return &ComplianceServiceImpl{specRepo: specRepo}
}

// ValidateAllocation blends the allocation and checks it against the item's
// technical data sheet.
func (s *ComplianceServiceImpl) ValidateAllocation(ctx context.Context, alloc allocation.Result) (*primary.ValidationResponse, error) {
	record, err := s.specRepo.GetByItem(ctx, alloc.ItemCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get target spec: %w", err)
	}

	portions := make([]blend.Portion, len(alloc.Lines))
	for i, line := range alloc.Lines {
		portions[i] = blend.Portion{
			BatchID: line.BatchID,
			Qty:     line.AllocatedQty,
			Quality: alloc.Batches[line.BatchID].QualityParameters,
		}
	}

	resp := &primary.ValidationResponse{
		Blend:     blend.Validate(portions, recordToTargetSpec(record)),
		SpecFound: record != nil,
	}
	if record != nil {
		resp.SpecName = record.Name
	}
	return resp, nil
}

// GetTargetSpec returns the item's technical data sheet, nil when absent.
func (s *ComplianceServiceImpl) GetTargetSpec(ctx context.Context, itemCode string) (*primary.TargetSpecView, error) {
	record, err := s.specRepo.GetByItem(ctx, itemCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get target spec: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	return &primary.TargetSpecView{
		ItemCode: record.ItemCode,
		Name:     record.Name,
		Spec:     recordToTargetSpec(record),
	}, nil
}
