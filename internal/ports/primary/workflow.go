package primary

import (
	"context"

	"github.com/example/batchalloc/internal/core/workflow"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// WorkflowService defines the primary port for running the full
// allocation-to-report pipeline.
type WorkflowService interface {
	// Run drives all phases to a terminal state. The returned state always
	// carries enough to render a complete report or a clear statement of
	// which phase failed - it never surfaces a bare crash. The error return
	// covers only precondition violations that prevent starting at all.
	Run(ctx context.Context, req RunWorkflowRequest) (*workflow.State, error)

	// GetReport retrieves a persisted workflow report.
	GetReport(ctx context.Context, workflowID string) (*secondary.ReportRecord, error)

	// ListReports lists persisted workflow reports, newest first.
	ListReports(ctx context.Context, filters secondary.ReportFilters) ([]*secondary.ReportRecord, error)
}

// RunWorkflowRequest contains parameters for starting a workflow.
type RunWorkflowRequest struct {
	ItemCode       string
	RequiredQty    float64
	Warehouse      string
	IncludeExpired bool
}
