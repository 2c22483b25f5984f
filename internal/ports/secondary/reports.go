package secondary

import "context"

// ReportRecord is the persisted business record of a finished workflow.
type ReportRecord struct {
	WorkflowID     string
	ItemCode       string
	Warehouse      string
	Status         string // workflow terminal status
	AllocStatus    string // COMPLETE / PARTIAL / NO_STOCK
	RequiredQty    float64
	TotalAllocated float64
	Shortfall      float64
	Compliant      *bool // nil when the compliance phase never ran
	TotalCost      string
	Currency       string
	Summary        string
	CreatedAt      string
}

// ReportFilters narrows report listings.
type ReportFilters struct {
	ItemCode string
	Status   string
	Limit    int
}

// ReportSink defines the secondary port the orchestrator hands its terminal
// state to. Rendering for humans is a driving adapter's job; this port only
// persists the business record.
type ReportSink interface {
	// Save persists a workflow report.
	Save(ctx context.Context, report *ReportRecord) error

	// GetByWorkflowID retrieves one report.
	GetByWorkflowID(ctx context.Context, workflowID string) (*ReportRecord, error)

	// List retrieves reports matching the given filters, newest first.
	List(ctx context.Context, filters ReportFilters) ([]*ReportRecord, error)
}
