package app

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/fefo"
	"github.com/example/batchalloc/internal/core/workflow"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// Agent is one independently replaceable workflow sub-agent. The only
// coupling between agents is the message/result shape: any agent can be
// swapped for a different strategy without touching the others.
type Agent interface {
	Name() string
	Handle(ctx context.Context, msg workflow.AgentMessage) workflow.AgentResponse
}

// Agent error codes. These mark hard phase failures; expected domain
// outcomes travel inside phase results instead.
const (
	ErrCodeBadPayload         = "BAD_PAYLOAD"
	ErrCodeAllocationFailed   = "ALLOCATION_FAILED"
	ErrCodeSpecUnavailable    = "SPEC_UNAVAILABLE"
	ErrCodePricingUnavailable = "PRICING_UNAVAILABLE"
	ErrCodeReportFailed       = "REPORT_FAILED"
	ErrCodeCancelled          = "CANCELLED"
)

// BatchSelectionAgent plans the allocation for the requested quantity.
type BatchSelectionAgent struct {
	allocations primary.AllocationService
}

// NewBatchSelectionAgent creates the batch-selection sub-agent.
func NewBatchSelectionAgent(allocations primary.AllocationService) *BatchSelectionAgent {
	return &BatchSelectionAgent{allocations: allocations}
}

// Name implements Agent.
func (a *BatchSelectionAgent) Name() string { return "batch_selection_agent" }

// Handle implements Agent.
func (a *BatchSelectionAgent) Handle(ctx context.Context, msg workflow.AgentMessage) workflow.AgentResponse {
	payload, ok := msg.Payload.(workflow.BatchSelectionPayload)
	if !ok {
		return workflow.Failure(ErrCodeBadPayload, fmt.Sprintf("unexpected payload %T for %s", msg.Payload, msg.Phase))
	}

	req := payload.Request
	resp, err := a.allocations.Allocate(ctx, primary.AllocateRequest{
		ItemCode:       req.ItemCode,
		RequiredQty:    req.RequiredQty,
		Warehouse:      req.Warehouse,
		Mode:           req.Mode,
		IncludeExpired: req.IncludeExpired,
		NearExpiryDays: req.NearExpiryDays,
	})
	if err != nil {
		return workflow.Failure(ErrCodeAllocationFailed, err.Error())
	}

	return workflow.Succeed(workflow.BatchSelectionResult{
		Allocation: resp.Result,
		Ranked:     resp.Ranked,
	})
}

// ComplianceAgent validates the blended quality of the allocation.
type ComplianceAgent struct {
	compliance primary.ComplianceService
}

// NewComplianceAgent creates the compliance sub-agent.
func NewComplianceAgent(compliance primary.ComplianceService) *ComplianceAgent {
	return &ComplianceAgent{compliance: compliance}
}

// Name implements Agent.
func (a *ComplianceAgent) Name() string { return "compliance_agent" }

// Handle implements Agent.
func (a *ComplianceAgent) Handle(ctx context.Context, msg workflow.AgentMessage) workflow.AgentResponse {
	payload, ok := msg.Payload.(workflow.CompliancePayload)
	if !ok {
		return workflow.Failure(ErrCodeBadPayload, fmt.Sprintf("unexpected payload %T for %s", msg.Payload, msg.Phase))
	}

	resp, err := a.compliance.ValidateAllocation(ctx, payload.Allocation)
	if err != nil {
		return workflow.Failure(ErrCodeSpecUnavailable, err.Error())
	}

	return workflow.Succeed(workflow.ComplianceResult{
		Blend:     resp.Blend,
		SpecName:  resp.SpecName,
		SpecFound: resp.SpecFound,
	})
}

// CostAgent prices the allocation.
type CostAgent struct {
	costing       primary.CostingService
	applyOverhead bool
}

// NewCostAgent creates the cost-calculation sub-agent.
func NewCostAgent(costing primary.CostingService, applyOverhead bool) *CostAgent {
	return &CostAgent{costing: costing, applyOverhead: applyOverhead}
}

// Name implements Agent.
func (a *CostAgent) Name() string { return "cost_agent" }

// Handle implements Agent.
func (a *CostAgent) Handle(ctx context.Context, msg workflow.AgentMessage) workflow.AgentResponse {
	payload, ok := msg.Payload.(workflow.CostPayload)
	if !ok {
		return workflow.Failure(ErrCodeBadPayload, fmt.Sprintf("unexpected payload %T for %s", msg.Payload, msg.Phase))
	}

	result, err := a.costing.CostAllocation(ctx, primary.CostRequest{
		Allocation:    payload.Allocation,
		ApplyOverhead: a.applyOverhead,
	})
	if err != nil {
		return workflow.Failure(ErrCodePricingUnavailable, err.Error())
	}

	return workflow.Succeed(workflow.CostResult{Cost: *result})
}

// OptimizationAgent reviews the committed allocation and reports advisory
// findings: what a cheapest-first walk over the same lots would cost, and
// which lots deserve attention. It never changes the allocation.
type OptimizationAgent struct{}

// NewOptimizationAgent creates the optimization sub-agent.
func NewOptimizationAgent() *OptimizationAgent {
	return &OptimizationAgent{}
}

// Name implements Agent.
func (a *OptimizationAgent) Name() string { return "optimization_agent" }

// Handle implements Agent.
func (a *OptimizationAgent) Handle(ctx context.Context, msg workflow.AgentMessage) workflow.AgentResponse {
	payload, ok := msg.Payload.(workflow.OptimizationPayload)
	if !ok {
		return workflow.Failure(ErrCodeBadPayload, fmt.Sprintf("unexpected payload %T for %s", msg.Payload, msg.Phase))
	}

	alloc := payload.Allocation
	fefoTotal := orderingCost(alloc)

	// Cost the same requirement covered cheapest-first over the same lots.
	batches := make([]fefo.Batch, len(payload.Ranked))
	for i, r := range payload.Ranked {
		batches[i] = r.Batch
	}
	cheapest := fefo.Order(batches, fefo.Options{
		Mode:           fefo.ModeCostAsc,
		IncludeExpired: true, // lots already passed selection filtering
		Today:          time.Now().UTC(),
	})
	altPlan := allocation.Plan(allocation.PlanInput{
		ItemCode:       alloc.ItemCode,
		RequiredQty:    alloc.RequiredQty,
		Ordered:        cheapest,
		AvailableCount: len(cheapest),
	})
	altTotal := orderingCost(altPlan)

	saving := fefoTotal.Sub(altTotal)
	if saving.IsNegative() {
		saving = decimal.Zero
	}

	result := workflow.OptimizationResult{
		CostAscTotal:    altTotal.StringFixed(2),
		PotentialSaving: saving.StringFixed(2),
	}

	if saving.IsPositive() {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("cheapest-first ordering would save %s in raw material; FEFO retained for shelf-life compliance", saving.StringFixed(2)))
	}
	for _, line := range alloc.Lines {
		for _, w := range line.Warnings {
			result.Recommendations = append(result.Recommendations,
				fmt.Sprintf("batch %s: %s", line.BatchID, w))
		}
	}
	if alloc.Shortfall > 0 {
		result.Recommendations = append(result.Recommendations,
			fmt.Sprintf("shortfall of %v units: schedule procurement or production for %s", alloc.Shortfall, alloc.ItemCode))
	}

	return workflow.Succeed(result)
}

// orderingCost sums qty * unit cost over an allocation's lines using the
// batch snapshot's unit costs. Cost-unknown batches contribute zero.
func orderingCost(alloc allocation.Result) decimal.Decimal {
	total := decimal.Zero
	for _, line := range alloc.Lines {
		batch := alloc.Batches[line.BatchID]
		if batch.CostUnknown {
			continue
		}
		total = total.Add(batch.UnitCost.Mul(decimal.NewFromFloat(line.AllocatedQty)).Round(2))
	}
	return total
}

// ReportAgent persists the terminal workflow record through the report sink.
type ReportAgent struct {
	sink secondary.ReportSink
	now  func() time.Time
}

// NewReportAgent creates the report-generation sub-agent.
func NewReportAgent(sink secondary.ReportSink) *ReportAgent {
	return &ReportAgent{sink: sink, now: time.Now}
}

// Name implements Agent.
func (a *ReportAgent) Name() string { return "report_agent" }

// Handle implements Agent.
func (a *ReportAgent) Handle(ctx context.Context, msg workflow.AgentMessage) workflow.AgentResponse {
	payload, ok := msg.Payload.(workflow.ReportPayload)
	if !ok {
		return workflow.Failure(ErrCodeBadPayload, fmt.Sprintf("unexpected payload %T for %s", msg.Payload, msg.Phase))
	}

	record := buildReportRecord(payload.State)
	record.Summary = summarize(payload.State)

	if err := a.sink.Save(ctx, record); err != nil {
		return workflow.Failure(ErrCodeReportFailed, err.Error())
	}

	return workflow.Succeed(workflow.ReportResult{
		ReportID:    record.WorkflowID,
		Summary:     record.Summary,
		GeneratedAt: a.now().UTC(),
	})
}

func buildReportRecord(state workflow.State) *secondary.ReportRecord {
	record := &secondary.ReportRecord{
		WorkflowID:  state.WorkflowID,
		ItemCode:    state.Request.ItemCode,
		Warehouse:   state.Request.Warehouse,
		RequiredQty: state.Request.RequiredQty,
		// The report phase is still in flight; all earlier phases succeeded.
		Status: string(workflow.StatusCompleted),
	}

	if sel, ok := state.BatchSelection(); ok {
		record.AllocStatus = string(sel.Allocation.Status)
		record.TotalAllocated = sel.Allocation.TotalAllocated
		record.Shortfall = sel.Allocation.Shortfall
	}
	if comp, ok := state.Compliance(); ok {
		compliant := comp.Blend.Compliant
		record.Compliant = &compliant
	}
	if cost, ok := state.CostCalculation(); ok {
		record.TotalCost = cost.Cost.TotalCost.StringFixed(2)
		record.Currency = cost.Cost.Currency
	}

	return record
}

func summarize(state workflow.State) string {
	summary := fmt.Sprintf("%s: ", state.Request.ItemCode)

	sel, ok := state.BatchSelection()
	if !ok {
		return summary + "no allocation recorded"
	}
	summary += fmt.Sprintf("allocated %v/%v across %d batches (%s)",
		sel.Allocation.TotalAllocated, sel.Allocation.RequiredQty, len(sel.Allocation.Lines), sel.Allocation.Status)

	if comp, ok := state.Compliance(); ok {
		if comp.Blend.Compliant {
			summary += "; compliant"
		} else if comp.SpecFound {
			summary += "; NOT compliant"
		} else {
			summary += "; no TDS on file"
		}
	}
	if cost, ok := state.CostCalculation(); ok {
		summary += fmt.Sprintf("; total cost %s %s", cost.Cost.TotalCost.StringFixed(2), cost.Cost.Currency)
	}

	return summary
}
