package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/batchalloc/internal/config"
	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/fefo"
	"github.com/example/batchalloc/internal/core/workflow"
	"github.com/example/batchalloc/internal/ports/primary"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// orchestratorName is the source agent on every dispatched message.
const orchestratorName = "workflow_orchestrator"

// WorkflowOrchestrator drives the allocation-to-report pipeline through its
// phases. It exclusively owns the workflow state; sub-agents only ever see
// immutable message payloads and return immutable results, so no locking is
// needed. Distinct workflow instances are fully independent.
type WorkflowOrchestrator struct {
	agents map[workflow.Phase]Agent
	sink   secondary.ReportSink
	cfg    *config.Config
	newID  func() string
	now    func() time.Time
}

// NewWorkflowOrchestrator wires the five sub-agents. Configuration is an
// explicit value fixed at construction.
func NewWorkflowOrchestrator(
	allocations primary.AllocationService,
	compliance primary.ComplianceService,
	costing primary.CostingService,
	sink secondary.ReportSink,
	cfg *config.Config,
) *WorkflowOrchestrator {
	return &WorkflowOrchestrator{
		agents: map[workflow.Phase]Agent{
			workflow.PhaseBatchSelection:   NewBatchSelectionAgent(allocations),
			workflow.PhaseCompliance:       NewComplianceAgent(compliance),
			workflow.PhaseCostCalculation:  NewCostAgent(costing, cfg.OverheadPercent > 0),
			workflow.PhaseOptimization:     NewOptimizationAgent(),
			workflow.PhaseReportGeneration: NewReportAgent(sink),
		},
		sink:  sink,
		cfg:   cfg,
		newID: uuid.NewString,
		now:   time.Now,
	}
}

// RegisterAgent swaps the sub-agent for a phase. The message/result shape is
// the only coupling, so alternative strategies drop in without touching the
// rest of the pipeline.
func (o *WorkflowOrchestrator) RegisterAgent(phase workflow.Phase, agent Agent) {
	o.agents[phase] = agent
}

// Run executes all phases strictly in sequence until a terminal state.
// Phase N+1 never starts before phase N's message exchange completes.
func (o *WorkflowOrchestrator) Run(ctx context.Context, req primary.RunWorkflowRequest) (*workflow.State, error) {
	// Precondition violations abort before any phase runs.
	guard := allocation.CanAllocate(allocation.Request{
		ItemCode:    req.ItemCode,
		RequiredQty: req.RequiredQty,
		Warehouse:   req.Warehouse,
	})
	if !guard.Allowed {
		return nil, guard.Error()
	}

	state := workflow.NewState(o.newID(), workflow.Request{
		ItemCode:       req.ItemCode,
		RequiredQty:    req.RequiredQty,
		Warehouse:      req.Warehouse,
		Mode:           fefo.ModeFEFO,
		IncludeExpired: req.IncludeExpired || o.cfg.IncludeExpired,
		NearExpiryDays: o.cfg.NearExpiryDays,
	})

	for _, phase := range workflow.Sequence() {
		// Cooperative cancellation at the phase boundary: never interrupt an
		// in-flight phase, never start the next one.
		if err := ctx.Err(); err != nil {
			state.Record(workflow.Outcome{
				Phase:       phase,
				Success:     false,
				ErrorCode:   ErrCodeCancelled,
				Error:       err.Error(),
				CompletedAt: o.now().UTC(),
			})
			return state, nil
		}

		if guard := workflow.CanDispatch(state, phase); !guard.Allowed {
			return state, fmt.Errorf("failed to dispatch phase %s: %s", phase, guard.Reason)
		}

		agent := o.agents[phase]
		msg := workflow.AgentMessage{
			SourceAgent: orchestratorName,
			TargetAgent: agent.Name(),
			Action:      actionFor(phase),
			WorkflowID:  state.WorkflowID,
			Phase:       phase,
			Payload:     o.buildPayload(state, phase),
		}

		resp := agent.Handle(ctx, msg)
		state.Record(workflow.Outcome{
			Phase:       phase,
			Success:     resp.Success,
			Result:      resp.Result,
			ErrorCode:   resp.ErrorCode,
			Error:       resp.Error,
			CompletedAt: o.now().UTC(),
		})

		// A failed phase halts the workflow; earlier results stay recorded
		// for diagnostics.
		if !resp.Success {
			break
		}
	}

	return state, nil
}

// buildPayload assembles a phase's typed payload from the results already
// recorded in the state. Data flows strictly forward.
func (o *WorkflowOrchestrator) buildPayload(state *workflow.State, phase workflow.Phase) workflow.Payload {
	switch phase {
	case workflow.PhaseBatchSelection:
		return workflow.BatchSelectionPayload{Request: state.Request}
	case workflow.PhaseCompliance:
		sel, _ := state.BatchSelection()
		return workflow.CompliancePayload{Allocation: sel.Allocation}
	case workflow.PhaseCostCalculation:
		sel, _ := state.BatchSelection()
		return workflow.CostPayload{Allocation: sel.Allocation}
	case workflow.PhaseOptimization:
		sel, _ := state.BatchSelection()
		cost, _ := state.CostCalculation()
		return workflow.OptimizationPayload{
			Allocation: sel.Allocation,
			Cost:       cost.Cost,
			Ranked:     sel.Ranked,
		}
	default:
		return workflow.ReportPayload{State: *state}
	}
}

func actionFor(phase workflow.Phase) string {
	switch phase {
	case workflow.PhaseBatchSelection:
		return "select_batches"
	case workflow.PhaseCompliance:
		return "validate_compliance"
	case workflow.PhaseCostCalculation:
		return "calculate_cost"
	case workflow.PhaseOptimization:
		return "optimize_allocation"
	default:
		return "generate_report"
	}
}

// GetReport retrieves a persisted workflow report.
func (o *WorkflowOrchestrator) GetReport(ctx context.Context, workflowID string) (*secondary.ReportRecord, error) {
	report, err := o.sink.GetByWorkflowID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

// ListReports lists persisted workflow reports, newest first.
func (o *WorkflowOrchestrator) ListReports(ctx context.Context, filters secondary.ReportFilters) ([]*secondary.ReportRecord, error) {
	reports, err := o.sink.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}
