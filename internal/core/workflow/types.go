// Package workflow contains the pure state-machine types for the
// batch-allocation pipeline: phases, typed agent message contracts, and the
// workflow state aggregate. No I/O lives here; the orchestrator in the
// application layer drives these types.
package workflow

import (
	"time"

	"github.com/example/batchalloc/internal/core/allocation"
	"github.com/example/batchalloc/internal/core/blend"
	"github.com/example/batchalloc/internal/core/costing"
	"github.com/example/batchalloc/internal/core/fefo"
)

// Phase names one stage of the pipeline.
type Phase string

const (
	PhaseBatchSelection   Phase = "BATCH_SELECTION"
	PhaseCompliance       Phase = "COMPLIANCE"
	PhaseCostCalculation  Phase = "COST_CALCULATION"
	PhaseOptimization     Phase = "OPTIMIZATION"
	PhaseReportGeneration Phase = "REPORT_GENERATION"
)

// Status classifies a workflow instance.
type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Request is the immutable input to a workflow instance.
type Request struct {
	ItemCode       string
	RequiredQty    float64
	Warehouse      string
	Mode           fefo.Mode
	IncludeExpired bool
	NearExpiryDays int
}

// Payload is the typed content of an AgentMessage. Each phase has its own
// concrete payload type; agents type-switch instead of probing map keys.
type Payload interface {
	payloadPhase() Phase
}

// PhaseResult is the typed outcome a sub-agent returns for a phase.
type PhaseResult interface {
	ResultPhase() Phase
}

// AgentMessage is one phase's dispatch from the orchestrator to a sub-agent.
type AgentMessage struct {
	SourceAgent string
	TargetAgent string
	Action      string
	WorkflowID  string
	Phase       Phase
	Payload     Payload
}

// AgentResponse is a sub-agent's reply. Success=false is a hard phase
// failure and halts the workflow; expected domain outcomes (shortfall,
// failed compliance, missing prices) travel inside Result instead.
type AgentResponse struct {
	Success   bool
	Result    PhaseResult
	ErrorCode string
	Error     string
}

// Failure builds a failed response.
func Failure(code, message string) AgentResponse {
	return AgentResponse{Success: false, ErrorCode: code, Error: message}
}

// Succeed builds a successful response.
func Succeed(result PhaseResult) AgentResponse {
	return AgentResponse{Success: true, Result: result}
}

// BatchSelectionPayload asks the selection agent to plan an allocation.
type BatchSelectionPayload struct {
	Request Request
}

// CompliancePayload asks the compliance agent to validate an allocation.
type CompliancePayload struct {
	Allocation allocation.Result
}

// CostPayload asks the cost agent to price an allocation.
type CostPayload struct {
	Allocation allocation.Result
}

// OptimizationPayload asks the optimization agent to review an allocation
// against its cost breakdown.
type OptimizationPayload struct {
	Allocation allocation.Result
	Cost       costing.Result
	// Ranked is the batch-selection ordering, so the agent can evaluate
	// alternative orderings over the same lots.
	Ranked []fefo.Ranked
}

// ReportPayload hands the report agent a read-only snapshot of the state so
// far.
type ReportPayload struct {
	State State
}

func (BatchSelectionPayload) payloadPhase() Phase { return PhaseBatchSelection }
func (CompliancePayload) payloadPhase() Phase     { return PhaseCompliance }
func (CostPayload) payloadPhase() Phase           { return PhaseCostCalculation }
func (OptimizationPayload) payloadPhase() Phase   { return PhaseOptimization }
func (ReportPayload) payloadPhase() Phase         { return PhaseReportGeneration }

// BatchSelectionResult is the batch-selection phase outcome.
type BatchSelectionResult struct {
	Allocation allocation.Result
	// Ranked is the full optimizer ordering, kept for the optimization phase.
	Ranked []fefo.Ranked
}

// ComplianceResult is the compliance phase outcome.
type ComplianceResult struct {
	Blend    blend.Result
	SpecName string
	// SpecFound is false when the item has no technical data sheet; the
	// blend is then reported informationally without constraints.
	SpecFound bool
}

// CostResult is the cost-calculation phase outcome.
type CostResult struct {
	Cost costing.Result
}

// OptimizationResult is the optimization phase outcome: advisory findings,
// never a change to the committed allocation.
type OptimizationResult struct {
	// CostAscTotal is the raw-material total if the same requirement were
	// covered cheapest-first instead.
	CostAscTotal string
	// PotentialSaving is FEFO total minus cheapest-first total (>= 0 when
	// FEFO costs more), formatted as a decimal string.
	PotentialSaving string
	Recommendations []string
}

// ReportResult is the report-generation phase outcome.
type ReportResult struct {
	ReportID    string
	Summary     string
	GeneratedAt time.Time
}

func (BatchSelectionResult) ResultPhase() Phase { return PhaseBatchSelection }
func (ComplianceResult) ResultPhase() Phase     { return PhaseCompliance }
func (CostResult) ResultPhase() Phase           { return PhaseCostCalculation }
func (OptimizationResult) ResultPhase() Phase   { return PhaseOptimization }
func (ReportResult) ResultPhase() Phase         { return PhaseReportGeneration }

// Outcome records one phase's terminal state inside the workflow aggregate.
type Outcome struct {
	Phase       Phase
	Success     bool
	Result      PhaseResult
	ErrorCode   string
	Error       string
	CompletedAt time.Time
}

// State is the workflow aggregate. The orchestrator exclusively owns and
// mutates it, one phase outcome at a time; sub-agents only ever see
// read-only snapshots.
type State struct {
	WorkflowID   string
	Request      Request
	CurrentPhase Phase
	Phases       map[Phase]Outcome
	Status       Status
	StartedAt    time.Time
	FinishedAt   time.Time
}

// NewState creates a running workflow positioned at the first phase.
func NewState(workflowID string, req Request) *State {
	return &State{
		WorkflowID:   workflowID,
		Request:      req,
		CurrentPhase: PhaseBatchSelection,
		Phases:       make(map[Phase]Outcome),
		Status:       StatusRunning,
		StartedAt:    time.Now().UTC(),
	}
}

// Record appends a phase outcome and advances or terminates the workflow.
// Terminal once Status != RUNNING.
func (s *State) Record(outcome Outcome) {
	s.Phases[outcome.Phase] = outcome

	if !outcome.Success {
		s.Status = StatusFailed
		s.FinishedAt = time.Now().UTC()
		return
	}

	next, ok := Next(outcome.Phase)
	if !ok {
		s.Status = StatusCompleted
		s.FinishedAt = time.Now().UTC()
		return
	}
	s.CurrentPhase = next
}

// BatchSelection returns the batch-selection outcome, if recorded and
// successful.
func (s *State) BatchSelection() (BatchSelectionResult, bool) {
	out, ok := s.Phases[PhaseBatchSelection]
	if !ok || !out.Success {
		return BatchSelectionResult{}, false
	}
	result, ok := out.Result.(BatchSelectionResult)
	return result, ok
}

// Compliance returns the compliance outcome, if recorded and successful.
func (s *State) Compliance() (ComplianceResult, bool) {
	out, ok := s.Phases[PhaseCompliance]
	if !ok || !out.Success {
		return ComplianceResult{}, false
	}
	result, ok := out.Result.(ComplianceResult)
	return result, ok
}

// CostCalculation returns the cost outcome, if recorded and successful.
func (s *State) CostCalculation() (CostResult, bool) {
	out, ok := s.Phases[PhaseCostCalculation]
	if !ok || !out.Success {
		return CostResult{}, false
	}
	result, ok := out.Result.(CostResult)
	return result, ok
}

// Optimization returns the optimization outcome, if recorded and successful.
func (s *State) Optimization() (OptimizationResult, bool) {
	out, ok := s.Phases[PhaseOptimization]
	if !ok || !out.Success {
		return OptimizationResult{}, false
	}
	result, ok := out.Result.(OptimizationResult)
	return result, ok
}

// Report returns the report outcome, if recorded and successful.
func (s *State) Report() (ReportResult, bool) {
	out, ok := s.Phases[PhaseReportGeneration]
	if !ok || !out.Success {
		return ReportResult{}, false
	}
	result, ok := out.Result.(ReportResult)
	return result, ok
}
