package workflow

import "fmt"

// sequence is the strict phase order. Phase N+1 never starts before phase
// N's message exchange completes.
var sequence = []Phase{
	PhaseBatchSelection,
	PhaseCompliance,
	PhaseCostCalculation,
	PhaseOptimization,
	PhaseReportGeneration,
}

// Sequence returns the phases in execution order.
func Sequence() []Phase {
	out := make([]Phase, len(sequence))
	copy(out, sequence)
	return out
}

// Next returns the phase following p, or ok=false when p is the last phase.
func Next(p Phase) (Phase, bool) {
	for i, phase := range sequence {
		if phase == p && i+1 < len(sequence) {
			return sequence[i+1], true
		}
	}
	return "", false
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CanDispatch evaluates whether the orchestrator may dispatch the given
// phase. Rule: only a running workflow positioned at that phase may
// dispatch it; terminal workflows never advance.
func CanDispatch(s *State, phase Phase) GuardResult {
	if s.Status != StatusRunning {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("workflow %s is %s, no further phases may run", s.WorkflowID, s.Status),
		}
	}
	if s.CurrentPhase != phase {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("workflow %s is at phase %s, cannot dispatch %s", s.WorkflowID, s.CurrentPhase, phase),
		}
	}
	if _, done := s.Phases[phase]; done {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("phase %s already recorded for workflow %s", phase, s.WorkflowID),
		}
	}
	return GuardResult{Allowed: true}
}
