package workflow

import (
	"testing"

	"github.com/example/batchalloc/internal/core/allocation"
)

func TestNext(t *testing.T) {
	tests := []struct {
		phase  Phase
		want   Phase
		wantOK bool
	}{
		{PhaseBatchSelection, PhaseCompliance, true},
		{PhaseCompliance, PhaseCostCalculation, true},
		{PhaseCostCalculation, PhaseOptimization, true},
		{PhaseOptimization, PhaseReportGeneration, true},
		{PhaseReportGeneration, "", false},
		{"BOGUS", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.phase), func(t *testing.T) {
			next, ok := Next(tt.phase)
			if ok != tt.wantOK || next != tt.want {
				t.Errorf("Next(%s) = (%s, %v), want (%s, %v)", tt.phase, next, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSequenceOrder(t *testing.T) {
	seq := Sequence()
	if len(seq) != 5 {
		t.Fatalf("sequence length = %d, want 5", len(seq))
	}
	if seq[0] != PhaseBatchSelection || seq[4] != PhaseReportGeneration {
		t.Errorf("sequence = %v", seq)
	}
}

func TestStateRecordAdvances(t *testing.T) {
	s := NewState("WF-1", Request{ItemCode: "ITEM-X", RequiredQty: 100})

	if s.Status != StatusRunning || s.CurrentPhase != PhaseBatchSelection {
		t.Fatalf("fresh state = %s/%s", s.Status, s.CurrentPhase)
	}

	s.Record(Outcome{
		Phase:   PhaseBatchSelection,
		Success: true,
		Result:  BatchSelectionResult{Allocation: allocation.Result{ItemCode: "ITEM-X"}},
	})

	if s.CurrentPhase != PhaseCompliance {
		t.Errorf("CurrentPhase = %s, want %s", s.CurrentPhase, PhaseCompliance)
	}
	if s.Status != StatusRunning {
		t.Errorf("Status = %s, want %s", s.Status, StatusRunning)
	}

	if _, ok := s.BatchSelection(); !ok {
		t.Error("BatchSelection() not retrievable after record")
	}
}

func TestStateRecordFailureTerminates(t *testing.T) {
	s := NewState("WF-1", Request{ItemCode: "ITEM-X", RequiredQty: 100})

	s.Record(Outcome{Phase: PhaseBatchSelection, Success: true, Result: BatchSelectionResult{}})
	s.Record(Outcome{Phase: PhaseCompliance, Success: false, ErrorCode: "SPEC_UNAVAILABLE", Error: "boom"})

	if s.Status != StatusFailed {
		t.Errorf("Status = %s, want %s", s.Status, StatusFailed)
	}
	if s.FinishedAt.IsZero() {
		t.Error("FinishedAt not set on failure")
	}
	// The failed outcome stays visible for diagnostics.
	out, ok := s.Phases[PhaseCompliance]
	if !ok || out.Success || out.ErrorCode != "SPEC_UNAVAILABLE" {
		t.Errorf("failure outcome = %+v", out)
	}
	if _, ok := s.Compliance(); ok {
		t.Error("Compliance() returned a result for a failed phase")
	}
}

func TestStateRecordLastPhaseCompletes(t *testing.T) {
	s := NewState("WF-1", Request{ItemCode: "ITEM-X", RequiredQty: 100})

	for _, phase := range Sequence() {
		s.Record(Outcome{Phase: phase, Success: true, Result: resultFor(phase)})
	}

	if s.Status != StatusCompleted {
		t.Errorf("Status = %s, want %s", s.Status, StatusCompleted)
	}
	if s.FinishedAt.IsZero() {
		t.Error("FinishedAt not set on completion")
	}
}

func TestCanDispatch(t *testing.T) {
	s := NewState("WF-1", Request{ItemCode: "ITEM-X", RequiredQty: 100})

	if g := CanDispatch(s, PhaseBatchSelection); !g.Allowed {
		t.Errorf("fresh state cannot dispatch first phase: %s", g.Reason)
	}
	if g := CanDispatch(s, PhaseCompliance); g.Allowed {
		t.Error("dispatched out-of-order phase allowed")
	}

	s.Record(Outcome{Phase: PhaseBatchSelection, Success: false, ErrorCode: "X", Error: "x"})
	if g := CanDispatch(s, PhaseCompliance); g.Allowed {
		t.Error("failed workflow still dispatches")
	}
}

func resultFor(phase Phase) PhaseResult {
	switch phase {
	case PhaseBatchSelection:
		return BatchSelectionResult{}
	case PhaseCompliance:
		return ComplianceResult{}
	case PhaseCostCalculation:
		return CostResult{}
	case PhaseOptimization:
		return OptimizationResult{}
	default:
		return ReportResult{}
	}
}
