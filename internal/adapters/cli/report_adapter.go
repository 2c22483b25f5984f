// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/batchalloc/internal/core/workflow"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// ReportAdapter renders workflow states and persisted reports for terminals.
// It is a stateless translator; one instance per output stream.
type ReportAdapter struct {
	out io.Writer
}

// NewReportAdapter creates a new ReportAdapter writing to the given output.
func NewReportAdapter(out io.Writer) *ReportAdapter {
	return &ReportAdapter{out: out}
}

// RenderState prints the full phase-by-phase breakdown of a finished
// workflow.
func (a *ReportAdapter) RenderState(state *workflow.State) {
	fmt.Fprintf(a.out, "\nWorkflow: %s\n", state.WorkflowID)
	fmt.Fprintf(a.out, "Item:     %s  (required %.2f)\n", state.Request.ItemCode, state.Request.RequiredQty)
	if state.Request.Warehouse != "" {
		fmt.Fprintf(a.out, "Warehouse: %s\n", state.Request.Warehouse)
	}
	fmt.Fprintf(a.out, "Status:   %s\n", statusLabel(state.Status))

	for _, phase := range workflow.Sequence() {
		outcome, ok := state.Phases[phase]
		if !ok {
			fmt.Fprintf(a.out, "\n%s %s\n", phaseMarker(false, true), phase)
			continue
		}
		fmt.Fprintf(a.out, "\n%s %s\n", phaseMarker(outcome.Success, false), phase)
		if !outcome.Success {
			fmt.Fprintf(a.out, "  error [%s]: %s\n", outcome.ErrorCode, outcome.Error)
			continue
		}
	}

	if sel, ok := state.BatchSelection(); ok {
		a.renderAllocation(sel)
	}
	if comp, ok := state.Compliance(); ok {
		a.renderCompliance(comp)
	}
	if cost, ok := state.CostCalculation(); ok {
		a.renderCost(cost)
	}
	if opt, ok := state.Optimization(); ok {
		a.renderOptimization(opt)
	}
	if rep, ok := state.Report(); ok {
		fmt.Fprintf(a.out, "\nReport %s saved: %s\n", rep.ReportID, rep.Summary)
	}
	fmt.Fprintln(a.out)
}

func (a *ReportAdapter) renderAllocation(sel workflow.BatchSelectionResult) {
	alloc := sel.Allocation
	fmt.Fprintf(a.out, "\nAllocation (%s): %.2f of %.2f\n", alloc.Status, alloc.TotalAllocated, alloc.RequiredQty)
	if alloc.Shortfall > 0 {
		fmt.Fprintf(a.out, "  shortfall: %.2f\n", alloc.Shortfall)
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  RANK\tBATCH\tQTY\tWARNINGS")
	for _, line := range alloc.Lines {
		warnings := ""
		for i, warn := range line.Warnings {
			if i > 0 {
				warnings += "; "
			}
			warnings += warn
		}
		fmt.Fprintf(w, "  %d\t%s\t%.2f\t%s\n", line.FEFORank, line.BatchID, line.AllocatedQty, warnings)
	}
	w.Flush()
}

func (a *ReportAdapter) renderCompliance(comp workflow.ComplianceResult) {
	if !comp.SpecFound {
		fmt.Fprintln(a.out, "\nCompliance: no technical data sheet on file (informational only)")
	} else if comp.Blend.Compliant {
		fmt.Fprintf(a.out, "\nCompliance (%s): %s\n", comp.SpecName, color.New(color.FgGreen).Sprint("PASS"))
	} else {
		fmt.Fprintf(a.out, "\nCompliance (%s): %s\n", comp.SpecName, color.New(color.FgRed).Sprint("FAIL"))
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  PARAM\tBLEND AVG\tSTATUS")
	for param, avg := range comp.Blend.WeightedAverages {
		status := ""
		if pr, ok := comp.Blend.ParameterResults[param]; ok {
			status = string(pr.Status)
		}
		fmt.Fprintf(w, "  %s\t%.4f\t%s\n", param, avg, status)
	}
	// Constrained parameters no portion reported never show an average.
	for param, pr := range comp.Blend.ParameterResults {
		if _, reported := comp.Blend.WeightedAverages[param]; !reported {
			fmt.Fprintf(w, "  %s\t-\t%s\n", param, pr.Status)
		}
	}
	w.Flush()
}

func (a *ReportAdapter) renderCost(cost workflow.CostResult) {
	c := cost.Cost
	fmt.Fprintf(a.out, "\nCost: %s %s", c.TotalCost.StringFixed(2), c.Currency)
	if c.OverheadCost.IsPositive() {
		fmt.Fprintf(a.out, " (materials %s + overhead %s)", c.RawMaterialCost.StringFixed(2), c.OverheadCost.StringFixed(2))
	}
	fmt.Fprintln(a.out)
	if c.CostPerUnit.IsPositive() {
		fmt.Fprintf(a.out, "  per unit: %s %s\n", c.CostPerUnit.StringFixed(2), c.Currency)
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  BATCH\tQTY\tUNIT PRICE\tAMOUNT\tSOURCE")
	for _, b := range c.PerBatch {
		fmt.Fprintf(w, "  %s\t%.2f\t%s\t%s\t%s\n", b.BatchID, b.Qty, b.UnitPrice.StringFixed(2), b.Amount.StringFixed(2), b.Source)
	}
	w.Flush()

	for _, warn := range c.Warnings {
		fmt.Fprintf(a.out, "  %s %s\n", color.New(color.FgYellow).Sprint("!"), warn)
	}
}

func (a *ReportAdapter) renderOptimization(opt workflow.OptimizationResult) {
	fmt.Fprintf(a.out, "\nOptimization: cheapest-first would cost %s (potential saving %s)\n", opt.CostAscTotal, opt.PotentialSaving)
	for _, rec := range opt.Recommendations {
		fmt.Fprintf(a.out, "  - %s\n", rec)
	}
}

// RenderRecord prints one persisted workflow report.
func (a *ReportAdapter) RenderRecord(record *secondary.ReportRecord) {
	fmt.Fprintf(a.out, "\nReport:   %s\n", record.WorkflowID)
	fmt.Fprintf(a.out, "Item:     %s\n", record.ItemCode)
	if record.Warehouse != "" {
		fmt.Fprintf(a.out, "Warehouse: %s\n", record.Warehouse)
	}
	fmt.Fprintf(a.out, "Status:   %s\n", statusLabel(workflow.Status(record.Status)))
	fmt.Fprintf(a.out, "Allocation: %s (%.2f of %.2f, shortfall %.2f)\n",
		record.AllocStatus, record.TotalAllocated, record.RequiredQty, record.Shortfall)
	if record.Compliant != nil {
		if *record.Compliant {
			fmt.Fprintf(a.out, "Compliance: %s\n", color.New(color.FgGreen).Sprint("PASS"))
		} else {
			fmt.Fprintf(a.out, "Compliance: %s\n", color.New(color.FgRed).Sprint("FAIL"))
		}
	}
	if record.TotalCost != "" {
		fmt.Fprintf(a.out, "Cost:     %s %s\n", record.TotalCost, record.Currency)
	}
	if record.Summary != "" {
		fmt.Fprintf(a.out, "Summary:  %s\n", record.Summary)
	}
	fmt.Fprintf(a.out, "Created:  %s\n\n", record.CreatedAt)
}

// RenderRecordList prints a compact table of persisted reports.
func (a *ReportAdapter) RenderRecordList(records []*secondary.ReportRecord) {
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No reports found")
		return
	}

	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WORKFLOW\tITEM\tSTATUS\tALLOC\tCOST\tCREATED")
	for _, r := range records {
		cost := r.TotalCost
		if cost != "" && r.Currency != "" {
			cost += " " + r.Currency
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.WorkflowID, r.ItemCode, r.Status, r.AllocStatus, cost, r.CreatedAt)
	}
	w.Flush()
}

func statusLabel(status workflow.Status) string {
	switch status {
	case workflow.StatusCompleted:
		return color.New(color.FgGreen).Sprint(string(status))
	case workflow.StatusFailed:
		return color.New(color.FgRed).Sprint(string(status))
	default:
		return string(status)
	}
}

func phaseMarker(success, pending bool) string {
	if pending {
		return "·"
	}
	if success {
		return color.New(color.FgGreen).Sprint("✓")
	}
	return color.New(color.FgRed).Sprint("✗")
}
