// Package blend contains the pure business logic for validating the
// quantity-weighted quality of an allocated blend against a technical data
// sheet. This is part of the Functional Core - no I/O, only pure functions.
package blend

// Bounds is an optional [min, max] window for one quality parameter.
type Bounds struct {
	Min *float64
	Max *float64
}

// TargetSpec maps quality parameters to their acceptable bounds.
type TargetSpec map[string]Bounds

// ParameterStatus classifies one parameter's compliance.
type ParameterStatus string

const (
	StatusPass ParameterStatus = "PASS"
	StatusFail ParameterStatus = "FAIL"
	// StatusUnknown means no allocated batch reports the parameter.
	// Unknown is never treated as passing.
	StatusUnknown ParameterStatus = "UNKNOWN"
)

// ParameterResult is the per-parameter verdict.
type ParameterResult struct {
	Status ParameterStatus
	Actual *float64
	Min    *float64
	Max    *float64
}

// Portion is one batch's contribution to the blend: its allocated quantity
// and the quality parameters the batch reports.
type Portion struct {
	BatchID string
	Qty     float64
	Quality map[string]float64
}

// Result holds the blended quality figures and the compliance verdict.
type Result struct {
	// WeightedAverages covers every parameter reported by any portion,
	// including parameters the spec does not constrain.
	WeightedAverages map[string]float64
	// ParameterResults covers exactly the parameters the spec constrains.
	ParameterResults map[string]ParameterResult
	Compliant        bool
}

// Validate computes exact quantity-weighted averages across the portions and
// checks them against the target spec.
//
// The weighted average for a parameter is taken over the portions that
// report it. A parameter constrained by the spec but reported by no portion
// is UNKNOWN and fails the blend. Overall compliance is the conjunction
// across all constrained parameters.
//
// A zero total quantity yields an empty, non-compliant result; callers must
// guard against zero-quantity allocations upstream.
func Validate(portions []Portion, spec TargetSpec) Result {
	result := Result{
		WeightedAverages: make(map[string]float64),
		ParameterResults: make(map[string]ParameterResult),
	}

	var totalQty float64
	for _, p := range portions {
		totalQty += p.Qty
	}
	if totalQty == 0 {
		return result
	}

	// Per-parameter sums over the portions that report the parameter.
	sums := make(map[string]float64)
	qtys := make(map[string]float64)
	for _, p := range portions {
		for param, value := range p.Quality {
			sums[param] += value * p.Qty
			qtys[param] += p.Qty
		}
	}
	for param, sum := range sums {
		result.WeightedAverages[param] = sum / qtys[param]
	}

	result.Compliant = true
	for param, bounds := range spec {
		actual, reported := result.WeightedAverages[param]
		if !reported {
			result.ParameterResults[param] = ParameterResult{
				Status: StatusUnknown,
				Min:    bounds.Min,
				Max:    bounds.Max,
			}
			result.Compliant = false
			continue
		}

		status := StatusPass
		if bounds.Min != nil && actual < *bounds.Min {
			status = StatusFail
		}
		if bounds.Max != nil && actual > *bounds.Max {
			status = StatusFail
		}
		if status != StatusPass {
			result.Compliant = false
		}

		value := actual
		result.ParameterResults[param] = ParameterResult{
			Status: status,
			Actual: &value,
			Min:    bounds.Min,
			Max:    bounds.Max,
		}
	}

	return result
}
