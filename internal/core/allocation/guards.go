// Package allocation contains the pure business logic for covering a
// required quantity from ranked inventory batches.
// This is part of the Functional Core - no I/O, only pure functions.
package allocation

import "fmt"

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// Request describes an allocation request at the core boundary.
type Request struct {
	ItemCode    string
	RequiredQty float64
	Warehouse   string
}

// CanAllocate evaluates whether an allocation request is well-formed.
// Rule: a request must name an item and require a positive quantity.
// Violations are hard failures, not in-band allocation outcomes.
func CanAllocate(req Request) GuardResult {
	if req.ItemCode == "" {
		return GuardResult{
			Allowed: false,
			Reason:  "allocation requires an item code",
		}
	}
	if req.RequiredQty <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("required quantity must be positive, got %v", req.RequiredQty),
		}
	}
	return GuardResult{Allowed: true}
}
