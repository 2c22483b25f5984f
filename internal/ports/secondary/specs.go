package secondary

import "context"

// SpecParameterRecord is one constrained quality parameter of a technical
// data sheet. Either bound may be nil (open).
type SpecParameterRecord struct {
	Param string
	Min   *float64
	Max   *float64
}

// SpecRecord is a technical data sheet: the target quality specification a
// blended allocation must satisfy.
type SpecRecord struct {
	ID         string
	ItemCode   string
	Name       string
	Parameters []SpecParameterRecord
}

// SpecRepository defines the secondary port for technical-data-sheet reads.
type SpecRepository interface {
	// GetByItem returns the item's target spec, or nil when the item has
	// none - an item without a TDS is validated informationally.
	GetByItem(ctx context.Context, itemCode string) (*SpecRecord, error)
}
