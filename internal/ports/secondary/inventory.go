// Package secondary defines the secondary ports (driven adapters) for the
// engine: the collaborator interfaces through which it reads inventory,
// pricing, and specification data, and writes reports.
package secondary

import "context"

// BatchRecord is a physical inventory lot as the inventory collaborator
// reports it. Quantities are already net of reservations; the engine never
// writes stock back.
type BatchRecord struct {
	BatchID           string
	ItemCode          string
	Warehouse         string
	AvailableQty      float64
	ManufacturingDate string // ISO date, empty when unknown
	ExpiryDate        string // ISO date, empty when unknown
	UnitCost          string // decimal string, empty when unknown
	CostUnknown       bool
	QualityParameters map[string]float64
}

// InventoryRepository defines the secondary port for inventory reads.
type InventoryRepository interface {
	// ListAvailableBatches returns the lots with AvailableQty > 0 for an
	// item, optionally restricted to one warehouse. A batch with zero
	// availability is never returned.
	ListAvailableBatches(ctx context.Context, itemCode, warehouse string) ([]*BatchRecord, error)

	// GetBatch retrieves a single lot by ID.
	GetBatch(ctx context.Context, batchID string) (*BatchRecord, error)
}
