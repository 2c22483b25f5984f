// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/batchalloc/internal/ports/secondary"
)

// InventoryRepository implements secondary.InventoryRepository with SQLite.
type InventoryRepository struct {
	db *sql.DB
}

// NewInventoryRepository creates a new SQLite inventory repository.
func NewInventoryRepository(db *sql.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

const batchColumns = "b.batch_id, b.item_code, b.warehouse, b.available_qty, b.manufacturing_date, b.expiry_date, b.unit_cost"

// ListAvailableBatches returns the lots with stock for an item, optionally
// restricted to one warehouse.
func (r *InventoryRepository) ListAvailableBatches(ctx context.Context, itemCode, warehouse string) ([]*secondary.BatchRecord, error) {
	query := "SELECT " + batchColumns + " FROM batches b WHERE b.item_code = ? AND b.available_qty > 0"
	args := []any{itemCode}

	if warehouse != "" {
		query += " AND b.warehouse = ?"
		args = append(args, warehouse)
	}
	query += " ORDER BY b.batch_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var records []*secondary.BatchRecord
	for rows.Next() {
		record, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate batches: %w", err)
	}

	for _, record := range records {
		if err := r.loadQuality(ctx, record); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// GetBatch retrieves a single lot by ID.
func (r *InventoryRepository) GetBatch(ctx context.Context, batchID string) (*secondary.BatchRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+batchColumns+" FROM batches b WHERE b.batch_id = ?",
		batchID,
	)

	record, err := scanBatch(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("batch %s not found", batchID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get batch: %w", err)
	}

	if err := r.loadQuality(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (r *InventoryRepository) loadQuality(ctx context.Context, record *secondary.BatchRecord) error {
	rows, err := r.db.QueryContext(ctx,
		"SELECT param, value FROM batch_quality WHERE batch_id = ?",
		record.BatchID,
	)
	if err != nil {
		return fmt.Errorf("failed to load batch quality: %w", err)
	}
	defer rows.Close()

	record.QualityParameters = map[string]float64{}
	for rows.Next() {
		var param string
		var value float64
		if err := rows.Scan(&param, &value); err != nil {
			return fmt.Errorf("failed to scan batch quality: %w", err)
		}
		record.QualityParameters[param] = value
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (*secondary.BatchRecord, error) {
	var (
		mfgDate  sql.NullString
		expDate  sql.NullString
		unitCost sql.NullString
	)

	record := &secondary.BatchRecord{}
	err := row.Scan(&record.BatchID, &record.ItemCode, &record.Warehouse,
		&record.AvailableQty, &mfgDate, &expDate, &unitCost)
	if err != nil {
		return nil, err
	}

	record.ManufacturingDate = mfgDate.String
	record.ExpiryDate = expDate.String
	record.UnitCost = unitCost.String
	record.CostUnknown = !unitCost.Valid || unitCost.String == ""

	return record, nil
}
