package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/batchalloc/internal/ports/secondary"
)

// SpecRepository implements secondary.SpecRepository with SQLite.
type SpecRepository struct {
	db *sql.DB
}

// NewSpecRepository creates a new SQLite spec repository.
func NewSpecRepository(db *sql.DB) *SpecRepository {
	return &SpecRepository{db: db}
}

// GetByItem returns the item's technical data sheet, or nil when the item
// has none.
func (r *SpecRepository) GetByItem(ctx context.Context, itemCode string) (*secondary.SpecRecord, error) {
	record := &secondary.SpecRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, item_code, name FROM target_specs WHERE item_code = ?",
		itemCode,
	).Scan(&record.ID, &record.ItemCode, &record.Name)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get target spec: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT param, min_value, max_value FROM target_spec_params WHERE spec_id = ? ORDER BY param",
		record.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list spec parameters: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			param    string
			minValue sql.NullFloat64
			maxValue sql.NullFloat64
		)
		if err := rows.Scan(&param, &minValue, &maxValue); err != nil {
			return nil, fmt.Errorf("failed to scan spec parameter: %w", err)
		}
		p := secondary.SpecParameterRecord{Param: param}
		if minValue.Valid {
			v := minValue.Float64
			p.Min = &v
		}
		if maxValue.Valid {
			v := maxValue.Float64
			p.Max = &v
		}
		record.Parameters = append(record.Parameters, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate spec parameters: %w", err)
	}

	return record, nil
}
