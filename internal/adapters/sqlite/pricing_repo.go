package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/batchalloc/internal/ports/secondary"
)

// PricingRepository implements secondary.PricingRepository with SQLite.
type PricingRepository struct {
	db *sql.DB
}

// NewPricingRepository creates a new SQLite pricing repository.
func NewPricingRepository(db *sql.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// ListBatchPrices returns batch-specific price entries for an item.
func (r *PricingRepository) ListBatchPrices(ctx context.Context, itemCode string) ([]*secondary.PriceRecord, error) {
	return r.listPrices(ctx,
		"SELECT id, item_code, batch_id, price, currency, min_qty, valid_from, valid_upto FROM batch_prices WHERE item_code = ? ORDER BY id",
		itemCode, true)
}

// ListItemPrices returns item-level price-list entries.
func (r *PricingRepository) ListItemPrices(ctx context.Context, itemCode string) ([]*secondary.PriceRecord, error) {
	return r.listPrices(ctx,
		"SELECT id, item_code, price, currency, min_qty, valid_from, valid_upto FROM item_prices WHERE item_code = ? ORDER BY id",
		itemCode, false)
}

func (r *PricingRepository) listPrices(ctx context.Context, query, itemCode string, withBatch bool) ([]*secondary.PriceRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, itemCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list prices: %w", err)
	}
	defer rows.Close()

	var records []*secondary.PriceRecord
	for rows.Next() {
		var (
			validFrom sql.NullString
			validUpto sql.NullString
		)
		record := &secondary.PriceRecord{}
		dest := []any{&record.ID, &record.ItemCode}
		if withBatch {
			dest = append(dest, &record.BatchID)
		}
		dest = append(dest, &record.Price, &record.Currency, &record.MinQty, &validFrom, &validUpto)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan price: %w", err)
		}
		record.ValidFrom = validFrom.String
		record.ValidUpto = validUpto.String
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate prices: %w", err)
	}

	return records, nil
}

// GetItemRates returns the item master rates, or nil when the item is unknown.
func (r *PricingRepository) GetItemRates(ctx context.Context, itemCode string) (*secondary.ItemRateRecord, error) {
	var (
		stdRate  sql.NullString
		lastRate sql.NullString
		valRate  sql.NullString
	)

	record := &secondary.ItemRateRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT item_code, item_name, standard_rate, last_purchase_rate, valuation_rate, currency FROM items WHERE item_code = ?",
		itemCode,
	).Scan(&record.ItemCode, &record.ItemName, &stdRate, &lastRate, &valRate, &record.Currency)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item rates: %w", err)
	}

	record.StandardRate = stdRate.String
	record.LastPurchaseRate = lastRate.String
	record.ValuationRate = valRate.String

	return record, nil
}
