package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with development fixtures.
// Uses realistic item codes, parseable lot codes, and data that exercises
// every pricing tier and both compliance outcomes.
func SeedFixtures(database *sql.DB) error {
	// Items - covering every rate-fallback combination
	items := []struct {
		code, name, stdRate, lastRate, valRate string
	}{
		{"GLY-REF-80", "Refined Glycerin 80%", "12.00", "11.40", "11.85"},
		{"SORB-SOL-70", "Sorbitol Solution 70%", "", "9.80", "9.55"},
		{"PG-USP", "Propylene Glycol USP", "", "", "14.20"},
		{"CIT-ACID-AH", "Citric Acid Anhydrous", "", "", ""},
	}
	for _, it := range items {
		if _, err := database.Exec(
			"INSERT INTO items (item_code, item_name, standard_rate, last_purchase_rate, valuation_rate, currency) VALUES (?, ?, ?, ?, ?, 'MXN')",
			it.code, it.name, it.stdRate, it.lastRate, it.valRate,
		); err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
	}

	// Batches - lot codes follow the plant conventions so the ranker can
	// read manufacturing dates straight off the IDs. One legacy folio code
	// and one unparseable code round out the tiers.
	batches := []struct {
		id, item, wh         string
		qty                  float64
		mfgDate, expDate     string
		unitCost             string
	}{
		{"GLY-243112", "GLY-REF-80", "WH-MAIN", 500, "2024-07-29", "2026-07-29", "12.50"},
		{"GLY-251012", "GLY-REF-80", "WH-MAIN", 600, "2025-03-03", "2027-03-03", "11.00"},
		{"GLY-244521", "GLY-REF-80", "WH-NORTH", 250, "2024-11-05", "2026-11-05", "12.10"},
		{"RM-0421062312", "SORB-SOL-70", "WH-MAIN", 800, "2023-02-06", "2026-02-06", "9.40"},
		{"SORB-252013", "SORB-SOL-70", "WH-MAIN", 1200, "2025-05-12", "2027-05-12", "9.75"},
		{"PG-250511", "PG-USP", "WH-MAIN", 300, "2025-01-27", "2027-01-27", ""},
		{"CIT-LEGACY-A7", "CIT-ACID-AH", "WH-MAIN", 150, "", "2025-12-31", "22.00"},
	}
	for _, b := range batches {
		if _, err := database.Exec(
			"INSERT INTO batches (batch_id, item_code, warehouse, available_qty, manufacturing_date, expiry_date, unit_cost) VALUES (?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''))",
			b.id, b.item, b.wh, b.qty, b.mfgDate, b.expDate, b.unitCost,
		); err != nil {
			return fmt.Errorf("seed batches: %w", err)
		}
	}

	// Certificate-of-analysis values per lot
	quality := []struct {
		batch, param string
		value        float64
	}{
		{"GLY-243112", "purity", 99.2},
		{"GLY-243112", "ph", 6.8},
		{"GLY-251012", "purity", 98.9},
		{"GLY-251012", "ph", 7.1},
		{"GLY-244521", "purity", 99.5},
		{"GLY-244521", "ph", 6.5},
		{"RM-0421062312", "solids", 69.8},
		{"SORB-252013", "solids", 70.3},
		{"PG-250511", "purity", 99.8},
	}
	for _, q := range quality {
		if _, err := database.Exec(
			"INSERT INTO batch_quality (batch_id, param, value) VALUES (?, ?, ?)",
			q.batch, q.param, q.value,
		); err != nil {
			return fmt.Errorf("seed batch quality: %w", err)
		}
	}

	// Batch-specific prices (tier 1)
	batchPrices := []struct {
		id, item, batch, price string
		minQty                 float64
		from, upto             string
	}{
		{"BP-001", "GLY-REF-80", "GLY-243112", "12.75", 0, "2025-01-01", "2025-12-31"},
		{"BP-002", "GLY-REF-80", "GLY-251012", "11.20", 100, "2025-01-01", ""},
	}
	for _, p := range batchPrices {
		if _, err := database.Exec(
			"INSERT INTO batch_prices (id, item_code, batch_id, price, currency, min_qty, valid_from, valid_upto) VALUES (?, ?, ?, ?, 'MXN', ?, NULLIF(?, ''), NULLIF(?, ''))",
			p.id, p.item, p.batch, p.price, p.minQty, p.from, p.upto,
		); err != nil {
			return fmt.Errorf("seed batch prices: %w", err)
		}
	}

	// Item-level price lists (tiers 2-3), including one expired entry that
	// only the any-date tier can reach
	itemPrices := []struct {
		id, item, price string
		minQty          float64
		from, upto      string
	}{
		{"IP-001", "GLY-REF-80", "12.00", 0, "2025-01-01", "2025-12-31"},
		{"IP-002", "SORB-SOL-70", "9.90", 0, "2024-01-01", "2024-12-31"},
		{"IP-003", "PG-USP", "14.50", 0, "2025-03-01", ""},
	}
	for _, p := range itemPrices {
		if _, err := database.Exec(
			"INSERT INTO item_prices (id, item_code, price, currency, min_qty, valid_from, valid_upto) VALUES (?, ?, ?, 'MXN', ?, NULLIF(?, ''), NULLIF(?, ''))",
			p.id, p.item, p.price, p.minQty, p.from, p.upto,
		); err != nil {
			return fmt.Errorf("seed item prices: %w", err)
		}
	}

	// Technical data sheets
	if _, err := database.Exec(
		"INSERT INTO target_specs (id, item_code, name) VALUES ('TDS-001', 'GLY-REF-80', 'Refined Glycerin 80% TDS')",
	); err != nil {
		return fmt.Errorf("seed target specs: %w", err)
	}
	specParams := []struct {
		param    string
		min, max sql.NullFloat64
	}{
		{"purity", sql.NullFloat64{Float64: 98.0, Valid: true}, sql.NullFloat64{}},
		{"ph", sql.NullFloat64{Float64: 6.0, Valid: true}, sql.NullFloat64{Float64: 7.5, Valid: true}},
	}
	for _, sp := range specParams {
		if _, err := database.Exec(
			"INSERT INTO target_spec_params (spec_id, param, min_value, max_value) VALUES ('TDS-001', ?, ?, ?)",
			sp.param, sp.min, sp.max,
		); err != nil {
			return fmt.Errorf("seed spec params: %w", err)
		}
	}

	return nil
}
