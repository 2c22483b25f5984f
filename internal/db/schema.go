package db

// SchemaSQL is the complete schema for fresh batchalloc installs.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(): if repository code references a column that
// doesn't exist here, tests fail immediately with "no such column" instead of
// drifting silently against a hand-rolled test schema.
const SchemaSQL = `
-- Item master (minimal slice: identity plus fallback rates)
CREATE TABLE IF NOT EXISTS items (
	item_code TEXT PRIMARY KEY,
	item_name TEXT NOT NULL,
	standard_rate TEXT,
	last_purchase_rate TEXT,
	valuation_rate TEXT,
	currency TEXT NOT NULL DEFAULT 'MXN',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Physical inventory lots. available_qty is already net of reservations;
-- the engine only reads stock, it never writes it back.
CREATE TABLE IF NOT EXISTS batches (
	batch_id TEXT PRIMARY KEY,
	item_code TEXT NOT NULL,
	warehouse TEXT NOT NULL,
	available_qty REAL NOT NULL DEFAULT 0,
	manufacturing_date TEXT,
	expiry_date TEXT,
	unit_cost TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (item_code) REFERENCES items(item_code) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_batches_item ON batches(item_code);
CREATE INDEX IF NOT EXISTS idx_batches_item_wh ON batches(item_code, warehouse);

-- Measured quality parameters per lot (certificate-of-analysis values)
CREATE TABLE IF NOT EXISTS batch_quality (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id TEXT NOT NULL,
	param TEXT NOT NULL,
	value REAL NOT NULL,
	UNIQUE(batch_id, param),
	FOREIGN KEY (batch_id) REFERENCES batches(batch_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_batch_quality_batch ON batch_quality(batch_id);

-- Batch-specific price entries (tier 1 of the fallback chain)
CREATE TABLE IF NOT EXISTS batch_prices (
	id TEXT PRIMARY KEY,
	item_code TEXT NOT NULL,
	batch_id TEXT NOT NULL,
	price TEXT NOT NULL,
	currency TEXT NOT NULL DEFAULT 'MXN',
	min_qty REAL NOT NULL DEFAULT 0,
	valid_from TEXT,
	valid_upto TEXT,
	FOREIGN KEY (item_code) REFERENCES items(item_code) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_batch_prices_item ON batch_prices(item_code);

-- Item-level price-list entries (tiers 2 and 3)
CREATE TABLE IF NOT EXISTS item_prices (
	id TEXT PRIMARY KEY,
	item_code TEXT NOT NULL,
	price TEXT NOT NULL,
	currency TEXT NOT NULL DEFAULT 'MXN',
	min_qty REAL NOT NULL DEFAULT 0,
	valid_from TEXT,
	valid_upto TEXT,
	FOREIGN KEY (item_code) REFERENCES items(item_code) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_item_prices_item ON item_prices(item_code);

-- Technical data sheets (one active spec per item)
CREATE TABLE IF NOT EXISTS target_specs (
	id TEXT PRIMARY KEY,
	item_code TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (item_code) REFERENCES items(item_code) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS target_spec_params (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	spec_id TEXT NOT NULL,
	param TEXT NOT NULL,
	min_value REAL,
	max_value REAL,
	UNIQUE(spec_id, param),
	FOREIGN KEY (spec_id) REFERENCES target_specs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_spec_params_spec ON target_spec_params(spec_id);

-- Persisted business record of each finished workflow
CREATE TABLE IF NOT EXISTS workflow_reports (
	workflow_id TEXT PRIMARY KEY,
	item_code TEXT NOT NULL,
	warehouse TEXT,
	status TEXT NOT NULL,
	alloc_status TEXT,
	required_qty REAL NOT NULL DEFAULT 0,
	total_allocated REAL NOT NULL DEFAULT 0,
	shortfall REAL NOT NULL DEFAULT 0,
	compliant INTEGER,
	total_cost TEXT,
	currency TEXT,
	summary TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_reports_item ON workflow_reports(item_code);
CREATE INDEX IF NOT EXISTS idx_reports_status ON workflow_reports(status);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	if _, err := db.Exec(SchemaSQL); err != nil {
		return err
	}

	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
