// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/batchalloc/internal/adapters/sqlite"
	"github.com/example/batchalloc/internal/db"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// Compile-time checks that the adapters satisfy their secondary ports.
var (
	_ secondary.InventoryRepository = (*sqlite.InventoryRepository)(nil)
	_ secondary.PricingRepository   = (*sqlite.PricingRepository)(nil)
	_ secondary.SpecRepository      = (*sqlite.SpecRepository)(nil)
	_ secondary.ReportSink          = (*sqlite.ReportRepository)(nil)
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedItem inserts a test item and returns its code.
func seedItem(t *testing.T, db *sql.DB, code, name string) string {
	t.Helper()
	if code == "" {
		code = "GLY-REF-80"
	}
	if name == "" {
		name = "Refined Glycerin 80%"
	}
	_, err := db.Exec(
		"INSERT INTO items (item_code, item_name, standard_rate, currency) VALUES (?, ?, '12.00', 'MXN')",
		code, name,
	)
	if err != nil {
		t.Fatalf("failed to seed item: %v", err)
	}
	return code
}

// seedBatch inserts a test batch and returns its ID.
func seedBatch(t *testing.T, db *sql.DB, id, itemCode, warehouse string, qty float64) string {
	t.Helper()
	if id == "" {
		id = "GLY-243112"
	}
	if itemCode == "" {
		itemCode = "GLY-REF-80"
	}
	if warehouse == "" {
		warehouse = "WH-MAIN"
	}
	_, err := db.Exec(
		"INSERT INTO batches (batch_id, item_code, warehouse, available_qty, manufacturing_date, expiry_date, unit_cost) VALUES (?, ?, ?, ?, '2024-07-29', '2026-07-29', '12.50')",
		id, itemCode, warehouse, qty,
	)
	if err != nil {
		t.Fatalf("failed to seed batch: %v", err)
	}
	return id
}

// seedQuality inserts a measured quality value for a batch.
func seedQuality(t *testing.T, db *sql.DB, batchID, param string, value float64) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO batch_quality (batch_id, param, value) VALUES (?, ?, ?)",
		batchID, param, value,
	)
	if err != nil {
		t.Fatalf("failed to seed batch quality: %v", err)
	}
}
