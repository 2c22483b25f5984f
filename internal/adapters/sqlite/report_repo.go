package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/batchalloc/internal/ports/secondary"
)

// ReportRepository implements secondary.ReportSink with SQLite.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new SQLite report repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save persists a workflow report.
// The record must have WorkflowID pre-populated by the orchestrator.
func (r *ReportRepository) Save(ctx context.Context, report *secondary.ReportRecord) error {
	if report.WorkflowID == "" {
		return fmt.Errorf("workflow ID must be pre-populated by the orchestrator")
	}

	var compliant sql.NullInt64
	if report.Compliant != nil {
		compliant = sql.NullInt64{Int64: 0, Valid: true}
		if *report.Compliant {
			compliant.Int64 = 1
		}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workflow_reports (workflow_id, item_code, warehouse, status, alloc_status, required_qty, total_allocated, shortfall, compliant, total_cost, currency, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.WorkflowID, report.ItemCode, report.Warehouse, report.Status,
		report.AllocStatus, report.RequiredQty, report.TotalAllocated,
		report.Shortfall, compliant, report.TotalCost, report.Currency,
		report.Summary,
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	return nil
}

// GetByWorkflowID retrieves one report.
func (r *ReportRepository) GetByWorkflowID(ctx context.Context, workflowID string) (*secondary.ReportRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM workflow_reports WHERE workflow_id = ?",
		workflowID,
	)

	record, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report %s not found", workflowID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return record, nil
}

// List retrieves reports matching the given filters, newest first.
func (r *ReportRepository) List(ctx context.Context, filters secondary.ReportFilters) ([]*secondary.ReportRecord, error) {
	query := "SELECT " + reportColumns + " FROM workflow_reports"
	args := []any{}
	where := ""

	if filters.ItemCode != "" {
		where = " WHERE item_code = ?"
		args = append(args, filters.ItemCode)
	}
	if filters.Status != "" {
		if where == "" {
			where = " WHERE status = ?"
		} else {
			where += " AND status = ?"
		}
		args = append(args, filters.Status)
	}
	query += where + " ORDER BY created_at DESC, workflow_id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ReportRecord
	for rows.Next() {
		record, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return records, nil
}

const reportColumns = "workflow_id, item_code, warehouse, status, alloc_status, required_qty, total_allocated, shortfall, compliant, total_cost, currency, summary, created_at"

func scanReport(row rowScanner) (*secondary.ReportRecord, error) {
	var (
		warehouse   sql.NullString
		allocStatus sql.NullString
		compliant   sql.NullInt64
		totalCost   sql.NullString
		currency    sql.NullString
		summary     sql.NullString
		createdAt   time.Time
	)

	record := &secondary.ReportRecord{}
	err := row.Scan(&record.WorkflowID, &record.ItemCode, &warehouse,
		&record.Status, &allocStatus, &record.RequiredQty,
		&record.TotalAllocated, &record.Shortfall, &compliant,
		&totalCost, &currency, &summary, &createdAt)
	if err != nil {
		return nil, err
	}

	record.Warehouse = warehouse.String
	record.AllocStatus = allocStatus.String
	if compliant.Valid {
		v := compliant.Int64 == 1
		record.Compliant = &v
	}
	record.TotalCost = totalCost.String
	record.Currency = currency.String
	record.Summary = summary.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}
