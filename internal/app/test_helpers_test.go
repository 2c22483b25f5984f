package app

import (
	"context"

	"github.com/example/batchalloc/internal/core/workflow"
	"github.com/example/batchalloc/internal/ports/secondary"
)

// Ensure mocks implement their interfaces.
var (
	_ secondary.InventoryRepository = (*mockInventoryRepo)(nil)
	_ secondary.PricingRepository   = (*mockPricingRepo)(nil)
	_ secondary.SpecRepository      = (*mockSpecRepo)(nil)
	_ secondary.ReportSink          = (*mockReportSink)(nil)
	_ Agent                         = (*stubAgent)(nil)
)

// mockInventoryRepo implements secondary.InventoryRepository for testing.
type mockInventoryRepo struct {
	batches []*secondary.BatchRecord
	err     error
}

func (m *mockInventoryRepo) ListAvailableBatches(ctx context.Context, itemCode, warehouse string) ([]*secondary.BatchRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*secondary.BatchRecord
	for _, b := range m.batches {
		if b.ItemCode != itemCode {
			continue
		}
		if warehouse != "" && b.Warehouse != warehouse {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockInventoryRepo) GetBatch(ctx context.Context, batchID string) (*secondary.BatchRecord, error) {
	for _, b := range m.batches {
		if b.BatchID == batchID {
			return b, nil
		}
	}
	return nil, nil
}

// mockPricingRepo implements secondary.PricingRepository for testing.
type mockPricingRepo struct {
	batchPrices []*secondary.PriceRecord
	itemPrices  []*secondary.PriceRecord
	rates       *secondary.ItemRateRecord
	err         error
}

func (m *mockPricingRepo) ListBatchPrices(ctx context.Context, itemCode string) ([]*secondary.PriceRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.batchPrices, nil
}

func (m *mockPricingRepo) ListItemPrices(ctx context.Context, itemCode string) ([]*secondary.PriceRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.itemPrices, nil
}

func (m *mockPricingRepo) GetItemRates(ctx context.Context, itemCode string) (*secondary.ItemRateRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rates, nil
}

// mockSpecRepo implements secondary.SpecRepository for testing.
type mockSpecRepo struct {
	spec *secondary.SpecRecord
	err  error
}

func (m *mockSpecRepo) GetByItem(ctx context.Context, itemCode string) (*secondary.SpecRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.spec, nil
}

// mockReportSink implements secondary.ReportSink for testing.
type mockReportSink struct {
	saved   []*secondary.ReportRecord
	saveErr error
}

func (m *mockReportSink) Save(ctx context.Context, report *secondary.ReportRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, report)
	return nil
}

func (m *mockReportSink) GetByWorkflowID(ctx context.Context, workflowID string) (*secondary.ReportRecord, error) {
	for _, r := range m.saved {
		if r.WorkflowID == workflowID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReportSink) List(ctx context.Context, filters secondary.ReportFilters) ([]*secondary.ReportRecord, error) {
	return m.saved, nil
}

// stubAgent returns a canned response for orchestrator tests.
type stubAgent struct {
	name     string
	response workflow.AgentResponse
	handled  []workflow.AgentMessage
}

func (s *stubAgent) Name() string { return s.name }

func (s *stubAgent) Handle(ctx context.Context, msg workflow.AgentMessage) workflow.AgentResponse {
	s.handled = append(s.handled, msg)
	return s.response
}

func floatPtr(v float64) *float64 { return &v }
