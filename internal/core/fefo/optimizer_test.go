package fefo

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var today = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func datePtr(y, m, d int) *time.Time {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &t
}

func ids(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Batch.BatchID
	}
	return out
}

func assertOrder(t *testing.T, ranked []Ranked, want []string) {
	t.Helper()
	got := ids(ranked)
	if len(got) != len(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	for i, r := range ranked {
		if r.Rank != i+1 {
			t.Errorf("rank[%d] = %d, want %d", i, r.Rank, i+1)
		}
	}
}

func TestOrderFEFOTierPriority(t *testing.T) {
	// Golden number always wins over raw dates, even when its decoded date
	// is newer than another batch's manufacturing date.
	batches := []Batch{
		{BatchID: "NO-SIGNAL"},
		{BatchID: "MFG-ONLY", ManufacturingDate: datePtr(2020, 1, 1)},
		{BatchID: "GOLD-251512"}, // golden number, week 15 of 2025
		{BatchID: "EXP-ONLY", ExpiryDate: datePtr(2025, 12, 1)},
	}

	ranked := Order(batches, Options{Mode: ModeFEFO, Today: today})
	assertOrder(t, ranked, []string{"GOLD-251512", "MFG-ONLY", "EXP-ONLY", "NO-SIGNAL"})

	if ranked[0].Tier != tierGoldenNumber {
		t.Errorf("golden batch tier = %d, want %d", ranked[0].Tier, tierGoldenNumber)
	}
	if ranked[3].SortKey != noSignalKey {
		t.Errorf("no-signal key = %q, want %q", ranked[3].SortKey, noSignalKey)
	}
}

func TestOrderFEFOWithinTier(t *testing.T) {
	batches := []Batch{
		{BatchID: "B-251012"}, // week 10 of 2025
		{BatchID: "A-243112"}, // week 31 of 2024
		{BatchID: "C-251011"}, // week 10 of 2025, lower sequence
	}

	ranked := Order(batches, Options{Mode: ModeFEFO, Today: today})
	assertOrder(t, ranked, []string{"A-243112", "C-251011", "B-251012"})
}

func TestOrderExcludesExpiredByDefault(t *testing.T) {
	batches := []Batch{
		{BatchID: "FRESH", ExpiryDate: datePtr(2026, 1, 1)},
		{BatchID: "STALE", ExpiryDate: datePtr(2025, 6, 1)}, // expired yesterday
		{BatchID: "TODAY", ExpiryDate: datePtr(2025, 6, 2)}, // expiry == today counts as expired
	}

	ranked := Order(batches, Options{Mode: ModeFEFO, Today: today})
	assertOrder(t, ranked, []string{"FRESH"})
}

func TestOrderIncludeExpiredRanksLast(t *testing.T) {
	batches := []Batch{
		{BatchID: "STALE", ExpiryDate: datePtr(2025, 6, 1)},
		{BatchID: "FRESH", ExpiryDate: datePtr(2026, 1, 1)},
	}

	ranked := Order(batches, Options{Mode: ModeFEFO, IncludeExpired: true, Today: today})
	assertOrder(t, ranked, []string{"FRESH", "STALE"})

	stale := ranked[1]
	if !stale.Expired {
		t.Error("expired batch not flagged")
	}
	if len(stale.Warnings) != 1 || stale.Warnings[0] != "EXPIRED" {
		t.Errorf("warnings = %v, want [EXPIRED]", stale.Warnings)
	}
}

func TestOrderNearExpiryFlaggedNotExcluded(t *testing.T) {
	batches := []Batch{
		{BatchID: "SOON", ExpiryDate: datePtr(2025, 6, 5)},
		{BatchID: "LATER", ExpiryDate: datePtr(2025, 12, 1)},
	}

	ranked := Order(batches, Options{Mode: ModeFEFO, NearExpiryDays: 7, Today: today})
	if len(ranked) != 2 {
		t.Fatalf("got %d batches, want 2", len(ranked))
	}

	var soon Ranked
	for _, r := range ranked {
		if r.Batch.BatchID == "SOON" {
			soon = r
		}
	}
	if !soon.NearExpiry {
		t.Error("near-expiry batch not flagged")
	}
	if len(soon.Warnings) == 0 {
		t.Error("near-expiry batch has no warning")
	}
	for _, r := range ranked {
		if r.Batch.BatchID == "LATER" && r.NearExpiry {
			t.Error("LATER flagged near-expiry")
		}
	}
}

func TestOrderCostModes(t *testing.T) {
	batches := []Batch{
		{BatchID: "MID", UnitCost: decimal.NewFromFloat(10.50)},
		{BatchID: "CHEAP", UnitCost: decimal.NewFromFloat(8.00)},
		{BatchID: "UNKNOWN", CostUnknown: true},
		{BatchID: "DEAR", UnitCost: decimal.NewFromFloat(14.25)},
	}

	tests := []struct {
		name string
		mode Mode
		want []string
	}{
		{"ascending keeps unknown last", ModeCostAsc, []string{"CHEAP", "MID", "DEAR", "UNKNOWN"}},
		{"descending keeps unknown last", ModeCostDesc, []string{"DEAR", "MID", "CHEAP", "UNKNOWN"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := Order(batches, Options{Mode: tt.mode, Today: today})
			assertOrder(t, ranked, tt.want)
		})
	}
}

func TestOrderStableTieBreakByBatchID(t *testing.T) {
	batches := []Batch{
		{BatchID: "B2", ManufacturingDate: datePtr(2024, 3, 1)},
		{BatchID: "B1", ManufacturingDate: datePtr(2024, 3, 1)},
	}

	ranked := Order(batches, Options{Mode: ModeFEFO, Today: today})
	assertOrder(t, ranked, []string{"B1", "B2"})
}

func TestOrderEmptyInput(t *testing.T) {
	ranked := Order(nil, Options{Mode: ModeFEFO, Today: today})
	if len(ranked) != 0 {
		t.Errorf("got %d batches, want 0", len(ranked))
	}
}
