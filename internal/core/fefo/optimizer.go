// Package fefo contains the pure business logic for ordering inventory
// batches ahead of allocation. This is part of the Functional Core - no I/O;
// all batch data is pre-fetched by the caller.
package fefo

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/example/batchalloc/internal/core/lotcode"
)

// Mode selects the ordering strategy.
type Mode string

const (
	// ModeFEFO orders oldest/most-urgent first by golden number, then
	// manufacturing date, then expiry date.
	ModeFEFO Mode = "FEFO"
	// ModeCostAsc orders cheapest first.
	ModeCostAsc Mode = "COST_ASC"
	// ModeCostDesc orders most expensive first.
	ModeCostDesc Mode = "COST_DESC"
)

// Sort-key priority tiers for FEFO mode. A lower tier always wins over a
// higher one, regardless of raw dates: the golden number reflects true
// manufacturing order even when dates are missing or wrong.
const (
	tierGoldenNumber = 0
	tierMfgDate      = 1
	tierExpiryDate   = 2
	tierNoSignal     = 3
)

// noSignalKey sorts batches with no usable temporal signal last.
const noSignalKey = "9999-12-31"

// Batch is the optimizer's view of an inventory lot. All fields are
// pre-fetched by the caller.
type Batch struct {
	BatchID           string
	ItemCode          string
	Warehouse         string
	AvailableQty      float64
	ManufacturingDate *time.Time
	ExpiryDate        *time.Time
	UnitCost          decimal.Decimal
	CostUnknown       bool
	QualityParameters map[string]float64
}

// Options controls ordering and filtering.
type Options struct {
	Mode           Mode
	IncludeExpired bool
	NearExpiryDays int
	// Today anchors expiry checks. Callers pass the current date; tests pass
	// a fixed one.
	Today time.Time
}

// Ranked is a batch annotated with its position and ordering signals.
type Ranked struct {
	Batch      Batch
	Rank       int // 1-based position in the final ordering
	Tier       int
	SortKey    string
	Expired    bool
	NearExpiry bool
	Warnings   []string
}

// Order filters and sorts batches according to opts.
//
// Expired batches (expiry <= today) are excluded unless IncludeExpired, in
// which case they sort after all non-expired batches and carry an "EXPIRED"
// warning. Batches within NearExpiryDays of expiry are flagged and warned
// but never excluded.
func Order(batches []Batch, opts Options) []Ranked {
	today := truncateToDay(opts.Today)

	ranked := make([]Ranked, 0, len(batches))
	for _, b := range batches {
		r := annotate(b, today, opts.NearExpiryDays)
		if r.Expired && !opts.IncludeExpired {
			continue
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return less(ranked[i], ranked[j], opts.Mode)
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

func annotate(b Batch, today time.Time, nearExpiryDays int) Ranked {
	r := Ranked{Batch: b}

	if key, ok := lotcode.Parse(b.BatchID); ok {
		r.Tier = tierGoldenNumber
		r.SortKey = key.SortKey
	} else if b.ManufacturingDate != nil {
		r.Tier = tierMfgDate
		r.SortKey = b.ManufacturingDate.Format("2006-01-02")
	} else if b.ExpiryDate != nil {
		r.Tier = tierExpiryDate
		r.SortKey = b.ExpiryDate.Format("2006-01-02")
	} else {
		r.Tier = tierNoSignal
		r.SortKey = noSignalKey
	}

	if b.ExpiryDate != nil {
		expiry := truncateToDay(*b.ExpiryDate)
		if !expiry.After(today) {
			r.Expired = true
			r.Warnings = append(r.Warnings, "EXPIRED")
		} else if nearExpiryDays > 0 {
			cutoff := today.AddDate(0, 0, nearExpiryDays)
			if !expiry.After(cutoff) {
				daysLeft := int(expiry.Sub(today).Hours() / 24)
				r.NearExpiry = true
				r.Warnings = append(r.Warnings,
					fmt.Sprintf("near expiry: expires %s (%d days)", expiry.Format("2006-01-02"), daysLeft))
			}
		}
	}

	return r
}

func less(a, b Ranked, mode Mode) bool {
	// Expired batches always rank after non-expired ones.
	if a.Expired != b.Expired {
		return !a.Expired
	}

	switch mode {
	case ModeCostAsc, ModeCostDesc:
		// Unknown cost sorts to the end regardless of direction.
		if a.Batch.CostUnknown != b.Batch.CostUnknown {
			return !a.Batch.CostUnknown
		}
		if cmp := a.Batch.UnitCost.Cmp(b.Batch.UnitCost); cmp != 0 {
			if mode == ModeCostAsc {
				return cmp < 0
			}
			return cmp > 0
		}
	default: // ModeFEFO
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		if a.SortKey != b.SortKey {
			return a.SortKey < b.SortKey
		}
	}

	return a.Batch.BatchID < b.Batch.BatchID
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
