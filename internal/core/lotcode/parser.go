// Package lotcode contains the pure business logic for decoding manufacturing
// lot codes ("golden numbers") embedded in batch identifiers.
// This is part of the Functional Core - no I/O, only pure functions.
package lotcode

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Format identifies which lot-code encoding a key was derived from.
type Format string

const (
	// FormatDateCoded is the modern YYWWDS encoding (6 trailing digits).
	FormatDateCoded Format = "DateCoded"
	// FormatLegacyCoded is the historical PPPPFFYYPS encoding (9-10 trailing digits).
	FormatLegacyCoded Format = "LegacyCoded"
)

// LotKey is the sortable temporal key derived from a lot code.
// It is recomputed on demand and never cached - parsing is pure and stateless.
type LotKey struct {
	Format Format
	// SortKey is zero-padded YYYYWWDS, lexicographically comparable across
	// both formats.
	SortKey string
	// ApproximateDate is the best-effort manufacturing date. Nil when the
	// encoding carries no plausible calendar position (legacy folio > 53).
	ApproximateDate *time.Time
}

var (
	// Exactly six trailing digits: YY WW D S.
	dateCodedRe = regexp.MustCompile(`(?:^|\D)(\d{2})(\d{2})(\d)(\d)$`)
	// Nine or ten trailing digits: PPPP FF YY P [S].
	legacyCodedRe = regexp.MustCompile(`(?:^|\D)(\d{4})(\d{2})(\d{2})(\d)(\d)?$`)
)

// Parse decodes the trailing digits of code into a LotKey.
// Formats are attempted in priority order: date-coded, then legacy-coded.
// Returns ok=false when neither format matches - a normal outcome, not an
// error; callers fall back to other date sources.
func Parse(code string) (LotKey, bool) {
	if key, ok := parseDateCoded(code); ok {
		return key, true
	}
	if key, ok := parseLegacyCoded(code); ok {
		return key, true
	}
	return LotKey{}, false
}

func parseDateCoded(code string) (LotKey, bool) {
	m := dateCodedRe.FindStringSubmatch(code)
	if m == nil {
		return LotKey{}, false
	}

	yy, _ := strconv.Atoi(m[1])
	week, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	seq, _ := strconv.Atoi(m[4])

	// Out-of-range week or day rejects the format entirely, letting the
	// caller fall through to the legacy encoding.
	if week < 1 || week > 52 {
		return LotKey{}, false
	}
	if day < 1 || day > 7 {
		return LotKey{}, false
	}

	year := expandYear(yy)
	date := isoWeekDate(year, week, day)

	return LotKey{
		Format:          FormatDateCoded,
		SortKey:         fmt.Sprintf("%04d%02d%d%d", year, week, day, seq),
		ApproximateDate: &date,
	}, true
}

func parseLegacyCoded(code string) (LotKey, bool) {
	m := legacyCodedRe.FindStringSubmatch(code)
	if m == nil {
		return LotKey{}, false
	}

	folio, _ := strconv.Atoi(m[2])
	yy, _ := strconv.Atoi(m[3])
	seq := 1
	if m[5] != "" {
		seq, _ = strconv.Atoi(m[5])
	}

	year := expandYear(yy)

	key := LotKey{
		Format: FormatLegacyCoded,
		// Folio-as-week heuristic: shape the key like the date-coded one so
		// both formats sort together. Day slot is fixed at 1.
		SortKey: fmt.Sprintf("%04d%02d%d%d", year, folio, 1, seq),
	}

	// The folio only yields a calendar position when it is a plausible ISO
	// week number. This is a best-effort fallback, not a guarantee.
	if folio >= 1 && folio <= 53 {
		date := isoWeekDate(year, folio, 1)
		key.ApproximateDate = &date
	}

	return key, true
}

// expandYear maps a two-digit year onto its century: 00-49 -> 2000s,
// 50-99 -> 1900s.
func expandYear(yy int) int {
	if yy >= 50 {
		return 1900 + yy
	}
	return 2000 + yy
}

// isoWeekDate returns the date of the given ISO week and weekday (1=Monday).
// ISO week 1 is the week containing January 4.
func isoWeekDate(year, week, day int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7
	}
	week1Monday := jan4.AddDate(0, 0, -(wd - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7+(day-1))
}
