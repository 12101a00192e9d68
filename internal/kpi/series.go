package kpi

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"practice-kpi/internal/sheets"
)

// MergeRule controls how rows sharing one date combine into a single point.
type MergeRule string

const (
	// MergeSum adds same-day rows together (amounts, per-visit counts).
	MergeSum MergeRule = "sum"
	// MergeLast keeps the last same-day row (cumulative counters are
	// already running totals and must not be summed across duplicates).
	MergeLast MergeRule = "last"
)

// BuildSeries converts a raw table into a clean daily series for one value
// column. Rows with an unparseable date or a non-finite value are dropped
// silently; an empty or nil table yields an empty series, not an error.
func BuildSeries(table *sheets.Table, dateColumn, valueColumn string, merge MergeRule) DailySeries {
	if table == nil || len(table.Rows) == 0 {
		return DailySeries{}
	}

	totals := make(map[time.Time]float64)
	for _, row := range table.Rows {
		day, ok := parseDay(row[dateColumn])
		if !ok {
			continue
		}
		value, ok := coerceNumeric(row[valueColumn])
		if !ok {
			continue
		}

		if merge == MergeLast {
			totals[day] = value
		} else {
			totals[day] += value
		}
	}

	series := make(DailySeries, 0, len(totals))
	for day, value := range totals {
		series = append(series, DailyPoint{Date: day, Value: Float(value)})
	}

	slices.SortFunc(series, func(a, b DailyPoint) int {
		return a.Date.Compare(b.Date)
	})

	return series
}

var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// parseDay parses a raw cell into a normalized calendar day.
func parseDay(raw any) (time.Time, bool) {
	s, ok := raw.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// coerceNumeric converts a noisy spreadsheet cell into a finite float.
// Handles currency symbols, thousands separators, trailing percent signs,
// and accounting-style parenthesized negatives like "(50)".
func coerceNumeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return finite(v)
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}

		negative := false
		if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
			negative = true
			s = s[1 : len(s)-1]
		}

		replacer := strings.NewReplacer("$", "", ",", "", "%", "", " ", "")
		s = replacer.Replace(s)

		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		if negative {
			f = -f
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
