package kpi

import (
	"encoding/json"
	"time"
)

const dateLayout = "2006-01-02"

// MetricKind is the closed set of KPI behaviors. The kind determines both
// the daily calculation and the period-aggregation rule.
type MetricKind string

const (
	// AdditiveAmount values are summed, both across component columns and
	// across days inside a bucket (production, collections).
	AdditiveAmount MetricKind = "additive_amount"

	// CumulativeCount values arrive as a month-to-date running total and
	// must be differenced day-over-day (new patients).
	CumulativeCount MetricKind = "cumulative_count"

	// RatioPair values are derived from an independent numerator and
	// denominator; buckets re-derive from component sums, never from
	// averaged daily percentages.
	RatioPair MetricKind = "ratio_pair"
)

// DailyPoint is one day's value for a metric. A nil Value means the source
// row was missing or unparseable for that date; it is never zero-by-default.
type DailyPoint struct {
	Date  time.Time
	Value *float64
}

// MarshalJSON renders the point as a plain {date, value} pair so no internal
// types leak to presentation layers.
func (p DailyPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date  string   `json:"date"`
		Value *float64 `json:"value"`
	}{p.Date.Format(dateLayout), p.Value})
}

// DailySeries is an ordered, date-ascending, date-unique sequence of points
// for one metric and one location.
type DailySeries []DailyPoint

// PeriodBucket is one weekly or monthly rollup window. Value is nil when no
// day in the window contributed data (or, for ratio pairs, when the summed
// denominator is zero).
type PeriodBucket struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Value       *float64
	DataPoints  int
}

// MarshalJSON renders the bucket with plain date strings.
func (b PeriodBucket) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		PeriodStart string   `json:"period_start"`
		PeriodEnd   string   `json:"period_end"`
		Value       *float64 `json:"value"`
		DataPoints  int      `json:"data_points"`
	}{b.PeriodStart.Format(dateLayout), b.PeriodEnd.Format(dateLayout), b.Value, b.DataPoints})
}

// KPIResult bundles every view of one KPI for one location.
type KPIResult struct {
	Kind    MetricKind     `json:"kind"`
	Daily   DailySeries    `json:"daily"`
	Weekly  []PeriodBucket `json:"weekly"`
	Monthly []PeriodBucket `json:"monthly"`
	Latest  *DailyPoint    `json:"latest"`
}

// EmptyResult is the degraded bundle returned when a KPI's source cannot be
// resolved or fetched: empty series, no buckets, nil latest.
func EmptyResult(kind MetricKind) KPIResult {
	return KPIResult{Kind: kind, Daily: DailySeries{}, Weekly: []PeriodBucket{}, Monthly: []PeriodBucket{}}
}

// Day normalizes a timestamp to midnight UTC. All core date arithmetic runs
// on normalized days so map keys and comparisons are exact.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Float returns a pointer to v. Shorthand for building optional values.
func Float(v float64) *float64 {
	return &v
}

// byDate indexes a series for pointwise lookups.
func byDate(s DailySeries) map[time.Time]*float64 {
	m := make(map[time.Time]*float64, len(s))
	for _, p := range s {
		m[p.Date] = p.Value
	}
	return m
}
