package kpi

import "time"

// BucketFunc maps a date to its containing period window, inclusive on both
// ends. OperationalCalendar.WeekBucket and MonthBucket are the two injected
// implementations.
type BucketFunc func(time.Time) (time.Time, time.Time)

// Aggregate folds a daily series into period buckets using the rule for the
// KPI kind. RatioPair aggregation re-derives each bucket from the summed
// component series, so the components map must be supplied for that kind.
func Aggregate(kind MetricKind, daily DailySeries, components map[string]DailySeries, bucketFn BucketFunc) []PeriodBucket {
	switch kind {
	case AdditiveAmount, CumulativeCount:
		return AggregateSum(daily, bucketFn)
	case RatioPair:
		return AggregateRatio(components[ComponentNumerator], components[ComponentDenominator], bucketFn)
	default:
		panic("kpi: undefined MetricKind " + string(kind))
	}
}

// AggregateSum buckets a series by summing non-nil daily values. Interior
// buckets with zero contributing days still appear (nil value, zero data
// points) so callers can see gaps; buckets past the last available date are
// omitted entirely.
func AggregateSum(daily DailySeries, bucketFn BucketFunc) []PeriodBucket {
	if len(daily) == 0 {
		return []PeriodBucket{}
	}

	idx := byDate(daily)
	var buckets []PeriodBucket

	start, end := bucketFn(daily[0].Date)
	last := daily[len(daily)-1].Date

	for !start.After(last) {
		total := 0.0
		points := 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if v, ok := idx[d]; ok && v != nil {
				total += *v
				points++
			}
		}

		bucket := PeriodBucket{PeriodStart: start, PeriodEnd: end, DataPoints: points}
		if points > 0 {
			bucket.Value = Float(total)
		}
		buckets = append(buckets, bucket)

		start, end = bucketFn(end.AddDate(0, 0, 1))
	}

	return buckets
}

// AggregateRatio buckets a ratio pair by re-deriving each bucket from summed
// numerator and denominator values: 100 * Σnum / Σden. Daily percentages are
// never averaged, which would let days with small denominators distort the
// period rate. A bucket whose summed denominator is zero gets a nil value.
func AggregateRatio(numerator, denominator DailySeries, bucketFn BucketFunc) []PeriodBucket {
	num := byDate(numerator)
	den := byDate(denominator)

	first, last, ok := unionSpan(numerator, denominator)
	if !ok {
		return []PeriodBucket{}
	}

	var buckets []PeriodBucket
	start, end := bucketFn(first)

	for !start.After(last) {
		var numSum, denSum float64
		points := 0
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			n, nok := num[d]
			v, dok := den[d]
			// Only days with both sides available contribute; an unpaired
			// numerator or denominator would skew the re-derived rate.
			if nok && dok && n != nil && v != nil {
				numSum += *n
				denSum += *v
				points++
			}
		}

		bucket := PeriodBucket{PeriodStart: start, PeriodEnd: end, DataPoints: points}
		if points > 0 && denSum > 0 {
			bucket.Value = Float(100 * numSum / denSum)
		}
		buckets = append(buckets, bucket)

		start, end = bucketFn(end.AddDate(0, 0, 1))
	}

	return buckets
}

func unionSpan(a, b DailySeries) (time.Time, time.Time, bool) {
	var first, last time.Time
	seen := false
	for _, s := range []DailySeries{a, b} {
		if len(s) == 0 {
			continue
		}
		if !seen || s[0].Date.Before(first) {
			first = s[0].Date
		}
		if !seen || s[len(s)-1].Date.After(last) {
			last = s[len(s)-1].Date
		}
		seen = true
	}
	return first, last, seen
}
