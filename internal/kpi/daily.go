package kpi

import (
	"slices"
	"time"
)

// Component keys for RatioPair calculations.
const (
	ComponentNumerator   = "numerator"
	ComponentDenominator = "denominator"
)

// CalculateDaily computes one day's value per date for a KPI kind from
// already-resolved component series.
//
//   - AdditiveAmount: pointwise sum of every component; a date missing from
//     some components treats those as 0, but only when at least one
//     component has a value there — otherwise the date is omitted.
//   - CumulativeCount: expects a single component holding a month-to-date
//     running total; emits the day-over-day delta clipped at zero so a
//     counter reset never produces a negative daily count.
//   - RatioPair: expects "numerator" and "denominator" components; emits
//     100*num/den where the denominator is positive, and a nil value where
//     it is zero or either side is missing. NaN/Inf never escape.
func CalculateDaily(kind MetricKind, components map[string]DailySeries) DailySeries {
	switch kind {
	case AdditiveAmount:
		return sumComponents(components)
	case CumulativeCount:
		return diffCumulative(firstComponent(components))
	case RatioPair:
		return ratioDaily(components[ComponentNumerator], components[ComponentDenominator])
	default:
		panic("kpi: undefined MetricKind " + string(kind))
	}
}

// ScaleSeries multiplies every value by factor. Used to negate a component
// before an additive merge (e.g. subtracting not-reappointed counts).
func ScaleSeries(s DailySeries, factor float64) DailySeries {
	out := make(DailySeries, 0, len(s))
	for _, p := range s {
		if p.Value == nil {
			out = append(out, DailyPoint{Date: p.Date})
			continue
		}
		out = append(out, DailyPoint{Date: p.Date, Value: Float(*p.Value * factor)})
	}
	return out
}

func sumComponents(components map[string]DailySeries) DailySeries {
	indexed := make([]map[time.Time]*float64, 0, len(components))
	dates := make(map[time.Time]bool)
	for _, s := range components {
		indexed = append(indexed, byDate(s))
		for _, p := range s {
			if p.Value != nil {
				dates[p.Date] = true
			}
		}
	}

	out := make(DailySeries, 0, len(dates))
	for date := range dates {
		total := 0.0
		for _, idx := range indexed {
			if v, ok := idx[date]; ok && v != nil {
				total += *v
			}
		}
		out = append(out, DailyPoint{Date: date, Value: Float(total)})
	}

	slices.SortFunc(out, func(a, b DailyPoint) int {
		return a.Date.Compare(b.Date)
	})
	return out
}

func firstComponent(components map[string]DailySeries) DailySeries {
	for _, s := range components {
		return s
	}
	return nil
}

func diffCumulative(raw DailySeries) DailySeries {
	out := make(DailySeries, 0, len(raw))
	var prev *float64
	for _, p := range raw {
		if p.Value == nil {
			continue
		}
		if prev == nil {
			// First available day: the counter itself is the best daily
			// estimate we have (exact when the series starts with the month).
			out = append(out, DailyPoint{Date: p.Date, Value: Float(max(0, *p.Value))})
		} else {
			out = append(out, DailyPoint{Date: p.Date, Value: Float(max(0, *p.Value-*prev))})
		}
		prev = p.Value
	}
	return out
}

func ratioDaily(numerator, denominator DailySeries) DailySeries {
	num := byDate(numerator)
	den := byDate(denominator)

	dates := make(map[time.Time]bool, len(num)+len(den))
	for d := range num {
		dates[d] = true
	}
	for d := range den {
		dates[d] = true
	}

	out := make(DailySeries, 0, len(dates))
	for date := range dates {
		n, nok := num[date]
		d, dok := den[date]
		if nok && dok && n != nil && d != nil && *d > 0 {
			out = append(out, DailyPoint{Date: date, Value: Float(100 * *n / *d)})
		} else {
			out = append(out, DailyPoint{Date: date})
		}
	}

	slices.SortFunc(out, func(a, b DailyPoint) int {
		return a.Date.Compare(b.Date)
	})
	return out
}
