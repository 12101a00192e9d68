package kpi

import "time"

// Latest returns the point with the maximum date in the series. The series
// only contains dates for which source data exists, so a closed-day maximum
// is still returned as-is; closedness is informational, not a filter.
// Returns nil for an empty series.
func Latest(daily DailySeries) *DailyPoint {
	if len(daily) == 0 {
		return nil
	}
	p := daily[len(daily)-1]
	return &p
}

// CurrentFor is the strict "today's number" lookup: it resolves today to the
// most recent operational day and returns that exact point, or nil when the
// series has no data for it. It never falls back to an older or interpolated
// value.
func CurrentFor(daily DailySeries, cal OperationalCalendar, today time.Time) *DailyPoint {
	want := cal.LatestOpenOnOrBefore(today)
	for i := len(daily) - 1; i >= 0; i-- {
		if daily[i].Date.Equal(want) {
			p := daily[i]
			return &p
		}
		if daily[i].Date.Before(want) {
			break
		}
	}
	return nil
}
