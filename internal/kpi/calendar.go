package kpi

import "time"

// OperationalCalendar defines the business week: Monday through Saturday
// open, Sunday closed with Saturday fallback. There is no holiday calendar.
// All methods are pure and total over valid dates.
type OperationalCalendar struct{}

// IsOpen reports whether the business operates on d.
func (OperationalCalendar) IsOpen(d time.Time) bool {
	return d.Weekday() != time.Sunday
}

// LatestOpenOnOrBefore returns d when d is an operational day, otherwise the
// prior Saturday.
func (c OperationalCalendar) LatestOpenOnOrBefore(d time.Time) time.Time {
	d = Day(d)
	if c.IsOpen(d) {
		return d
	}
	return d.AddDate(0, 0, -1)
}

// WeekBucket returns the Monday..Sunday window containing d. The Sunday end
// is a bucketing boundary only; openness is evaluated per-day inside it.
func (OperationalCalendar) WeekBucket(d time.Time) (time.Time, time.Time) {
	d = Day(d)
	// Go's Weekday starts at Sunday=0. We want Monday to be the anchor.
	offset := int(d.Weekday()) - 1
	if offset < 0 {
		offset = 6 // Sunday belongs to the week that started the prior Monday
	}
	start := d.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// MonthBucket returns the first and last calendar day of d's month.
func (OperationalCalendar) MonthBucket(d time.Time) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}
