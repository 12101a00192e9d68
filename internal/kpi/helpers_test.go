package kpi

import (
	"math"
	"time"
)

func d(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func pt(year int, month time.Month, day int, v float64) DailyPoint {
	return DailyPoint{Date: d(year, month, day), Value: Float(v)}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
