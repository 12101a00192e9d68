package kpi

import (
	"testing"
	"time"
)

func TestCalculateDaily_AdditiveProduction(t *testing.T) {
	// production + adjustments + write-offs, three consecutive days
	components := map[string]DailySeries{
		"production": {
			pt(2025, time.September, 15, 5000),
			pt(2025, time.September, 16, 5200),
			pt(2025, time.September, 17, 5100),
		},
		"adjustments": {
			pt(2025, time.September, 15, 100),
			pt(2025, time.September, 16, 0),
			pt(2025, time.September, 17, 50),
		},
		"writeoffs": {
			pt(2025, time.September, 15, -50),
			pt(2025, time.September, 16, -100),
			pt(2025, time.September, 17, -75),
		},
	}

	daily := CalculateDaily(AdditiveAmount, components)
	want := []float64{5050, 5100, 5075}
	if len(daily) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(daily))
	}
	for i, w := range want {
		if !almostEqual(*daily[i].Value, w) {
			t.Errorf("Day %d: expected %v, got %v", i, w, *daily[i].Value)
		}
	}
}

func TestCalculateDaily_AdditiveMissingComponentIsZero(t *testing.T) {
	components := map[string]DailySeries{
		"production":  {pt(2025, time.September, 15, 5000)},
		"adjustments": {}, // no rows at all
	}

	daily := CalculateDaily(AdditiveAmount, components)
	if len(daily) != 1 {
		t.Fatalf("Expected 1 point, got %d", len(daily))
	}
	if !almostEqual(*daily[0].Value, 5000) {
		t.Errorf("Absent component should contribute 0, got %v", *daily[0].Value)
	}
}

func TestCalculateDaily_CumulativeDeltas(t *testing.T) {
	components := map[string]DailySeries{
		"new_patients_mtd": {
			pt(2025, time.September, 15, 3),
			pt(2025, time.September, 16, 5),
			pt(2025, time.September, 17, 9),
		},
	}

	daily := CalculateDaily(CumulativeCount, components)
	want := []float64{3, 2, 4}
	if len(daily) != len(want) {
		t.Fatalf("Expected %d points, got %d", len(want), len(daily))
	}
	for i, w := range want {
		if !almostEqual(*daily[i].Value, w) {
			t.Errorf("Day %d: expected %v, got %v", i, w, *daily[i].Value)
		}
	}
}

func TestCalculateDaily_CumulativeResetClipsToZero(t *testing.T) {
	// Counter rolls over at the month boundary: 28 -> 2.
	components := map[string]DailySeries{
		"new_patients_mtd": {
			pt(2025, time.August, 30, 28),
			pt(2025, time.September, 1, 2),
			pt(2025, time.September, 2, 5),
		},
	}

	daily := CalculateDaily(CumulativeCount, components)
	if len(daily) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(daily))
	}
	if *daily[1].Value != 0 {
		t.Errorf("Counter reset must clip to 0, got %v", *daily[1].Value)
	}
	if *daily[2].Value != 3 {
		t.Errorf("Delta after reset should be 3, got %v", *daily[2].Value)
	}
}

func TestCalculateDaily_RatioZeroGuard(t *testing.T) {
	components := map[string]DailySeries{
		ComponentNumerator: {
			pt(2025, time.September, 15, 900),
			pt(2025, time.September, 16, 50),
		},
		ComponentDenominator: {
			pt(2025, time.September, 15, 1000),
			pt(2025, time.September, 16, 0),
		},
	}

	daily := CalculateDaily(RatioPair, components)
	if len(daily) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(daily))
	}
	if !almostEqual(*daily[0].Value, 90) {
		t.Errorf("Expected 90%%, got %v", *daily[0].Value)
	}
	if daily[1].Value != nil {
		t.Errorf("Zero denominator must yield nil, got %v", *daily[1].Value)
	}
}

func TestCalculateDaily_RatioUnpairedDates(t *testing.T) {
	components := map[string]DailySeries{
		ComponentNumerator:   {pt(2025, time.September, 15, 10)},
		ComponentDenominator: {pt(2025, time.September, 16, 20)},
	}

	daily := CalculateDaily(RatioPair, components)
	if len(daily) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(daily))
	}
	for i, p := range daily {
		if p.Value != nil {
			t.Errorf("Point %d lacks one side and must be nil, got %v", i, *p.Value)
		}
	}
}

func TestScaleSeries(t *testing.T) {
	in := DailySeries{
		pt(2025, time.September, 15, 3),
		{Date: d(2025, time.September, 16)},
	}

	out := ScaleSeries(in, -1)
	if !almostEqual(*out[0].Value, -3) {
		t.Errorf("Expected -3, got %v", *out[0].Value)
	}
	if out[1].Value != nil {
		t.Errorf("nil values must stay nil")
	}
}
