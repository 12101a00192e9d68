package kpi

import (
	"testing"
	"time"
)

func TestAggregateSum_WeeklyTotal(t *testing.T) {
	cal := OperationalCalendar{}
	daily := DailySeries{
		pt(2025, time.September, 15, 5050),
		pt(2025, time.September, 16, 5100),
		pt(2025, time.September, 17, 5075),
	}

	buckets := AggregateSum(daily, cal.WeekBucket)
	if len(buckets) != 1 {
		t.Fatalf("Expected 1 bucket, got %d", len(buckets))
	}
	b := buckets[0]
	if !b.PeriodStart.Equal(d(2025, time.September, 15)) || !b.PeriodEnd.Equal(d(2025, time.September, 21)) {
		t.Errorf("Bucket window mismatch: [%s, %s]", b.PeriodStart.Format("2006-01-02"), b.PeriodEnd.Format("2006-01-02"))
	}
	if !almostEqual(*b.Value, 15225) {
		t.Errorf("Expected weekly total 15225, got %v", *b.Value)
	}
	if b.DataPoints != 3 {
		t.Errorf("Expected 3 data points, got %d", b.DataPoints)
	}
}

func TestAggregateSum_InteriorGapBucket(t *testing.T) {
	cal := OperationalCalendar{}
	daily := DailySeries{
		pt(2025, time.September, 15, 100), // week of Sep 15
		pt(2025, time.September, 29, 200), // week of Sep 29; week of Sep 22 has no data
	}

	buckets := AggregateSum(daily, cal.WeekBucket)
	if len(buckets) != 3 {
		t.Fatalf("Expected 3 buckets, got %d", len(buckets))
	}
	gap := buckets[1]
	if gap.Value != nil {
		t.Errorf("Interior gap bucket must have nil value, got %v", *gap.Value)
	}
	if gap.DataPoints != 0 {
		t.Errorf("Interior gap bucket must report 0 data points, got %d", gap.DataPoints)
	}
}

func TestAggregateSum_NoTrailingBuckets(t *testing.T) {
	cal := OperationalCalendar{}
	daily := DailySeries{pt(2025, time.September, 15, 100)}

	buckets := AggregateSum(daily, cal.WeekBucket)
	if len(buckets) != 1 {
		t.Fatalf("Buckets past the last date must be omitted, got %d", len(buckets))
	}
}

func TestAggregateSum_MonthBoundary(t *testing.T) {
	cal := OperationalCalendar{}
	daily := DailySeries{
		pt(2025, time.August, 30, 100),
		pt(2025, time.September, 1, 200),
	}

	buckets := AggregateSum(daily, cal.MonthBucket)
	if len(buckets) != 2 {
		t.Fatalf("Expected 2 monthly buckets, got %d", len(buckets))
	}
	if !almostEqual(*buckets[0].Value, 100) || !almostEqual(*buckets[1].Value, 200) {
		t.Errorf("Month boundary split wrong: %v, %v", *buckets[0].Value, *buckets[1].Value)
	}
	if !buckets[0].PeriodEnd.Equal(d(2025, time.August, 31)) {
		t.Errorf("August bucket should end Aug 31, got %s", buckets[0].PeriodEnd.Format("2006-01-02"))
	}
}

func TestAggregateSum_Empty(t *testing.T) {
	cal := OperationalCalendar{}
	buckets := AggregateSum(DailySeries{}, cal.WeekBucket)
	if len(buckets) != 0 {
		t.Errorf("Empty series should produce no buckets, got %d", len(buckets))
	}
}

func TestAggregateRatio_WeightedNotAveraged(t *testing.T) {
	cal := OperationalCalendar{}
	numerator := DailySeries{
		pt(2025, time.September, 15, 900),
		pt(2025, time.September, 16, 50),
	}
	denominator := DailySeries{
		pt(2025, time.September, 15, 1000),
		pt(2025, time.September, 16, 100),
	}

	buckets := AggregateRatio(numerator, denominator, cal.WeekBucket)
	if len(buckets) != 1 {
		t.Fatalf("Expected 1 bucket, got %d", len(buckets))
	}
	// 100 * (900+50) / (1000+100) = 86.36..., not the naive (90+50)/2 = 70.
	want := 100.0 * 950 / 1100
	if !almostEqual(*buckets[0].Value, want) {
		t.Errorf("Expected weighted rate %v, got %v", want, *buckets[0].Value)
	}
	if buckets[0].DataPoints != 2 {
		t.Errorf("Expected 2 contributing days, got %d", buckets[0].DataPoints)
	}
}

func TestAggregateRatio_ZeroDenominatorBucket(t *testing.T) {
	cal := OperationalCalendar{}
	numerator := DailySeries{pt(2025, time.September, 15, 10)}
	denominator := DailySeries{pt(2025, time.September, 15, 0)}

	buckets := AggregateRatio(numerator, denominator, cal.WeekBucket)
	if len(buckets) != 1 {
		t.Fatalf("Expected 1 bucket, got %d", len(buckets))
	}
	if buckets[0].Value != nil {
		t.Errorf("Zero summed denominator must yield nil, got %v", *buckets[0].Value)
	}
}

func TestAggregateRatio_UnpairedDaysExcluded(t *testing.T) {
	cal := OperationalCalendar{}
	numerator := DailySeries{
		pt(2025, time.September, 15, 900),
		pt(2025, time.September, 16, 500), // no matching denominator
	}
	denominator := DailySeries{
		pt(2025, time.September, 15, 1000),
	}

	buckets := AggregateRatio(numerator, denominator, cal.WeekBucket)
	if len(buckets) != 1 {
		t.Fatalf("Expected 1 bucket, got %d", len(buckets))
	}
	if !almostEqual(*buckets[0].Value, 90) {
		t.Errorf("Unpaired day must not contribute, expected 90, got %v", *buckets[0].Value)
	}
	if buckets[0].DataPoints != 1 {
		t.Errorf("Expected 1 contributing day, got %d", buckets[0].DataPoints)
	}
}

func TestAggregateRatio_Empty(t *testing.T) {
	cal := OperationalCalendar{}
	buckets := AggregateRatio(DailySeries{}, DailySeries{}, cal.WeekBucket)
	if len(buckets) != 0 {
		t.Errorf("Empty pair should produce no buckets, got %d", len(buckets))
	}
}
