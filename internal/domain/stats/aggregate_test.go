package stats

import (
	"testing"
	"time"

	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/measurement"
)

func intPtr(v int) *int { return &v }

func glucoseAt(v int, at time.Time) *measurement.Measurement {
	m := glucoseReading(v)
	m.RecordedAt = at
	return m
}

func TestAggregate_EmptySeries(t *testing.T) {
	got := Aggregate(nil, measurement.TypeGlucose)
	if got.Count != 0 {
		t.Errorf("expected count 0, got %d", got.Count)
	}
	if got.Average != nil || got.Min != nil || got.Max != nil {
		t.Error("expected nil average/min/max for empty series, not zero")
	}
}

func TestAggregate_Glucose(t *testing.T) {
	series := []*measurement.Measurement{
		glucoseReading(100), glucoseReading(120), glucoseReading(140),
	}
	got := Aggregate(series, measurement.TypeGlucose)
	if got.Count != 3 {
		t.Fatalf("expected count 3, got %d", got.Count)
	}
	if *got.Average != 120 || *got.Min != 100 || *got.Max != 140 {
		t.Errorf("expected avg=120 min=100 max=140, got avg=%v min=%v max=%v",
			*got.Average, *got.Min, *got.Max)
	}
}

func TestAggregate_SkipsOtherTypesAndMissingPayloads(t *testing.T) {
	series := []*measurement.Measurement{
		glucoseReading(100),
		{Type: measurement.TypeGlucose}, // no payload
		{Type: measurement.TypeWeight, Weight: &measurement.WeightReading{Grams: 70000}},
		glucoseReading(120),
	}
	got := Aggregate(series, measurement.TypeGlucose)
	if got.Count != 2 {
		t.Fatalf("expected count 2, got %d", got.Count)
	}
	if *got.Average != 110 {
		t.Errorf("expected avg 110, got %v", *got.Average)
	}
}

func TestAggregate_WeightStaysInGrams(t *testing.T) {
	series := []*measurement.Measurement{
		{Type: measurement.TypeWeight, Weight: &measurement.WeightReading{Grams: 78500}},
		{Type: measurement.TypeWeight, Weight: &measurement.WeightReading{Grams: 79500}},
	}
	got := Aggregate(series, measurement.TypeWeight)
	if *got.Average != 79000 {
		t.Errorf("expected gram average 79000, got %v", *got.Average)
	}
	if s := FormatWeightGrams(*got.Average); s != "79.0 kg" {
		t.Errorf("expected \"79.0 kg\", got %q", s)
	}
}

func TestAggregateBloodPressure_IndependentChannels(t *testing.T) {
	series := []*measurement.Measurement{
		{Type: measurement.TypeBloodPressure, BloodPressure: &measurement.BloodPressureReading{
			Systolic: 120, Diastolic: 80, HeartRate: intPtr(70)}},
		{Type: measurement.TypeBloodPressure, BloodPressure: &measurement.BloodPressureReading{
			Systolic: 140, Diastolic: 90}}, // no heart rate
	}
	got := AggregateBloodPressure(series)
	if *got.Systolic.Average != 130 || *got.Diastolic.Average != 85 {
		t.Errorf("unexpected pressure averages: sys=%v dia=%v",
			*got.Systolic.Average, *got.Diastolic.Average)
	}
	if got.HeartRate.Count != 1 || *got.HeartRate.Average != 70 {
		t.Errorf("heart rate should skip missing entries: count=%d", got.HeartRate.Count)
	}
}

func TestBucketByDay_GapsStayNil(t *testing.T) {
	ref := time.Date(2026, 3, 7, 15, 0, 0, 0, time.UTC)
	// 7-day window covering March 1-7; readings on days 1, 3 and 7
	series := []*measurement.Measurement{
		glucoseAt(130, time.Date(2026, 3, 7, 9, 0, 0, 0, time.UTC)),
		glucoseAt(120, time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)),
		glucoseAt(110, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)),
	}
	points := BucketByDay(series, ref, 7)
	if len(points) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(points))
	}
	if points[0].Day != "2026-03-01" || points[6].Day != "2026-03-07" {
		t.Errorf("expected oldest-first ordering, got %s..%s", points[0].Day, points[6].Day)
	}
	wantValues := []*float64{f(110), nil, f(120), nil, nil, nil, f(130)}
	for i, want := range wantValues {
		got := points[i].Value
		switch {
		case want == nil && got != nil:
			t.Errorf("bucket %d (%s): expected gap, got %v", i, points[i].Day, *got)
		case want != nil && got == nil:
			t.Errorf("bucket %d (%s): expected %v, got gap", i, points[i].Day, *want)
		case want != nil && got != nil && *want != *got:
			t.Errorf("bucket %d (%s): expected %v, got %v", i, points[i].Day, *want, *got)
		}
	}
}

func f(v float64) *float64 { return &v }

func TestBucketByDay_MostRecentReadingPerDay(t *testing.T) {
	ref := time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC)
	// series arrives newest first; two readings on March 7
	series := []*measurement.Measurement{
		glucoseAt(150, time.Date(2026, 3, 7, 20, 0, 0, 0, time.UTC)),
		glucoseAt(100, time.Date(2026, 3, 7, 8, 0, 0, 0, time.UTC)),
	}
	points := BucketByDay(series, ref, 1)
	if len(points) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(points))
	}
	if points[0].Value == nil || *points[0].Value != 150 {
		t.Errorf("expected the day's most recent reading (150), got %v", points[0].Value)
	}
}

func TestBucketByDay_EmptyWindow(t *testing.T) {
	points := BucketByDay(nil, time.Now(), 0)
	if len(points) != 0 {
		t.Errorf("expected no buckets for zero-day window, got %d", len(points))
	}
}
