package stats

import (
	"time"

	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/measurement"
)

// Summary holds the statistics for one scalar channel over a window.
// Nil pointers mean "no data", never zero: a caller must be able to
// tell an empty week from a week averaging zero.
type Summary struct {
	Count   int      `json:"count"`
	Average *float64 `json:"average"`
	Min     *float64 `json:"min"`
	Max     *float64 `json:"max"`
}

// BloodPressureSummary carries the three channels aggregated in
// parallel, each skipping its own missing entries.
type BloodPressureSummary struct {
	Systolic  Summary `json:"systolic"`
	Diastolic Summary `json:"diastolic"`
	HeartRate Summary `json:"heart_rate"`
}

func summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	sum, min, max := 0.0, values[0], values[0]
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	avg := sum / float64(len(values))
	return Summary{Count: len(values), Average: &avg, Min: &min, Max: &max}
}

// scalarOf extracts the representative value for trending and charting:
// glucose value, systolic for blood pressure, grams for weight. Weight
// stays in grams until formatting so rounding happens exactly once.
func scalarOf(m *measurement.Measurement) (float64, bool) {
	switch m.Type {
	case measurement.TypeGlucose:
		if m.Glucose != nil {
			return float64(m.Glucose.Value), true
		}
	case measurement.TypeBloodPressure:
		if m.BloodPressure != nil {
			return float64(m.BloodPressure.Systolic), true
		}
	case measurement.TypeWeight:
		if m.Weight != nil {
			return float64(m.Weight.Grams), true
		}
	}
	return 0, false
}

// Aggregate computes count/average/min/max of the representative scalar
// for the given type. Measurements of other types or with missing
// payloads are skipped; an empty result is Count=0 with nil stats.
func Aggregate(series []*measurement.Measurement, typ measurement.Type) Summary {
	var values []float64
	for _, m := range series {
		if m == nil || m.Type != typ {
			continue
		}
		if v, ok := scalarOf(m); ok {
			values = append(values, v)
		}
	}
	return summarize(values)
}

// AggregateBloodPressure computes the three channel summaries
// independently so a reading without heart rate still contributes its
// pressures.
func AggregateBloodPressure(series []*measurement.Measurement) BloodPressureSummary {
	var sys, dia, hr []float64
	for _, m := range series {
		if m == nil || m.Type != measurement.TypeBloodPressure || m.BloodPressure == nil {
			continue
		}
		sys = append(sys, float64(m.BloodPressure.Systolic))
		dia = append(dia, float64(m.BloodPressure.Diastolic))
		if m.BloodPressure.HeartRate != nil {
			hr = append(hr, float64(*m.BloodPressure.HeartRate))
		}
	}
	return BloodPressureSummary{
		Systolic:  summarize(sys),
		Diastolic: summarize(dia),
		HeartRate: summarize(hr),
	}
}

// DayPoint is one chart bucket. A nil Value renders as a gap, never as
// zero.
type DayPoint struct {
	Day   string   `json:"day"`
	Value *float64 `json:"value"`
}

// BucketByDay maps a series onto exactly windowDays calendar-day
// buckets ending on referenceDate, oldest first. The series arrives
// newest first, so the first measurement matching a bucket's local
// date is that day's most recent reading; days without data stay nil.
func BucketByDay(series []*measurement.Measurement, referenceDate time.Time, windowDays int) []DayPoint {
	if windowDays <= 0 {
		return []DayPoint{}
	}
	points := make([]DayPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := referenceDate.AddDate(0, 0, -i)
		p := DayPoint{Day: day.Format("2006-01-02")}
		for _, m := range series {
			if m == nil {
				continue
			}
			y1, m1, d1 := m.RecordedAt.In(referenceDate.Location()).Date()
			y2, m2, d2 := day.Date()
			if y1 == y2 && m1 == m2 && d1 == d2 {
				if v, ok := scalarOf(m); ok {
					p.Value = &v
				}
				break
			}
		}
		points = append(points, p)
	}
	return points
}
