package stats

import (
	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/measurement"
)

// Status is the clinical band a reading falls into.
type Status string

const (
	StatusNormal   Status = "normal"
	StatusLow      Status = "low"
	StatusHigh     Status = "high"
	StatusVeryHigh Status = "very_high"
)

// classifyScalar places a single value into its band. High and VeryHigh
// are strict greater-than, so 140 with High=140 is still normal.
func classifyScalar(v int, b Band) Status {
	switch {
	case v > b.VeryHigh:
		return StatusVeryHigh
	case v > b.High:
		return StatusHigh
	case v < b.Low:
		return StatusLow
	default:
		return StatusNormal
	}
}

// Classify maps a measurement to its status. Weight carries no clinical
// bands and is always normal, as is any measurement whose payload is
// missing; classification never fails.
func Classify(t Thresholds, m *measurement.Measurement) Status {
	if m == nil {
		return StatusNormal
	}
	switch m.Type {
	case measurement.TypeGlucose:
		if m.Glucose == nil {
			return StatusNormal
		}
		return classifyScalar(m.Glucose.Value, t.Glucose)
	case measurement.TypeBloodPressure:
		if m.BloodPressure == nil {
			return StatusNormal
		}
		return classifyBloodPressure(t, m.BloodPressure)
	}
	return StatusNormal
}

// classifyBloodPressure combines the two channels with OR at each tier:
// one abnormal channel is enough to elevate the status. Heart rate is
// informational and never considered.
func classifyBloodPressure(t Thresholds, bp *measurement.BloodPressureReading) Status {
	sys := classifyScalar(bp.Systolic, t.Systolic)
	dia := classifyScalar(bp.Diastolic, t.Diastolic)
	if sys == StatusVeryHigh || dia == StatusVeryHigh {
		return StatusVeryHigh
	}
	if sys == StatusHigh || dia == StatusHigh {
		return StatusHigh
	}
	if sys == StatusLow || dia == StatusLow {
		return StatusLow
	}
	return StatusNormal
}
