package stats

import (
	"fmt"

	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/measurement"
)

// FormatValue renders a measurement's payload the way the UI shows it:
// "110 mg/dL", "120/80 mmHg, 72 BPM", "78.5 kg". Weight is stored in
// grams and divided by 1000 here, at the last step, with exactly one
// decimal.
func FormatValue(m *measurement.Measurement) string {
	if m == nil {
		return ""
	}
	switch m.Type {
	case measurement.TypeGlucose:
		if m.Glucose == nil {
			return ""
		}
		return fmt.Sprintf("%d mg/dL", m.Glucose.Value)
	case measurement.TypeBloodPressure:
		if m.BloodPressure == nil {
			return ""
		}
		s := fmt.Sprintf("%d/%d mmHg", m.BloodPressure.Systolic, m.BloodPressure.Diastolic)
		if m.BloodPressure.HeartRate != nil {
			s += fmt.Sprintf(", %d BPM", *m.BloodPressure.HeartRate)
		}
		return s
	case measurement.TypeWeight:
		if m.Weight == nil {
			return ""
		}
		return FormatWeightGrams(float64(m.Weight.Grams))
	}
	return ""
}

// FormatWeightGrams converts a gram quantity to the display string in
// kilograms with one decimal.
func FormatWeightGrams(grams float64) string {
	return fmt.Sprintf("%.1f kg", grams/1000)
}
