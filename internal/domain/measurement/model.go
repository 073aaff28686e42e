package measurement

import (
	"time"

	"github.com/google/uuid"
)

// Type discriminates which reading payload a measurement carries.
type Type string

const (
	TypeGlucose       Type = "glucose"
	TypeBloodPressure Type = "blood_pressure"
	TypeWeight        Type = "weight"
)

// Valid reports whether t is one of the known measurement types.
func (t Type) Valid() bool {
	switch t {
	case TypeGlucose, TypeBloodPressure, TypeWeight:
		return true
	}
	return false
}

// GlucoseReading is a blood glucose value in mg/dL.
type GlucoseReading struct {
	Value int `json:"value"`
}

// BloodPressureReading carries systolic and diastolic pressure in mmHg
// plus an optional heart rate in BPM.
type BloodPressureReading struct {
	Systolic  int  `json:"systolic"`
	Diastolic int  `json:"diastolic"`
	HeartRate *int `json:"heart_rate,omitempty"`
}

// WeightReading is body weight stored in grams. Display conversion to
// kilograms happens at formatting time only.
type WeightReading struct {
	Grams int `json:"grams"`
}

// Measurement is a single reading recorded by or for a patient. Exactly
// one payload pointer matching Type is set.
type Measurement struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Type       Type      `json:"type"`
	RecordedAt time.Time `json:"recorded_at"`
	Note       string    `json:"note,omitempty"`

	Glucose       *GlucoseReading       `json:"glucose,omitempty"`
	BloodPressure *BloodPressureReading `json:"blood_pressure,omitempty"`
	Weight        *WeightReading        `json:"weight,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
