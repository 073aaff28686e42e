package measurement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("measurement not found")
	ErrPayloadMismatch = errors.New("payload does not match measurement type")
)

// Plausibility bounds for incoming readings. Values outside these are
// almost certainly data-entry mistakes, not clinical extremes.
const (
	glucoseMin = 20
	glucoseMax = 600

	systolicMin = 70
	systolicMax = 250

	diastolicMin = 40
	diastolicMax = 150

	heartRateMin = 30
	heartRateMax = 220

	weightGramsMin = 1000
	weightGramsMax = 300000
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validatePayload(m *Measurement) error {
	if !m.Type.Valid() {
		return fmt.Errorf("invalid measurement type: %s", m.Type)
	}

	set := 0
	if m.Glucose != nil {
		set++
	}
	if m.BloodPressure != nil {
		set++
	}
	if m.Weight != nil {
		set++
	}
	if set != 1 {
		return ErrPayloadMismatch
	}

	switch m.Type {
	case TypeGlucose:
		if m.Glucose == nil {
			return ErrPayloadMismatch
		}
		if v := m.Glucose.Value; v < glucoseMin || v > glucoseMax {
			return fmt.Errorf("glucose %d mg/dL out of range [%d, %d]", v, glucoseMin, glucoseMax)
		}
	case TypeBloodPressure:
		bp := m.BloodPressure
		if bp == nil {
			return ErrPayloadMismatch
		}
		if bp.Systolic < systolicMin || bp.Systolic > systolicMax {
			return fmt.Errorf("systolic %d mmHg out of range [%d, %d]", bp.Systolic, systolicMin, systolicMax)
		}
		if bp.Diastolic < diastolicMin || bp.Diastolic > diastolicMax {
			return fmt.Errorf("diastolic %d mmHg out of range [%d, %d]", bp.Diastolic, diastolicMin, diastolicMax)
		}
		if bp.Systolic <= bp.Diastolic {
			return fmt.Errorf("systolic must exceed diastolic")
		}
		if hr := bp.HeartRate; hr != nil && (*hr < heartRateMin || *hr > heartRateMax) {
			return fmt.Errorf("heart rate %d BPM out of range [%d, %d]", *hr, heartRateMin, heartRateMax)
		}
	case TypeWeight:
		if m.Weight == nil {
			return ErrPayloadMismatch
		}
		if g := m.Weight.Grams; g < weightGramsMin || g > weightGramsMax {
			return fmt.Errorf("weight %d g out of range [%d, %d]", g, weightGramsMin, weightGramsMax)
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, m *Measurement) error {
	if m.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if err := validatePayload(m); err != nil {
		return err
	}
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now()
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Measurement, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateInput holds the fields a caller may change after the fact. The
// measurement's type and owner are fixed at creation.
type UpdateInput struct {
	RecordedAt    *time.Time            `json:"recorded_at"`
	Note          *string               `json:"note"`
	Glucose       *GlucoseReading       `json:"glucose"`
	BloodPressure *BloodPressureReading `json:"blood_pressure"`
	Weight        *WeightReading        `json:"weight"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*Measurement, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.RecordedAt != nil {
		m.RecordedAt = *in.RecordedAt
	}
	if in.Note != nil {
		m.Note = *in.Note
	}
	if in.Glucose != nil {
		m.Glucose = in.Glucose
	}
	if in.BloodPressure != nil {
		m.BloodPressure = in.BloodPressure
	}
	if in.Weight != nil {
		m.Weight = in.Weight
	}
	if err := validatePayload(m); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Measurement, int, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}
