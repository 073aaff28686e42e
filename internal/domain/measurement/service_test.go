package measurement

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
)

// -- Mock Repository --

type mockRepo struct {
	store map[uuid.UUID]*Measurement
}

func newMockRepo() *mockRepo {
	return &mockRepo{store: make(map[uuid.UUID]*Measurement)}
}

func (m *mockRepo) Create(_ context.Context, x *Measurement) error {
	if x.ID == uuid.Nil {
		x.ID = uuid.New()
	}
	m.store[x.ID] = x
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Measurement, error) {
	x, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return x, nil
}

func (m *mockRepo) Update(_ context.Context, x *Measurement) error {
	if _, ok := m.store[x.ID]; !ok {
		return fmt.Errorf("not found")
	}
	m.store[x.ID] = x
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}

func (m *mockRepo) ListByUser(_ context.Context, userID uuid.UUID, filter ListFilter) ([]*Measurement, int, error) {
	r := []*Measurement{}
	for _, x := range m.store {
		if x.UserID != userID {
			continue
		}
		if filter.Type != "" && x.Type != filter.Type {
			continue
		}
		r = append(r, x)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].RecordedAt.After(r[j].RecordedAt) })
	return r, len(r), nil
}

func (m *mockRepo) ListWindow(_ context.Context, userID uuid.UUID, typ Type, start, end time.Time) ([]*Measurement, error) {
	r := []*Measurement{}
	for _, x := range m.store {
		if x.UserID != userID || x.Type != typ {
			continue
		}
		if x.RecordedAt.Before(start) || !x.RecordedAt.Before(end) {
			continue
		}
		r = append(r, x)
	}
	sort.Slice(r, func(i, j int) bool { return r[i].RecordedAt.After(r[j].RecordedAt) })
	return r, nil
}

func intPtr(v int) *int { return &v }

// -- Tests --

func TestCreate_Glucose(t *testing.T) {
	svc := NewService(newMockRepo())
	m := &Measurement{
		UserID:  uuid.New(),
		Type:    TypeGlucose,
		Glucose: &GlucoseReading{Value: 110},
	}
	if err := svc.Create(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID == uuid.Nil {
		t.Error("expected an assigned ID")
	}
	if m.RecordedAt.IsZero() {
		t.Error("expected RecordedAt default")
	}
}

func TestCreate_RejectsOutOfRange(t *testing.T) {
	svc := NewService(newMockRepo())
	uid := uuid.New()
	cases := []struct {
		name string
		m    *Measurement
	}{
		{"glucose too low", &Measurement{UserID: uid, Type: TypeGlucose, Glucose: &GlucoseReading{Value: 19}}},
		{"glucose too high", &Measurement{UserID: uid, Type: TypeGlucose, Glucose: &GlucoseReading{Value: 601}}},
		{"systolic too low", &Measurement{UserID: uid, Type: TypeBloodPressure, BloodPressure: &BloodPressureReading{Systolic: 69, Diastolic: 50}}},
		{"diastolic too high", &Measurement{UserID: uid, Type: TypeBloodPressure, BloodPressure: &BloodPressureReading{Systolic: 200, Diastolic: 151}}},
		{"systolic below diastolic", &Measurement{UserID: uid, Type: TypeBloodPressure, BloodPressure: &BloodPressureReading{Systolic: 80, Diastolic: 90}}},
		{"heart rate too high", &Measurement{UserID: uid, Type: TypeBloodPressure, BloodPressure: &BloodPressureReading{Systolic: 120, Diastolic: 80, HeartRate: intPtr(221)}}},
		{"weight too low", &Measurement{UserID: uid, Type: TypeWeight, Weight: &WeightReading{Grams: 999}}},
		{"weight too high", &Measurement{UserID: uid, Type: TypeWeight, Weight: &WeightReading{Grams: 300001}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tc.m); err == nil {
				t.Error("expected range error")
			}
		})
	}
}

func TestCreate_AcceptsBoundaryValues(t *testing.T) {
	svc := NewService(newMockRepo())
	uid := uuid.New()
	cases := []struct {
		name string
		m    *Measurement
	}{
		{"glucose min", &Measurement{UserID: uid, Type: TypeGlucose, Glucose: &GlucoseReading{Value: 20}}},
		{"glucose max", &Measurement{UserID: uid, Type: TypeGlucose, Glucose: &GlucoseReading{Value: 600}}},
		{"bp bounds", &Measurement{UserID: uid, Type: TypeBloodPressure, BloodPressure: &BloodPressureReading{Systolic: 250, Diastolic: 150, HeartRate: intPtr(30)}}},
		{"weight bounds", &Measurement{UserID: uid, Type: TypeWeight, Weight: &WeightReading{Grams: 300000}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tc.m); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreate_PayloadTypeMismatch(t *testing.T) {
	svc := NewService(newMockRepo())
	uid := uuid.New()
	cases := []struct {
		name string
		m    *Measurement
	}{
		{"no payload", &Measurement{UserID: uid, Type: TypeGlucose}},
		{"wrong payload", &Measurement{UserID: uid, Type: TypeGlucose, Weight: &WeightReading{Grams: 70000}}},
		{"two payloads", &Measurement{UserID: uid, Type: TypeGlucose,
			Glucose: &GlucoseReading{Value: 100}, Weight: &WeightReading{Grams: 70000}}},
		{"unknown type", &Measurement{UserID: uid, Type: "temperature", Glucose: &GlucoseReading{Value: 100}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Create(context.Background(), tc.m); err == nil {
				t.Error("expected payload error")
			}
		})
	}
}

func TestUpdate_CannotChangeTypeOrOwner(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	owner := uuid.New()
	m := &Measurement{UserID: owner, Type: TypeGlucose, Glucose: &GlucoseReading{Value: 100}}
	if err := svc.Create(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	note := "after breakfast"
	updated, err := svc.Update(context.Background(), m.ID, UpdateInput{
		Note:    &note,
		Glucose: &GlucoseReading{Value: 145},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Glucose.Value != 145 || updated.Note != "after breakfast" {
		t.Error("expected fields to update")
	}
	if updated.Type != TypeGlucose || updated.UserID != owner {
		t.Error("type and owner must be immutable")
	}

	// swapping in a different payload kind trips the type check
	if _, err := svc.Update(context.Background(), m.ID, UpdateInput{
		Weight: &WeightReading{Grams: 70000},
	}); err == nil {
		t.Error("expected payload mismatch error")
	}
}

func TestListWindow_HalfOpenAndDescending(t *testing.T) {
	repo := newMockRepo()
	uid := uuid.New()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, v := range []int{100, 110, 120, 130} {
		repo.store[uuid.New()] = &Measurement{
			ID: uuid.New(), UserID: uid, Type: TypeGlucose,
			RecordedAt: base.AddDate(0, 0, i),
			Glucose:    &GlucoseReading{Value: v},
		}
	}

	// window [day1, day3): includes days 1 and 2, excludes 0 and 3
	got, err := repo.ListWindow(context.Background(), uid, TypeGlucose,
		base.AddDate(0, 0, 1), base.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(got))
	}
	if !got[0].RecordedAt.After(got[1].RecordedAt) {
		t.Error("expected newest first")
	}

	empty, err := repo.ListWindow(context.Background(), uid, TypeWeight, base, base.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty == nil {
		t.Error("expected empty slice, not nil")
	}
}
