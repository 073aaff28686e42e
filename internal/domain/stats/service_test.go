package stats

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/measurement"
)

// windowRepo is an in-memory measurement.Repository good enough for
// window queries.
type windowRepo struct {
	items []*measurement.Measurement
}

func (r *windowRepo) Create(_ context.Context, m *measurement.Measurement) error {
	r.items = append(r.items, m)
	return nil
}

func (r *windowRepo) GetByID(_ context.Context, id uuid.UUID) (*measurement.Measurement, error) {
	for _, m := range r.items {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (r *windowRepo) Update(_ context.Context, _ *measurement.Measurement) error { return nil }
func (r *windowRepo) Delete(_ context.Context, _ uuid.UUID) error                { return nil }

func (r *windowRepo) ListByUser(_ context.Context, userID uuid.UUID, _ measurement.ListFilter) ([]*measurement.Measurement, int, error) {
	out := []*measurement.Measurement{}
	for _, m := range r.items {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, len(out), nil
}

func (r *windowRepo) ListWindow(_ context.Context, userID uuid.UUID, typ measurement.Type, start, end time.Time) ([]*measurement.Measurement, error) {
	out := []*measurement.Measurement{}
	for _, m := range r.items {
		if m.UserID != userID || m.Type != typ {
			continue
		}
		if m.RecordedAt.Before(start) || !m.RecordedAt.Before(end) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

func seedGlucose(repo *windowRepo, userID uuid.UUID, value int, at time.Time) {
	repo.items = append(repo.items, &measurement.Measurement{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       measurement.TypeGlucose,
		RecordedAt: at,
		Glucose:    &measurement.GlucoseReading{Value: value},
	})
}

func TestWindowSummary_TrendAcrossAdjacentWindows(t *testing.T) {
	repo := &windowRepo{}
	svc := NewService(repo)
	uid := uuid.New()
	ref := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	// current week averages 110, the week before averages 100
	seedGlucose(repo, uid, 100, ref.AddDate(0, 0, -2))
	seedGlucose(repo, uid, 120, ref.AddDate(0, 0, -1))
	seedGlucose(repo, uid, 100, ref.AddDate(0, 0, -9))

	out, err := svc.WindowSummary(context.Background(), uid, measurement.TypeGlucose, ref, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Stats.Count != 2 || *out.Stats.Average != 110 {
		t.Errorf("expected count=2 avg=110, got count=%d avg=%v", out.Stats.Count, out.Stats.Average)
	}
	if out.Trend == nil {
		t.Fatal("expected a trend against the previous window")
	}
	if out.Trend.Percentage != 10.0 || !out.Trend.Increased {
		t.Errorf("expected {10.0 true}, got %+v", out.Trend)
	}
}

func TestWindowSummary_NoBaselineNoTrend(t *testing.T) {
	repo := &windowRepo{}
	svc := NewService(repo)
	uid := uuid.New()
	ref := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	seedGlucose(repo, uid, 100, ref.AddDate(0, 0, -1))

	out, err := svc.WindowSummary(context.Background(), uid, measurement.TypeGlucose, ref, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Trend != nil {
		t.Errorf("expected no trend without history, got %+v", out.Trend)
	}
}

func TestWindowSummary_BloodPressureChannels(t *testing.T) {
	repo := &windowRepo{}
	svc := NewService(repo)
	uid := uuid.New()
	ref := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	repo.items = append(repo.items, &measurement.Measurement{
		ID: uuid.New(), UserID: uid, Type: measurement.TypeBloodPressure,
		RecordedAt:    ref.AddDate(0, 0, -1),
		BloodPressure: &measurement.BloodPressureReading{Systolic: 120, Diastolic: 80},
	})

	out, err := svc.WindowSummary(context.Background(), uid, measurement.TypeBloodPressure, ref, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.BloodPressure == nil {
		t.Fatal("expected per-channel blood pressure summary")
	}
	if *out.BloodPressure.Diastolic.Average != 80 {
		t.Errorf("expected diastolic avg 80, got %v", *out.BloodPressure.Diastolic.Average)
	}
	if out.BloodPressure.HeartRate.Count != 0 {
		t.Errorf("expected no heart rate data, got count %d", out.BloodPressure.HeartRate.Count)
	}
}

func TestDailyChart_SevenBuckets(t *testing.T) {
	repo := &windowRepo{}
	svc := NewService(repo)
	uid := uuid.New()
	ref := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	seedGlucose(repo, uid, 100, ref.AddDate(0, 0, -3))

	chart, err := svc.DailyChart(context.Background(), uid, measurement.TypeGlucose, ref, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chart.Points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(chart.Points))
	}
	filled := 0
	for _, p := range chart.Points {
		if p.Value != nil {
			filled++
		}
	}
	if filled != 1 {
		t.Errorf("expected exactly 1 filled bucket, got %d", filled)
	}
}

func TestBuildDashboard_CardPerType(t *testing.T) {
	repo := &windowRepo{}
	svc := NewService(repo)
	uid := uuid.New()
	ref := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	seedGlucose(repo, uid, 250, ref.AddDate(0, 0, -1))

	dash, err := svc.BuildDashboard(context.Background(), uid, ref)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dash.Cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(dash.Cards))
	}

	var glucoseCard *Card
	for i := range dash.Cards {
		if dash.Cards[i].Type == measurement.TypeGlucose {
			glucoseCard = &dash.Cards[i]
		}
	}
	if glucoseCard == nil {
		t.Fatal("expected a glucose card")
	}
	if glucoseCard.Status != StatusVeryHigh {
		t.Errorf("expected very_high status, got %s", glucoseCard.Status)
	}
	if glucoseCard.Display != "250 mg/dL" {
		t.Errorf("expected display \"250 mg/dL\", got %q", glucoseCard.Display)
	}

	// types with no data render empty cards, not errors
	for _, card := range dash.Cards {
		if card.Type != measurement.TypeGlucose {
			if card.Latest != nil || card.Status != StatusNormal {
				t.Errorf("expected empty %s card, got %+v", card.Type, card)
			}
		}
	}
}
