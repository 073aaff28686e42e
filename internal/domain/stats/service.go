package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/measurement"
)

const (
	// DefaultWindowDays is the trend window used by the dashboard.
	DefaultWindowDays = 7
	// MaxWindowDays caps caller-supplied windows.
	MaxWindowDays = 366
)

// Service fetches measurement windows and runs the pure computations
// over them. All statistics are recomputed per request, never stored.
type Service struct {
	repo       measurement.Repository
	thresholds Thresholds
}

func NewService(repo measurement.Repository) *Service {
	return &Service{repo: repo, thresholds: DefaultThresholds()}
}

// Thresholds exposes the reference table for per-row classification.
func (s *Service) Thresholds() Thresholds {
	return s.thresholds
}

// windowBounds returns the half-open [start, end) range covering the
// `days` calendar days ending on ref's local day, inclusive.
func windowBounds(ref time.Time, days int) (time.Time, time.Time) {
	y, m, d := ref.Date()
	endOfRefDay := time.Date(y, m, d, 0, 0, 0, 0, ref.Location()).AddDate(0, 0, 1)
	return endOfRefDay.AddDate(0, 0, -days), endOfRefDay
}

// fetchWindows loads the current window and the equal-length window
// immediately before it, with no overlap and no gap.
func (s *Service) fetchWindows(ctx context.Context, userID uuid.UUID, typ measurement.Type, ref time.Time, days int) (current, previous []*measurement.Measurement, err error) {
	start, end := windowBounds(ref, days)
	current, err = s.repo.ListWindow(ctx, userID, typ, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch current window: %w", err)
	}
	previous, err = s.repo.ListWindow(ctx, userID, typ, start.AddDate(0, 0, -days), start)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch previous window: %w", err)
	}
	return current, previous, nil
}

// TypeSummary is the statistics card for one measurement type.
type TypeSummary struct {
	Type          measurement.Type      `json:"type"`
	Days          int                   `json:"days"`
	Stats         Summary               `json:"stats"`
	BloodPressure *BloodPressureSummary `json:"blood_pressure,omitempty"`
	Trend         *Trend                `json:"trend,omitempty"`
}

// WindowSummary aggregates the last `days` days of readings of one type
// and compares them against the window before.
func (s *Service) WindowSummary(ctx context.Context, userID uuid.UUID, typ measurement.Type, ref time.Time, days int) (*TypeSummary, error) {
	current, previous, err := s.fetchWindows(ctx, userID, typ, ref, days)
	if err != nil {
		return nil, err
	}
	out := &TypeSummary{
		Type:  typ,
		Days:  days,
		Stats: Aggregate(current, typ),
		Trend: CompareTrend(current, previous, typ),
	}
	if typ == measurement.TypeBloodPressure {
		bp := AggregateBloodPressure(current)
		out.BloodPressure = &bp
	}
	return out, nil
}

// Chart is day-bucketed data ready for rendering.
type Chart struct {
	Type   measurement.Type `json:"type"`
	Days   int              `json:"days"`
	Points []DayPoint       `json:"points"`
}

// DailyChart buckets the last `days` days into one point per day,
// oldest first, with explicit gaps for days without readings.
func (s *Service) DailyChart(ctx context.Context, userID uuid.UUID, typ measurement.Type, ref time.Time, days int) (*Chart, error) {
	start, end := windowBounds(ref, days)
	series, err := s.repo.ListWindow(ctx, userID, typ, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch chart window: %w", err)
	}
	return &Chart{
		Type:   typ,
		Days:   days,
		Points: BucketByDay(series, ref, days),
	}, nil
}

// Card is one dashboard tile: the latest reading with its status and
// display string, plus the week-over-week trend.
type Card struct {
	Type    measurement.Type         `json:"type"`
	Latest  *measurement.Measurement `json:"latest,omitempty"`
	Status  Status                   `json:"status"`
	Display string                   `json:"display,omitempty"`
	Trend   *Trend                   `json:"trend,omitempty"`
}

// Dashboard is the per-patient overview, one card per type.
type Dashboard struct {
	UserID uuid.UUID `json:"user_id"`
	Cards  []Card    `json:"cards"`
}

// BuildDashboard assembles a card for every measurement type over the
// default window.
func (s *Service) BuildDashboard(ctx context.Context, userID uuid.UUID, ref time.Time) (*Dashboard, error) {
	types := []measurement.Type{
		measurement.TypeGlucose,
		measurement.TypeBloodPressure,
		measurement.TypeWeight,
	}
	out := &Dashboard{UserID: userID, Cards: make([]Card, 0, len(types))}
	for _, typ := range types {
		current, previous, err := s.fetchWindows(ctx, userID, typ, ref, DefaultWindowDays)
		if err != nil {
			return nil, err
		}
		card := Card{Type: typ, Status: StatusNormal}
		if len(current) > 0 {
			latest := current[0]
			card.Latest = latest
			card.Status = Classify(s.thresholds, latest)
			card.Display = FormatValue(latest)
		}
		card.Trend = CompareTrend(current, previous, typ)
		out.Cards = append(out.Cards, card)
	}
	return out, nil
}
