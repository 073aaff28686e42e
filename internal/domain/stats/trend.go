package stats

import (
	"math"

	"github.com/Sam4000133/HealthTrack-sub000/internal/domain/measurement"
)

// Trend describes the change between two equal-length windows.
// Percentage is the magnitude of the change; Increased carries the
// direction. Equal averages yield {0.0, false}.
type Trend struct {
	Percentage float64 `json:"percentage"`
	Increased  bool    `json:"increased"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// CompareTrend compares the current window's average against the
// previous window's for the representative scalar (systolic for blood
// pressure). Returns nil when either window has no usable readings or
// the previous average is zero; absence is not an error, just a new
// user without history.
func CompareTrend(current, previous []*measurement.Measurement, typ measurement.Type) *Trend {
	cur := Aggregate(current, typ)
	prev := Aggregate(previous, typ)
	if cur.Count == 0 || prev.Count == 0 {
		return nil
	}
	if *prev.Average == 0 {
		return nil
	}
	change := (*cur.Average - *prev.Average) / *prev.Average * 100
	return &Trend{
		Percentage: round1(math.Abs(change)),
		Increased:  *cur.Average > *prev.Average,
	}
}
