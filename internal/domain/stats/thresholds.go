package stats

// Band holds the boundaries for one scalar channel. A reading is LOW
// below Low, VERY_HIGH above VeryHigh, HIGH above High, otherwise
// NORMAL. All comparisons against High and VeryHigh are strict, so a
// value sitting exactly on a boundary stays in the lower band.
type Band struct {
	Low       int
	NormalMin int
	NormalMax int
	High      int
	VeryHigh  int
}

// Thresholds is the full clinical reference table. Process-wide
// constant data; never mutated after init.
type Thresholds struct {
	Glucose   Band
	Systolic  Band
	Diastolic Band
	// HeartRate is informational only and never drives a status.
	HeartRate Band
}

// DefaultThresholds returns the standard reference bands: glucose in
// mg/dL, blood pressure in mmHg, heart rate in BPM.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Glucose:   Band{Low: 70, NormalMin: 70, NormalMax: 140, High: 140, VeryHigh: 200},
		Systolic:  Band{Low: 90, NormalMin: 90, NormalMax: 120, High: 140, VeryHigh: 180},
		Diastolic: Band{Low: 60, NormalMin: 60, NormalMax: 80, High: 90, VeryHigh: 120},
		HeartRate: Band{Low: 60, NormalMin: 60, NormalMax: 100, High: 100, VeryHigh: 100},
	}
}
