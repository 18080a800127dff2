// Package domain defines the core value types shared by the analysis
// modules: series, indicator vectors, window statistics, change points,
// segments and brittleness profiles. The domain layer is pure and has no
// infrastructure dependencies.
package domain

import (
	"math"
	"time"
)

// Sample is a single timestamped measurement.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Series is an ordered physiological measurement stream. Timestamps are
// non-decreasing. A Series is treated as read-only by every analysis
// component; callers own the backing slices.
type Series struct {
	Type       SeriesType
	Timestamps []time.Time
	Values     []float64
}

// NewSeries validates raw parallel arrays and wraps them in a Series.
// Validation failures are caller bugs and surface as errors; they are
// never converted into neutral analysis results.
func NewSeries(seriesType SeriesType, timestamps []time.Time, values []float64) (Series, error) {
	if len(timestamps) != len(values) {
		return Series{}, NewValidationError("timestamps and values length mismatch: %d vs %d", len(timestamps), len(values))
	}
	if len(values) == 0 {
		return Series{}, NewValidationError("series is empty")
	}

	finite := 0
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite++
		}
	}
	if finite == 0 {
		return Series{}, NewValidationError("series contains no finite values")
	}

	for i := 1; i < len(timestamps); i++ {
		if timestamps[i].Before(timestamps[i-1]) {
			return Series{}, NewValidationError("timestamps not ordered at index %d", i)
		}
	}

	return Series{Type: seriesType, Timestamps: timestamps, Values: values}, nil
}

// Len returns the number of samples in the series.
func (s Series) Len() int {
	return len(s.Values)
}

// Start returns the timestamp of the first sample.
func (s Series) Start() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[0]
}

// End returns the timestamp of the last sample.
func (s Series) End() time.Time {
	if len(s.Timestamps) == 0 {
		return time.Time{}
	}
	return s.Timestamps[len(s.Timestamps)-1]
}

// Duration returns the time span covered by the series.
func (s Series) Duration() time.Duration {
	return s.End().Sub(s.Start())
}
