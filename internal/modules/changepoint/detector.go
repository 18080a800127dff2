// Package changepoint implements the four-strategy change-point detection
// ensemble over window statistics: a Welch split test, feature-space
// clustering, gradient acceleration, and phase-threshold hysteresis.
// Candidates from all detectors are fused into a single ordered timestamp
// set; detectors run concurrently and a timed-out detector contributes
// zero candidates instead of failing the ensemble.
package changepoint

import (
	"github.com/chronax-dev/chronax/internal/domain"
)

// Detector is a single pure change-point detection strategy. Detect never
// fails: insufficient input yields an empty candidate list.
type Detector interface {
	Name() string
	Detect(stats []domain.WindowStat) []domain.ChangePoint
}

// meanField extracts the per-window mean, the scalar field the split and
// gradient detectors operate on.
func meanField(stats []domain.WindowStat) []float64 {
	out := make([]float64, len(stats))
	for i, w := range stats {
		out[i] = w.Mean
	}
	return out
}

// complexityField extracts the per-window composite complexity score.
func complexityField(stats []domain.WindowStat) []float64 {
	out := make([]float64, len(stats))
	for i, w := range stats {
		out[i] = w.ComplexityScore
	}
	return out
}
