package changepoint

import (
	"math"

	"github.com/chronax-dev/chronax/internal/domain"
	"github.com/chronax-dev/chronax/pkg/formulas"
)

// factor by which a gradient must exceed its predecessor to count as
// acceleration rather than a sustained trend
const gradientAcceleration = 1.5

// GradientDetector flags windows where the first difference of the mean
// field both exceeds the 75th percentile of absolute gradients and
// accelerates past 1.5x its predecessor. The second condition filters
// steady drifts that the split test already captures.
type GradientDetector struct{}

// NewGradientDetector creates a gradient-based detector.
func NewGradientDetector() *GradientDetector {
	return &GradientDetector{}
}

// Name identifies the detector in fusion output.
func (d *GradientDetector) Name() string {
	return "gradient"
}

// Detect returns acceleration change points over the per-window means.
func (d *GradientDetector) Detect(stats []domain.WindowStat) []domain.ChangePoint {
	if len(stats) < 3 {
		return nil
	}

	gradient := formulas.Diff(meanField(stats))
	magnitudes := make([]float64, len(gradient))
	for i, g := range gradient {
		magnitudes[i] = math.Abs(g)
	}
	threshold := formulas.Percentile(magnitudes, 75)

	var points []domain.ChangePoint
	for i := 1; i < len(gradient); i++ {
		mag := magnitudes[i]
		if mag <= threshold || mag <= gradientAcceleration*magnitudes[i-1] {
			continue
		}

		confidence := 0.8
		if threshold > 0 {
			confidence = formulas.Clamp(mag/(2*threshold), 0, 1)
		}
		// gradient[i] is the jump into window i+1
		points = append(points, domain.ChangePoint{
			Timestamp:  stats[i+1].WindowStart,
			Source:     d.Name(),
			Confidence: confidence,
		})
	}
	return points
}
