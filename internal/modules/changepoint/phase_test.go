package changepoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronax-dev/chronax/internal/domain"
)

func complexityStats(scores []float64) []domain.WindowStat {
	out := make([]domain.WindowStat, len(scores))
	for i, s := range scores {
		start := statsBase.Add(time.Duration(i) * 30 * time.Minute)
		out[i] = domain.WindowStat{
			WindowStart:     start,
			WindowEnd:       start.Add(2 * time.Hour),
			Mean:            100,
			InRangeFraction: 1,
			ComplexityScore: s,
			SampleCount:     24,
		}
	}
	return out
}

func TestPhase_FlagsHeldTransition(t *testing.T) {
	det := NewPhaseDetector()

	points := det.Detect(complexityStats([]float64{0.1, 0.1, 0.1, 0.1, 0.7, 0.7, 0.7}))

	require.Len(t, points, 1)
	assert.Equal(t, statsBase.Add(4*30*time.Minute), points[0].Timestamp)
	assert.Equal(t, "phase", points[0].Source)
}

func TestPhase_HysteresisSuppressesFlapping(t *testing.T) {
	det := NewPhaseDetector()

	// first switch happens after a long calm hold and is flagged; the
	// following single-window phases never satisfy the 2-window hold
	points := det.Detect(complexityStats([]float64{0.1, 0.1, 0.1, 0.7, 0.1, 0.7, 0.1}))

	require.Len(t, points, 1)
	assert.Equal(t, statsBase.Add(3*30*time.Minute), points[0].Timestamp)
}

func TestPhase_StablePhaseNoPoints(t *testing.T) {
	det := NewPhaseDetector()
	assert.Empty(t, det.Detect(complexityStats([]float64{0.1, 0.1, 0.12, 0.1, 0.11})))
}

func TestPhase_AllThreePhases(t *testing.T) {
	det := NewPhaseDetector()

	points := det.Detect(complexityStats([]float64{0.1, 0.1, 0.4, 0.4, 0.7, 0.7}))

	require.Len(t, points, 2)
	assert.Equal(t, statsBase.Add(2*30*time.Minute), points[0].Timestamp)
	assert.Equal(t, statsBase.Add(4*30*time.Minute), points[1].Timestamp)
}

func TestPhase_TooFewWindows(t *testing.T) {
	det := NewPhaseDetector()
	assert.Empty(t, det.Detect(complexityStats([]float64{0.1, 0.9})))
}

func TestPhaseOf_Boundaries(t *testing.T) {
	assert.Equal(t, phaseCalm, phaseOf(0.24))
	assert.Equal(t, phaseActive, phaseOf(0.25))
	assert.Equal(t, phaseActive, phaseOf(0.54))
	assert.Equal(t, phaseTurbulent, phaseOf(0.55))
}
