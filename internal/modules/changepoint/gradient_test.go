package changepoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradient_FlagsSuddenJump(t *testing.T) {
	means := levels([]int{12, 12}, []float64{100, 170})

	det := NewGradientDetector()
	points := det.Detect(makeStats(means))

	require.Len(t, points, 1)
	// the jump lands on window index 12
	assert.Equal(t, statsBase.Add(12*30*time.Minute), points[0].Timestamp)
	assert.Equal(t, "gradient", points[0].Source)
	assert.Greater(t, points[0].Confidence, 0.5)
}

func TestGradient_SteadyDriftNotFlagged(t *testing.T) {
	// constant slope: every gradient equals the threshold, none accelerates
	means := make([]float64, 20)
	for i := range means {
		means[i] = 100 + 2*float64(i)
	}

	det := NewGradientDetector()
	assert.Empty(t, det.Detect(makeStats(means)))
}

func TestGradient_FlatFieldNoPoints(t *testing.T) {
	det := NewGradientDetector()
	assert.Empty(t, det.Detect(makeStats(levels([]int{15}, []float64{100}))))
}

func TestGradient_TooFewWindows(t *testing.T) {
	det := NewGradientDetector()
	assert.Empty(t, det.Detect(makeStats([]float64{100, 170})))
}

func TestGradient_RequiresAcceleration(t *testing.T) {
	// two equal consecutive jumps: the second is large but does not
	// accelerate past 1.5x the first, so only the first is flagged
	means := []float64{100, 100, 100, 100, 100, 100, 100, 100, 140, 180, 180, 180, 180, 180, 180, 180}

	det := NewGradientDetector()
	points := det.Detect(makeStats(means))

	require.Len(t, points, 1)
	assert.Equal(t, statsBase.Add(8*30*time.Minute), points[0].Timestamp)
}
