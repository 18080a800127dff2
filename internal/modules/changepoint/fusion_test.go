package changepoint

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronax-dev/chronax/internal/domain"
)

func candidatesAt(offsets ...time.Duration) []domain.ChangePoint {
	out := make([]domain.ChangePoint, len(offsets))
	for i, off := range offsets {
		out[i] = domain.ChangePoint{Timestamp: statsBase.Add(off), Source: "test", Confidence: 1}
	}
	return out
}

func TestFuse_MergesNearbyChain(t *testing.T) {
	start := statsBase
	end := statsBase.Add(48 * time.Hour)

	// three candidates 30 minutes apart collapse into their mean
	fused := Fuse(candidatesAt(10*time.Hour, 10*time.Hour+30*time.Minute, 11*time.Hour),
		start, end, 30*time.Minute)

	require.Len(t, fused, 1)
	assert.Equal(t, statsBase.Add(10*time.Hour+30*time.Minute), fused[0])
}

func TestFuse_KeepsDistantPoints(t *testing.T) {
	start := statsBase
	end := statsBase.Add(48 * time.Hour)

	fused := Fuse(candidatesAt(10*time.Hour, 30*time.Hour), start, end, 30*time.Minute)

	require.Len(t, fused, 2)
	assert.True(t, fused[0].Before(fused[1]))
}

func TestFuse_DropsOutOfBoundsCandidates(t *testing.T) {
	start := statsBase
	end := statsBase.Add(10 * time.Hour)

	// start itself, a pre-start point and a post-end point are discarded;
	// the lone interior candidate survives
	fused := Fuse(candidatesAt(0, -time.Hour, 5*time.Hour, 11*time.Hour),
		start, end, 30*time.Minute)

	require.Len(t, fused, 1)
	assert.Equal(t, statsBase.Add(5*time.Hour), fused[0])
}

func TestFuse_UnsortedInput(t *testing.T) {
	start := statsBase
	end := statsBase.Add(48 * time.Hour)

	fused := Fuse(candidatesAt(30*time.Hour, 10*time.Hour, 20*time.Hour), start, end, 30*time.Minute)

	require.Len(t, fused, 3)
	for i := 1; i < len(fused); i++ {
		assert.True(t, fused[i].After(fused[i-1]))
	}
}

func TestFuse_FallbackShortSeriesNoSplit(t *testing.T) {
	fused := Fuse(nil, statsBase, statsBase.Add(4*time.Hour), 30*time.Minute)
	assert.Empty(t, fused)
}

func TestFuse_FallbackMediumSeriesMidpoint(t *testing.T) {
	fused := Fuse(nil, statsBase, statsBase.Add(12*time.Hour), 30*time.Minute)

	require.Len(t, fused, 1)
	assert.Equal(t, statsBase.Add(6*time.Hour), fused[0])
}

func TestFuse_FallbackLongSeriesThirds(t *testing.T) {
	fused := Fuse(nil, statsBase, statsBase.Add(36*time.Hour), 30*time.Minute)

	require.Len(t, fused, 2)
	assert.Equal(t, statsBase.Add(12*time.Hour), fused[0])
	assert.Equal(t, statsBase.Add(24*time.Hour), fused[1])
}

func TestFuse_DuplicateTimestampsCollapse(t *testing.T) {
	start := statsBase
	end := statsBase.Add(48 * time.Hour)

	fused := Fuse(candidatesAt(10*time.Hour, 10*time.Hour, 10*time.Hour), start, end, 0)

	assert.Len(t, fused, 1)
}
