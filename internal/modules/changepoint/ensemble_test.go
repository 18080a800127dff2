package changepoint

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronax-dev/chronax/internal/domain"
)

func TestEnsemble_TwoRegimeSeries(t *testing.T) {
	stats := twoRegimeStats(40, 20)
	seriesStart := stats[0].WindowStart
	seriesEnd := stats[len(stats)-1].WindowEnd

	ensemble := NewEnsemble(domain.DefaultGlucoseConfig(), zerolog.Nop())
	result := ensemble.Detect(context.Background(), stats, seriesStart, seriesEnd)

	// every strategy reports, even if empty
	require.Len(t, result.PerDetector, 4)
	assert.Contains(t, result.PerDetector, "split_test")
	assert.Contains(t, result.PerDetector, "clustering")
	assert.Contains(t, result.PerDetector, "gradient")
	assert.Contains(t, result.PerDetector, "phase")

	require.NotEmpty(t, result.Fused)
	boundary := statsBase.Add(20 * 30 * time.Minute)
	nearBoundary := false
	for _, ts := range result.Fused {
		if absDuration(ts.Sub(boundary)) <= 90*time.Minute {
			nearBoundary = true
		}
	}
	assert.True(t, nearBoundary, "fused set must contain a point near the regime boundary")
}

func TestEnsemble_DeterministicAcrossRuns(t *testing.T) {
	stats := twoRegimeStats(40, 20)
	seriesStart := stats[0].WindowStart
	seriesEnd := stats[len(stats)-1].WindowEnd

	ensemble := NewEnsemble(domain.DefaultGlucoseConfig(), zerolog.Nop())
	first := ensemble.Detect(context.Background(), stats, seriesStart, seriesEnd)
	second := ensemble.Detect(context.Background(), stats, seriesStart, seriesEnd)

	assert.Equal(t, first.Fused, second.Fused)
	assert.Equal(t, first.PerDetector, second.PerDetector)
}

type fixedDetector struct {
	points []domain.ChangePoint
}

func (d *fixedDetector) Name() string { return "fixed" }

func (d *fixedDetector) Detect(stats []domain.WindowStat) []domain.ChangePoint {
	return d.points
}

func TestEnsemble_MergesCandidatesSpreadAcrossWindowSpan(t *testing.T) {
	stats := twoRegimeStats(80, 40)

	// 100 minutes apart: beyond the configured 30m merge threshold but
	// within the 2h window duration, as happens when several detectors
	// fire on different boundary-straddling windows of one regime shift
	det := &fixedDetector{points: []domain.ChangePoint{
		{Timestamp: statsBase.Add(10 * time.Hour), Source: "fixed", Confidence: 1},
		{Timestamp: statsBase.Add(10*time.Hour + 100*time.Minute), Source: "fixed", Confidence: 1},
	}}
	ensemble := &Ensemble{
		cfg:       domain.DefaultGlucoseConfig(),
		detectors: []Detector{det},
		log:       zerolog.Nop(),
	}

	result := ensemble.Detect(context.Background(), stats, stats[0].WindowStart, stats[79].WindowEnd)

	require.Len(t, result.Fused, 1)
	assert.Equal(t, statsBase.Add(10*time.Hour+50*time.Minute), result.Fused[0])
}

func TestEnsemble_EmptyStatsKeepsConfiguredMergeThreshold(t *testing.T) {
	ensemble := NewEnsemble(domain.DefaultGlucoseConfig(), zerolog.Nop())
	assert.Equal(t, 30*time.Minute, ensemble.mergeRadius(nil))
}

type slowDetector struct {
	delay time.Duration
}

func (d *slowDetector) Name() string { return "slow" }

func (d *slowDetector) Detect(stats []domain.WindowStat) []domain.ChangePoint {
	time.Sleep(d.delay)
	return []domain.ChangePoint{{Timestamp: statsBase.Add(5 * time.Hour), Source: "slow", Confidence: 1}}
}

func TestEnsemble_TimedOutDetectorContributesNothing(t *testing.T) {
	cfg := domain.DefaultGlucoseConfig()
	cfg.DetectorTimeout = 50 * time.Millisecond

	ensemble := &Ensemble{
		cfg:       cfg,
		detectors: []Detector{&slowDetector{delay: 2 * time.Second}},
		log:       zerolog.Nop(),
	}

	stats := twoRegimeStats(30, 15)
	result := ensemble.Detect(context.Background(), stats, stats[0].WindowStart, stats[29].WindowEnd)

	assert.Empty(t, result.PerDetector["slow"])
	// with zero surviving candidates the duration fallback kicks in
	assert.NotEmpty(t, result.Fused)
}

func TestEnsemble_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ensemble := &Ensemble{
		cfg:       domain.DefaultGlucoseConfig(),
		detectors: []Detector{&slowDetector{delay: time.Second}},
		log:       zerolog.Nop(),
	}

	stats := twoRegimeStats(10, 5)
	start := time.Now()
	result := ensemble.Detect(ctx, stats, stats[0].WindowStart, stats[9].WindowEnd)

	assert.Less(t, time.Since(start), 500*time.Millisecond, "cancelled context must not wait for the detector")
	assert.Empty(t, result.PerDetector["slow"])
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
