package windows

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronax-dev/chronax/internal/domain"
)

func makeSeries(t *testing.T, values []float64) domain.Series {
	t.Helper()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	timestamps := make([]time.Time, len(values))
	for i := range values {
		timestamps[i] = base.Add(time.Duration(i) * 5 * time.Minute)
	}
	s, err := domain.NewSeries(domain.SeriesGlucose, timestamps, values)
	require.NoError(t, err)
	return s
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestCompute_WindowCountAndOrdering(t *testing.T) {
	engine := NewEngine(domain.DefaultGlucoseConfig(), zerolog.Nop())
	// 96 samples, window 24, step 6 -> (96-24)/6 + 1 = 13 windows
	stats, err := engine.Compute(makeSeries(t, constant(96, 100)))

	require.NoError(t, err)
	assert.Len(t, stats, 13)
	for i := 1; i < len(stats); i++ {
		assert.True(t, stats[i].WindowStart.After(stats[i-1].WindowStart),
			"window starts must be strictly increasing")
	}
	// step of 6 samples at 5-minute cadence = 30 minutes between starts
	assert.Equal(t, 30*time.Minute, stats[1].WindowStart.Sub(stats[0].WindowStart))
}

func TestCompute_ConstantWindowStats(t *testing.T) {
	engine := NewEngine(domain.DefaultGlucoseConfig(), zerolog.Nop())

	stats, err := engine.Compute(makeSeries(t, constant(48, 100)))

	require.NoError(t, err)
	require.NotEmpty(t, stats)
	for _, w := range stats {
		assert.Equal(t, 100.0, w.Mean)
		assert.Zero(t, w.CoefficientOfVariation)
		assert.Equal(t, 1.0, w.InRangeFraction)
		assert.Zero(t, w.ComplexityScore)
		assert.Equal(t, 24, w.SampleCount)
	}
}

func TestCompute_OutOfRangeFraction(t *testing.T) {
	// alternating 60 (below glucose band) and 100 (inside)
	values := make([]float64, 48)
	for i := range values {
		if i%2 == 0 {
			values[i] = 60
		} else {
			values[i] = 100
		}
	}

	engine := NewEngine(domain.DefaultGlucoseConfig(), zerolog.Nop())
	stats, err := engine.Compute(makeSeries(t, values))

	require.NoError(t, err)
	require.NotEmpty(t, stats)
	assert.InDelta(t, 0.5, stats[0].InRangeFraction, 1e-9)
}

func TestCompute_SkipsSparseWindows(t *testing.T) {
	values := constant(48, 100)
	// poison the second half with NaN so later windows fall below the
	// 5-valid-sample minimum
	for i := 26; i < 48; i++ {
		values[i] = math.NaN()
	}

	engine := NewEngine(domain.DefaultGlucoseConfig(), zerolog.Nop())
	series := domain.Series{
		Type:       domain.SeriesGlucose,
		Timestamps: makeSeries(t, constant(48, 100)).Timestamps,
		Values:     values,
	}
	stats, err := engine.Compute(series)

	require.NoError(t, err)
	for _, w := range stats {
		assert.GreaterOrEqual(t, w.SampleCount, 5)
	}
}

func TestCompute_VolatileWindowsScoreHigherComplexity(t *testing.T) {
	calm := constant(48, 100)
	volatile := make([]float64, 48)
	for i := range volatile {
		if (i/4)%2 == 0 {
			volatile[i] = 60
		} else {
			volatile[i] = 200
		}
	}

	engine := NewEngine(domain.DefaultGlucoseConfig(), zerolog.Nop())
	calmStats, err := engine.Compute(makeSeries(t, calm))
	require.NoError(t, err)
	volatileStats, err := engine.Compute(makeSeries(t, volatile))
	require.NoError(t, err)

	assert.Greater(t, volatileStats[0].ComplexityScore, calmStats[0].ComplexityScore)
	assert.Greater(t, volatileStats[0].CoefficientOfVariation, 40.0)
}

func TestCompute_InvalidConfigFailsFast(t *testing.T) {
	cfg := domain.DefaultGlucoseConfig()
	cfg.WindowSize = -1

	engine := NewEngine(cfg, zerolog.Nop())
	_, err := engine.Compute(makeSeries(t, constant(48, 100)))

	require.Error(t, err)
	assert.True(t, domain.IsValidationError(err))
}

func TestCompute_SeriesShorterThanWindow(t *testing.T) {
	engine := NewEngine(domain.DefaultGlucoseConfig(), zerolog.Nop())

	stats, err := engine.Compute(makeSeries(t, constant(10, 100)))

	require.NoError(t, err)
	assert.Empty(t, stats)
}
