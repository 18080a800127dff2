// Package windows implements the sliding-window metrics engine. It slices
// the cleaned series into fixed-size windows advanced by a quarter-window
// step and produces the per-window summary statistics the change-point
// ensemble operates on.
package windows

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/chronax-dev/chronax/internal/domain"
	"github.com/chronax-dev/chronax/pkg/formulas"
)

// complexity proxy weights; the proxy blends normalized variability with
// a coarse entropy estimate instead of running the full indicator
// calculator per window.
const (
	complexityCVWeight      = 0.5
	complexityEntropyWeight = 0.5
	complexityCVScale       = 50.0 // CV (%) at which the variability term saturates
	complexityEntropyBins   = 8
)

// Engine computes ordered per-window summary statistics.
type Engine struct {
	cfg domain.AnalysisConfig
	log zerolog.Logger
}

// NewEngine creates a windowed metrics engine for the given configuration.
func NewEngine(cfg domain.AnalysisConfig, log zerolog.Logger) *Engine {
	return &Engine{
		cfg: cfg,
		log: log.With().Str("component", "windows").Logger(),
	}
}

// Compute slides a WindowSize-sample window with StepSize-sample steps
// over the series. Windows with fewer than MinWindowSamples finite
// samples are skipped rather than zero-filled. Output is strictly ordered
// by window start time.
func (e *Engine) Compute(s domain.Series) ([]domain.WindowStat, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return nil, domain.NewValidationError("series is empty")
	}

	var stats []domain.WindowStat
	skipped := 0

	for start := 0; start+e.cfg.WindowSize <= s.Len(); start += e.cfg.StepSize {
		end := start + e.cfg.WindowSize
		values := finiteValues(s.Values[start:end])
		if len(values) < e.cfg.MinWindowSamples {
			skipped++
			continue
		}

		inRange := 0
		for _, v := range values {
			if v >= e.cfg.TargetLow && v <= e.cfg.TargetHigh {
				inRange++
			}
		}

		cv := formulas.CoefficientOfVariation(values)
		stats = append(stats, domain.WindowStat{
			WindowStart:            s.Timestamps[start],
			WindowEnd:              s.Timestamps[end-1],
			Mean:                   formulas.Mean(values),
			CoefficientOfVariation: cv,
			InRangeFraction:        float64(inRange) / float64(len(values)),
			ComplexityScore:        complexityScore(values, cv),
			SampleCount:            len(values),
		})
	}

	e.log.Debug().
		Int("windows", len(stats)).
		Int("skipped", skipped).
		Msg("Computed window statistics")

	return stats, nil
}

// complexityScore is the cheap per-window complexity proxy in [0, 1]:
// a saturating CV term blended with a coarse-binned entropy estimate.
func complexityScore(values []float64, cv float64) float64 {
	cvTerm := math.Min(1, cv/complexityCVScale)
	entropyTerm := coarseEntropy(values) / math.Log2(complexityEntropyBins)
	return formulas.Clamp(complexityCVWeight*cvTerm+complexityEntropyWeight*entropyTerm, 0, 1)
}

// coarseEntropy is an 8-bin Shannon entropy estimate in bits.
func coarseEntropy(values []float64) float64 {
	min, max := formulas.MinMax(values)
	if max == min {
		return 0
	}
	counts := make([]int, complexityEntropyBins)
	width := (max - min) / float64(complexityEntropyBins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= complexityEntropyBins {
			idx = complexityEntropyBins - 1
		}
		counts[idx]++
	}
	entropy := 0.0
	total := float64(len(values))
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func finiteValues(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
