// Package indicators computes the scalar nonlinear-dynamics indicators of
// a cleaned series: largest Lyapunov exponent, approximate entropy, Hurst
// exponent, Shannon entropy and fractal/correlation dimensions.
//
// Every function in this package is pure and deterministic. Numerically
// insufficient input never produces an error; each indicator degrades to
// its documented neutral constant instead:
//
//	Lyapunov              0    (fewer than 50 samples, degenerate distances)
//	ApproximateEntropy    0.5  (fewer than m+1 samples; 0 for zero variance)
//	Hurst                 0.5  (fewer than 20 samples or <3 usable scales)
//	ShannonEntropy        0    (empty or single-valued input)
//	FractalDimension      1.5  (fewer than 4 samples)
//	CorrelationDimension  2.0  (fewer than 10 samples)
//
// The 0-vs-0.5 asymmetry between Lyapunov and approximate entropy is
// deliberate: 0 is "no divergence measured" while 0.5 is "regularity
// unknown".
package indicators

import (
	"github.com/rs/zerolog"

	"github.com/chronax-dev/chronax/internal/domain"
	"github.com/chronax-dev/chronax/pkg/formulas"
)

// Calculator bundles the indicator functions behind one entry point so
// the analysis service can compute the full vector in a single call.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates an indicator calculator.
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("component", "indicators").Logger(),
	}
}

// Compute produces the full indicator vector for a cleaned value series.
func (c *Calculator) Compute(values []float64) domain.IndicatorVector {
	iv := domain.IndicatorVector{
		LyapunovExponent:       Lyapunov(values),
		ApproximateEntropy:     ApproximateEntropy(values),
		HurstExponent:          Hurst(values),
		ShannonEntropy:         ShannonEntropy(values),
		CorrelationDimension:   CorrelationDimension(values),
		FractalDimension:       FractalDimension(values),
		CoefficientOfVariation: formulas.CoefficientOfVariation(values),
		Mean:                   formulas.Mean(values),
		StdDev:                 formulas.PopStdDev(values),
	}

	c.log.Debug().
		Float64("lyapunov", iv.LyapunovExponent).
		Float64("apen", iv.ApproximateEntropy).
		Float64("hurst", iv.HurstExponent).
		Float64("shannon", iv.ShannonEntropy).
		Float64("cv", iv.CoefficientOfVariation).
		Msg("Computed indicator vector")

	return iv
}
