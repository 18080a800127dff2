// Package brittleness scores and classifies a physiological series into
// a discrete brittleness taxonomy from its nonlinear-dynamics indicators
// and basic occupancy statistics.
package brittleness

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/chronax-dev/chronax/internal/domain"
)

// Component score caps. The caps sum to 100 so the total score never
// leaves the [0, 100] range.
const (
	chaosCap       = 30.0
	variabilityCap = 40.0
	memoryCap      = 15.0
	abnormalityCap = 15.0
)

// Chaos component shape: the Lyapunov exponent carries most of the
// weight, ApEn above apEnChaosFloor tops it up by at most 10 points.
const (
	lyapunovWeight = 75.0
	apEnChaosFloor = 1.2
	apEnChaosScale = 12.5
	apEnChaosMax   = 10.0
)

// Memory component shape: Hurst at or below hurstMemoryFloor means the
// signal has lost its long-range structure and contributes nothing;
// above it the contribution grows linearly to the cap.
const hurstMemoryFloor = 0.42

const abnormalityScale = 50.0

// Classifier is a stateless scoring function over indicator vectors.
type Classifier struct {
	log zerolog.Logger
}

// NewClassifier creates a brittleness classifier.
func NewClassifier(log zerolog.Logger) *Classifier {
	return &Classifier{
		log: log.With().Str("component", "brittleness").Logger(),
	}
}

// Classify computes the capped component scores, sums them into the
// 0-100 brittleness score, picks the type from the priority-ordered
// rule list and buckets the score into a risk level.
// outOfRangeFraction is the fraction of time spent outside the target
// band, in [0, 1].
func (c *Classifier) Classify(ind domain.IndicatorVector, outOfRangeFraction float64) domain.BrittlenessProfile {
	components := map[string]float64{
		"chaos":       chaosScore(ind),
		"variability": variabilityScore(ind),
		"memory":      memoryScore(ind),
		"abnormality": abnormalityScore(outOfRangeFraction),
	}

	// fixed summation order: map iteration order would make the float
	// rounding, and with it exact-boundary scores, vary between runs
	score := components["chaos"] + components["variability"] +
		components["memory"] + components["abnormality"]
	score = math.Min(score, 100)

	bType := classifyType(ind, components, score)

	c.log.Debug().
		Float64("score", score).
		Str("type", string(bType)).
		Float64("chaos", components["chaos"]).
		Float64("variability", components["variability"]).
		Msg("Classified brittleness")

	return domain.BrittlenessProfile{
		Type:            bType,
		Score:           score,
		RiskLevel:       RiskLevelFor(score),
		ComponentScores: components,
	}
}

func chaosScore(ind domain.IndicatorVector) float64 {
	lyap := math.Max(0, ind.LyapunovExponent) * lyapunovWeight
	apen := clampComponent((ind.ApproximateEntropy-apEnChaosFloor)*apEnChaosScale, apEnChaosMax)
	return math.Min(lyap+apen, chaosCap)
}

func variabilityScore(ind domain.IndicatorVector) float64 {
	return clampComponent(ind.CoefficientOfVariation, variabilityCap)
}

func memoryScore(ind domain.IndicatorVector) float64 {
	return clampComponent((ind.HurstExponent-hurstMemoryFloor)*100, memoryCap)
}

func abnormalityScore(outOfRangeFraction float64) float64 {
	return clampComponent(outOfRangeFraction*abnormalityScale, abnormalityCap)
}

func clampComponent(v, limit float64) float64 {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}
