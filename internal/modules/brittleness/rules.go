package brittleness

import "github.com/chronax-dev/chronax/internal/domain"

// Type decision thresholds.
const (
	chaoticChaosMin       = 20.0
	chaoticVariabilityMin = 25.0

	stochasticApEnMin     = 1.0
	stochasticHurstLow    = 0.42
	stochasticHurstHigh   = 0.58
	highVariabilityMin    = 25.0
	memoryLossHurstMax    = 0.42
	stableScoreMax        = 25.0
	stableVariabilityMax  = 10.0
	stableChaosMax        = 10.0
)

// rule is one branch of the classification tree: the first matching
// predicate wins.
type rule struct {
	matches func(ind domain.IndicatorVector, components map[string]float64, score float64) bool
	result  domain.BrittlenessType
}

// typeRules is evaluated in priority order. Chaotic requires BOTH a high
// chaos subscore AND a high variability subscore; stochastic needs high
// ApEn together with a near-random-walk Hurst; memory loss fires on a
// low Hurst regardless of chaos level. Anything unmatched is moderate.
var typeRules = []rule{
	{
		matches: func(_ domain.IndicatorVector, c map[string]float64, _ float64) bool {
			return c["chaos"] >= chaoticChaosMin && c["variability"] >= chaoticVariabilityMin
		},
		result: domain.BrittlenessChaotic,
	},
	{
		matches: func(ind domain.IndicatorVector, _ map[string]float64, _ float64) bool {
			return ind.ApproximateEntropy >= stochasticApEnMin &&
				ind.HurstExponent > stochasticHurstLow &&
				ind.HurstExponent < stochasticHurstHigh
		},
		result: domain.BrittlenessStochastic,
	},
	{
		matches: func(_ domain.IndicatorVector, c map[string]float64, _ float64) bool {
			return c["variability"] >= highVariabilityMin
		},
		result: domain.BrittlenessHighVariability,
	},
	{
		matches: func(ind domain.IndicatorVector, _ map[string]float64, _ float64) bool {
			return ind.HurstExponent <= memoryLossHurstMax
		},
		result: domain.BrittlenessMemoryLoss,
	},
	{
		matches: func(_ domain.IndicatorVector, c map[string]float64, score float64) bool {
			return score < stableScoreMax &&
				c["variability"] < stableVariabilityMax &&
				c["chaos"] < stableChaosMax
		},
		result: domain.BrittlenessStable,
	},
}

// classifyType walks the priority-ordered rule list and falls back to
// the moderate middle type when nothing matches.
func classifyType(ind domain.IndicatorVector, components map[string]float64, score float64) domain.BrittlenessType {
	for _, r := range typeRules {
		if r.matches(ind, components, score) {
			return r.result
		}
	}
	return domain.BrittlenessModerate
}
