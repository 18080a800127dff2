package brittleness

import (
	"fmt"

	"github.com/chronax-dev/chronax/internal/domain"
)

// Risk bucket boundaries over the 0-100 score. A boundary score resolves
// to the higher bucket.
const (
	riskModerateMin = 25.0
	riskHighMin     = 50.0
	riskCriticalMin = 75.0
)

// RiskLevelFor buckets a brittleness score into a coarse risk level.
func RiskLevelFor(score float64) domain.RiskLevel {
	switch {
	case score >= riskCriticalMin:
		return domain.RiskCritical
	case score >= riskHighMin:
		return domain.RiskHigh
	case score >= riskModerateMin:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}

var typeFindings = map[domain.BrittlenessType]string{
	domain.BrittlenessStable:          "signal is regular with low variability",
	domain.BrittlenessModerate:        "mixed profile without a dominant instability driver",
	domain.BrittlenessHighVariability: "variability dominates the instability profile",
	domain.BrittlenessStochastic:      "signal behaves like a random walk with high entropy",
	domain.BrittlenessMemoryLoss:      "long-range structure of the signal is degraded",
	domain.BrittlenessChaotic:         "high chaos and high variability occur simultaneously",
}

// Findings renders a short human-readable narrative for a profile,
// leading with the type description and appending the component that
// contributed the most.
func Findings(profile domain.BrittlenessProfile) []string {
	out := []string{typeFindings[profile.Type]}

	topName, topValue := "", -1.0
	for name, v := range profile.ComponentScores {
		if v > topValue || (v == topValue && name < topName) {
			topName, topValue = name, v
		}
	}
	if topName != "" && topValue > 0 {
		out = append(out, fmt.Sprintf("largest contribution: %s (%.1f points)", topName, topValue))
	}
	return out
}
