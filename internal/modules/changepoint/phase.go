package changepoint

import (
	"github.com/chronax-dev/chronax/internal/domain"
)

// composite complexity thresholds mapping windows into discrete phases
const (
	phaseCalmMax   = 0.25
	phaseActiveMax = 0.55

	// a phase must be held this many consecutive windows before a
	// transition out of it counts (hysteresis against flapping)
	phaseMinHold = 2

	phaseConfidence = 0.8
)

type phaseLevel int

const (
	phaseCalm phaseLevel = iota
	phaseActive
	phaseTurbulent
)

// PhaseDetector maps the composite complexity score into discrete phases
// (calm / active / turbulent) and flags a change point when the phase
// switches after having been held for at least two consecutive windows.
type PhaseDetector struct{}

// NewPhaseDetector creates a phase-threshold detector.
func NewPhaseDetector() *PhaseDetector {
	return &PhaseDetector{}
}

// Name identifies the detector in fusion output.
func (d *PhaseDetector) Name() string {
	return "phase"
}

// Detect returns phase-transition change points with hysteresis.
func (d *PhaseDetector) Detect(stats []domain.WindowStat) []domain.ChangePoint {
	if len(stats) < phaseMinHold+1 {
		return nil
	}

	field := complexityField(stats)

	var points []domain.ChangePoint
	current := phaseOf(field[0])
	held := 1

	for i := 1; i < len(stats); i++ {
		next := phaseOf(field[i])
		if next == current {
			held++
			continue
		}
		if held >= phaseMinHold {
			points = append(points, domain.ChangePoint{
				Timestamp:  stats[i].WindowStart,
				Source:     d.Name(),
				Confidence: phaseConfidence,
			})
		}
		current = next
		held = 1
	}
	return points
}

func phaseOf(complexity float64) phaseLevel {
	switch {
	case complexity < phaseCalmMax:
		return phaseCalm
	case complexity < phaseActiveMax:
		return phaseActive
	default:
		return phaseTurbulent
	}
}
