package domain

import "time"

// SeriesType discriminates the physiological signal being analyzed. The
// target band and plausible measurement range differ per type.
type SeriesType string

const (
	// SeriesGlucose is a continuous glucose monitor stream (mg/dL).
	SeriesGlucose SeriesType = "glucose"
	// SeriesCardiac is a cardiac inter-beat-interval stream (ms).
	SeriesCardiac SeriesType = "cardiac"
)

// IndicatorVector holds the scalar nonlinear-dynamics indicators computed
// once per analysis. It is an immutable value object.
type IndicatorVector struct {
	LyapunovExponent       float64 `json:"lyapunov_exponent"`
	ApproximateEntropy     float64 `json:"approximate_entropy"`
	HurstExponent          float64 `json:"hurst_exponent"`
	ShannonEntropy         float64 `json:"shannon_entropy"`
	CorrelationDimension   float64 `json:"correlation_dimension"`
	FractalDimension       float64 `json:"fractal_dimension"`
	CoefficientOfVariation float64 `json:"coefficient_of_variation"`
	Mean                   float64 `json:"mean"`
	StdDev                 float64 `json:"std_dev"`
}

// WindowStat summarizes one fixed-size slice of the series.
type WindowStat struct {
	WindowStart            time.Time `json:"window_start"`
	WindowEnd              time.Time `json:"window_end"`
	Mean                   float64   `json:"mean"`
	CoefficientOfVariation float64   `json:"coefficient_of_variation"`
	InRangeFraction        float64   `json:"in_range_fraction"`
	ComplexityScore        float64   `json:"complexity_score"`
	SampleCount            int       `json:"sample_count"`
}

// ChangePoint is a candidate regime-shift timestamp emitted by one
// detector before fusion.
type ChangePoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source_detector"`
	Confidence float64   `json:"confidence"`
}

// Segment is one phase of the partitioned series. The ordered segment
// list covers [series_start, series_end] with no gaps or overlaps.
type Segment struct {
	Start                  time.Time     `json:"start"`
	End                    time.Time     `json:"end"`
	Duration               time.Duration `json:"duration"`
	Mean                   float64       `json:"mean"`
	CoefficientOfVariation float64       `json:"coefficient_of_variation"`
	InRangeFraction        float64       `json:"in_range_fraction"`
	ComplexityScore        float64       `json:"complexity_score"`
	WindowCount            int           `json:"window_count"`
	Label                  SegmentLabel  `json:"label"`
}

// SegmentLabel is the qualitative regime label of a segment.
type SegmentLabel string

const (
	// SegmentStable marks a low-complexity, low-variability phase.
	SegmentStable SegmentLabel = "stable"
	// SegmentUnstable marks a high-complexity or high-variability phase.
	SegmentUnstable SegmentLabel = "unstable"
)

// BrittlenessType is the discrete taxonomy used as a risk proxy.
type BrittlenessType string

const (
	// BrittlenessStable - low variability, low chaos, predictable signal.
	BrittlenessStable BrittlenessType = "stable"
	// BrittlenessModerate - the default middle type for mixed profiles.
	BrittlenessModerate BrittlenessType = "moderate"
	// BrittlenessHighVariability - variability-dominated instability.
	BrittlenessHighVariability BrittlenessType = "high_variability"
	// BrittlenessStochastic - entropy-dominated, random-walk-like signal.
	BrittlenessStochastic BrittlenessType = "stochastic"
	// BrittlenessMemoryLoss - anti-persistent signal that has lost its
	// long-range structure (Hurst well below 0.5).
	BrittlenessMemoryLoss BrittlenessType = "memory_loss"
	// BrittlenessChaotic - simultaneous high chaos and high variability.
	BrittlenessChaotic BrittlenessType = "chaotic"
)

// RiskLevel is the coarse risk bucket derived from the brittleness score.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// BrittlenessProfile is the classification result. ComponentScores holds
// the capped per-component contributions; their sum never exceeds Score's
// 0-100 range.
type BrittlenessProfile struct {
	Type            BrittlenessType    `json:"type"`
	Score           float64            `json:"score"`
	RiskLevel       RiskLevel          `json:"risk_level"`
	ComponentScores map[string]float64 `json:"component_scores"`
}
