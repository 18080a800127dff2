package domain

import "time"

// AnalysisConfig is the immutable per-analysis configuration. One
// canonical default set exists per series type; components receive the
// config at construction time and never mutate it.
type AnalysisConfig struct {
	SeriesType SeriesType

	// Windowed metrics engine
	WindowSize       int // samples per window
	StepSize         int // samples between window starts (WindowSize/4)
	MinWindowSamples int // windows with fewer valid samples are skipped

	// Change-point ensemble
	Significance    float64       // split-test significance level
	MergeThreshold  time.Duration // fused points closer than this collapse
	DetectorTimeout time.Duration // per-detector budget; a timed-out detector contributes nothing

	// Domain occupancy band (glucose target range / cardiac normal range)
	TargetLow  float64
	TargetHigh float64

	// Physiologically plausible measurement range; values outside are
	// treated as sensor artifacts by the preprocessor.
	PlausibleLow  float64
	PlausibleHigh float64

	// Preprocessing
	SmoothingPeriod int // 0 disables smoothing
}

// DefaultGlucoseConfig returns the canonical configuration for CGM
// streams sampled every ~5 minutes: 24-sample (~2h) windows, 6-sample
// steps, 70-180 mg/dL target band.
func DefaultGlucoseConfig() AnalysisConfig {
	return AnalysisConfig{
		SeriesType:       SeriesGlucose,
		WindowSize:       24,
		StepSize:         6,
		MinWindowSamples: 5,
		Significance:     0.01,
		MergeThreshold:   30 * time.Minute,
		DetectorTimeout:  2 * time.Second,
		TargetLow:        70,
		TargetHigh:       180,
		PlausibleLow:     20,
		PlausibleHigh:    600,
		SmoothingPeriod:  0,
	}
}

// DefaultCardiacConfig returns the canonical configuration for
// inter-beat-interval streams: 600-1000 ms normal band.
func DefaultCardiacConfig() AnalysisConfig {
	return AnalysisConfig{
		SeriesType:       SeriesCardiac,
		WindowSize:       24,
		StepSize:         6,
		MinWindowSamples: 5,
		Significance:     0.01,
		MergeThreshold:   30 * time.Minute,
		DetectorTimeout:  2 * time.Second,
		TargetLow:        600,
		TargetHigh:       1000,
		PlausibleLow:     200,
		PlausibleHigh:    2500,
		SmoothingPeriod:  0,
	}
}

// ConfigFor returns the canonical defaults for the given series type.
// Unknown types fall back to the glucose defaults.
func ConfigFor(t SeriesType) AnalysisConfig {
	switch t {
	case SeriesCardiac:
		return DefaultCardiacConfig()
	default:
		return DefaultGlucoseConfig()
	}
}

// Validate checks the window and threshold configuration. Invalid
// configuration is a caller bug and fails fast.
func (c AnalysisConfig) Validate() error {
	if c.WindowSize <= 0 {
		return NewValidationError("window size must be positive, got %d", c.WindowSize)
	}
	if c.StepSize <= 0 {
		return NewValidationError("step size must be positive, got %d", c.StepSize)
	}
	if c.StepSize > c.WindowSize {
		return NewValidationError("step size %d exceeds window size %d", c.StepSize, c.WindowSize)
	}
	if c.Significance <= 0 || c.Significance >= 1 {
		return NewValidationError("significance must be in (0,1), got %g", c.Significance)
	}
	if c.MergeThreshold < 0 {
		return NewValidationError("merge threshold must be non-negative")
	}
	if c.TargetHigh <= c.TargetLow {
		return NewValidationError("target band is empty: [%g, %g]", c.TargetLow, c.TargetHigh)
	}
	return nil
}
