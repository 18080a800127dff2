// Package analysis orchestrates the full brittleness pipeline: cleaning,
// indicator computation, windowed statistics, change-point detection,
// segmentation and classification.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chronax-dev/chronax/internal/domain"
	"github.com/chronax-dev/chronax/internal/modules/brittleness"
	"github.com/chronax-dev/chronax/internal/modules/changepoint"
	"github.com/chronax-dev/chronax/internal/modules/indicators"
	"github.com/chronax-dev/chronax/internal/modules/preprocess"
	"github.com/chronax-dev/chronax/internal/modules/segments"
	"github.com/chronax-dev/chronax/internal/modules/windows"
)

// Report is the complete result of one analysis run.
type Report struct {
	RunID        string                     `json:"run_id"`
	SeriesType   domain.SeriesType          `json:"series_type"`
	SeriesStart  time.Time                  `json:"series_start"`
	SeriesEnd    time.Time                  `json:"series_end"`
	SampleCount  int                        `json:"sample_count"`
	Indicators   domain.IndicatorVector     `json:"indicators"`
	WindowStats  []domain.WindowStat        `json:"window_stats"`
	ChangePoints changepoint.Result         `json:"change_points"`
	Segments     []domain.Segment           `json:"segments"`
	Brittleness  domain.BrittlenessProfile  `json:"brittleness"`
	Findings     []string                   `json:"findings"`
	ComputedAt   time.Time                  `json:"computed_at"`
	ElapsedMs    int64                      `json:"elapsed_ms"`
}

// Service wires the pipeline stages together for one series type.
type Service struct {
	cfg        domain.AnalysisConfig
	cleaner    *preprocess.Cleaner
	calculator *indicators.Calculator
	engine     *windows.Engine
	ensemble   *changepoint.Ensemble
	builder    *segments.Builder
	classifier *brittleness.Classifier
	log        zerolog.Logger
}

// NewService builds a pipeline from the canonical configuration for the
// given series type.
func NewService(cfg domain.AnalysisConfig, log zerolog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		cfg:        cfg,
		cleaner:    preprocess.NewCleaner(cfg, log),
		calculator: indicators.NewCalculator(log),
		engine:     windows.NewEngine(cfg, log),
		ensemble:   changepoint.NewEnsemble(cfg, log),
		builder:    segments.NewBuilder(log),
		classifier: brittleness.NewClassifier(log),
		log:        log.With().Str("component", "analysis").Logger(),
	}, nil
}

// Analyze runs the full pipeline over one series. Invalid input fails
// fast; every downstream stage resolves its own degenerate cases to
// documented defaults and never errors.
func (s *Service) Analyze(ctx context.Context, series domain.Series) (*Report, error) {
	started := time.Now()

	cleaned := s.cleaner.Clean(series)
	if cleaned.Len() == 0 {
		return nil, domain.NewValidationError("no plausible samples remain after cleaning")
	}

	indicatorVec := s.calculator.Compute(cleaned.Values)

	stats, err := s.engine.Compute(cleaned)
	if err != nil {
		return nil, err
	}

	cpResult := s.ensemble.Detect(ctx, stats, cleaned.Start(), cleaned.End())

	segs, err := s.builder.Build(stats, cpResult.Fused, cleaned.Start(), cleaned.End())
	if err != nil {
		return nil, err
	}

	profile := s.classifier.Classify(indicatorVec, s.outOfRangeFraction(cleaned.Values))

	report := &Report{
		RunID:        uuid.New().String(),
		SeriesType:   series.Type,
		SeriesStart:  cleaned.Start(),
		SeriesEnd:    cleaned.End(),
		SampleCount:  cleaned.Len(),
		Indicators:   indicatorVec,
		WindowStats:  stats,
		ChangePoints: cpResult,
		Segments:     segs,
		Brittleness:  profile,
		Findings:     brittleness.Findings(profile),
		ComputedAt:   time.Now().UTC(),
		ElapsedMs:    time.Since(started).Milliseconds(),
	}

	s.log.Info().
		Str("run_id", report.RunID).
		Str("series_type", string(series.Type)).
		Int("samples", report.SampleCount).
		Int("segments", len(segs)).
		Str("brittleness_type", string(profile.Type)).
		Float64("score", profile.Score).
		Int64("elapsed_ms", report.ElapsedMs).
		Msg("Analysis complete")

	return report, nil
}

// Indicators runs only the cleaning and indicator stages, skipping the
// windowed pipeline.
func (s *Service) Indicators(series domain.Series) (domain.IndicatorVector, error) {
	cleaned := s.cleaner.Clean(series)
	if cleaned.Len() == 0 {
		return domain.IndicatorVector{}, domain.NewValidationError("no plausible samples remain after cleaning")
	}
	return s.calculator.Compute(cleaned.Values), nil
}

// outOfRangeFraction is the share of samples outside the target band.
func (s *Service) outOfRangeFraction(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	out := 0
	for _, v := range values {
		if v < s.cfg.TargetLow || v > s.cfg.TargetHigh {
			out++
		}
	}
	return float64(out) / float64(len(values))
}
