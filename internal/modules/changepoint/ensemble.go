package changepoint

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronax-dev/chronax/internal/domain"
)

// Result holds per-detector candidates plus the fused timestamp set.
type Result struct {
	PerDetector map[string][]domain.ChangePoint `json:"per_detector"`
	Fused       []time.Time                     `json:"fused"`
}

// Ensemble runs the four detection strategies concurrently and fuses
// their candidates. Detectors share no state, so completion order cannot
// influence the result: fusion sorts and deduplicates the union.
type Ensemble struct {
	cfg       domain.AnalysisConfig
	detectors []Detector
	log       zerolog.Logger
}

// NewEnsemble creates the standard four-detector ensemble.
func NewEnsemble(cfg domain.AnalysisConfig, log zerolog.Logger) *Ensemble {
	return &Ensemble{
		cfg: cfg,
		detectors: []Detector{
			NewSplitTestDetector(cfg.Significance),
			NewClusterDetector(),
			NewGradientDetector(),
			NewPhaseDetector(),
		},
		log: log.With().Str("component", "changepoint").Logger(),
	}
}

// Detect fans the window statistics out to every detector, joins at the
// fusion barrier, and returns per-detector candidates plus the fused set.
// A detector that exceeds the configured timeout (or the context
// deadline) contributes zero candidates; the ensemble itself never fails.
func (e *Ensemble) Detect(ctx context.Context, stats []domain.WindowStat, seriesStart, seriesEnd time.Time) Result {
	type detectorOutput struct {
		name   string
		points []domain.ChangePoint
	}

	results := make(chan detectorOutput, len(e.detectors))
	for _, det := range e.detectors {
		go func(det Detector) {
			results <- detectorOutput{name: det.Name(), points: det.Detect(stats)}
		}(det)
	}

	timeout := e.cfg.DetectorTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	perDetector := make(map[string][]domain.ChangePoint, len(e.detectors))
	var all []domain.ChangePoint

collect:
	for i := 0; i < len(e.detectors); i++ {
		select {
		case out := <-results:
			perDetector[out.name] = out.points
			all = append(all, out.points...)
		case <-timer.C:
			e.log.Warn().
				Int("missing", len(e.detectors)-i).
				Msg("Detector timeout reached, fusing partial results")
			break collect
		case <-ctx.Done():
			e.log.Warn().Err(ctx.Err()).Msg("Context cancelled, fusing partial results")
			break collect
		}
	}

	// detectors that never reported still appear with empty candidates
	for _, det := range e.detectors {
		if _, ok := perDetector[det.Name()]; !ok {
			perDetector[det.Name()] = nil
		}
	}

	fused := Fuse(all, seriesStart, seriesEnd, e.mergeRadius(stats))

	e.log.Debug().
		Int("candidates", len(all)).
		Int("fused", len(fused)).
		Msg("Fused change points")

	return Result{PerDetector: perDetector, Fused: fused}
}

// mergeRadius widens the configured merge threshold to at least one
// window duration. Candidates for a single regime shift spread across the
// boundary-straddling windows, so detectors legitimately fire up to a
// window apart around one true shift; a radius below the window duration
// would split that cluster into several fused points.
func (e *Ensemble) mergeRadius(stats []domain.WindowStat) time.Duration {
	radius := e.cfg.MergeThreshold
	if len(stats) == 0 {
		return radius
	}
	if windowDur := stats[0].WindowEnd.Sub(stats[0].WindowStart); windowDur > radius {
		radius = windowDur
	}
	return radius
}
