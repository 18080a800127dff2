// Package preprocess cleans raw measurement series before analysis:
// non-finite and physiologically implausible samples are dropped, isolated
// sensor spikes are removed, and an optional moving-average smoothing pass
// can be applied.
package preprocess

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronax-dev/chronax/internal/domain"
	"github.com/chronax-dev/chronax/pkg/formulas"
)

// Spikes further than this many scaled median absolute deviations from
// the median are treated as sensor artifacts.
const madSpikeFactor = 6.0

// consistency factor making MAD comparable to a standard deviation
const madScale = 1.4826

// Cleaner removes artifacts from raw series.
type Cleaner struct {
	cfg domain.AnalysisConfig
	log zerolog.Logger
}

// NewCleaner creates a preprocessor for the given analysis configuration.
func NewCleaner(cfg domain.AnalysisConfig, log zerolog.Logger) *Cleaner {
	return &Cleaner{
		cfg: cfg,
		log: log.With().Str("component", "preprocess").Logger(),
	}
}

// Clean returns a new series with artifact samples removed and, when
// configured, smoothing applied. The input series is not modified.
func (c *Cleaner) Clean(s domain.Series) domain.Series {
	values := make([]float64, 0, s.Len())
	timestamps := make([]time.Time, 0, s.Len())

	dropped := 0
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			dropped++
			continue
		}
		if v < c.cfg.PlausibleLow || v > c.cfg.PlausibleHigh {
			dropped++
			continue
		}
		values = append(values, v)
		timestamps = append(timestamps, s.Timestamps[i])
	}

	values, timestamps, spikes := c.removeSpikes(values, timestamps)

	if dropped+spikes > 0 {
		c.log.Debug().
			Int("implausible", dropped).
			Int("spikes", spikes).
			Int("remaining", len(values)).
			Msg("Removed artifact samples")
	}

	if c.cfg.SmoothingPeriod > 1 {
		values = formulas.SMA(values, c.cfg.SmoothingPeriod)
	}

	return domain.Series{Type: s.Type, Timestamps: timestamps, Values: values}
}

// removeSpikes drops samples whose robust z-score against the series
// median exceeds madSpikeFactor. With a degenerate MAD (over half the
// samples identical) nothing is removed.
func (c *Cleaner) removeSpikes(values []float64, timestamps []time.Time) ([]float64, []time.Time, int) {
	if len(values) < 10 {
		return values, timestamps, 0
	}

	median := formulas.Median(values)
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - median)
	}
	mad := formulas.Median(deviations) * madScale
	if mad == 0 {
		return values, timestamps, 0
	}

	outValues := values[:0]
	outStamps := timestamps[:0]
	removed := 0
	for i, v := range values {
		if math.Abs(v-median)/mad > madSpikeFactor {
			removed++
			continue
		}
		outValues = append(outValues, v)
		outStamps = append(outStamps, timestamps[i])
	}
	return outValues, outStamps, removed
}
