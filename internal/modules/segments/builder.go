// Package segments converts fused change points into a contiguous
// partition of the analyzed period, aggregating the window statistics
// that fall inside each segment and attaching a qualitative regime label.
package segments

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/chronax-dev/chronax/internal/domain"
)

// label thresholds over the aggregated segment statistics
const (
	unstableComplexityMin = 0.45
	unstableCVMin         = 30.0
)

// Builder partitions [seriesStart, seriesEnd] at the fused change points.
type Builder struct {
	log zerolog.Logger
}

// NewBuilder creates a segment builder.
func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{
		log: log.With().Str("component", "segments").Logger(),
	}
}

// Build returns the ordered, gap-free, overlap-free partition of
// [seriesStart, seriesEnd]. Change points outside the open interval are
// ignored and duplicates collapse, so the boundary list is strictly
// increasing. An empty change-point set yields a single segment covering
// the whole period.
func (b *Builder) Build(stats []domain.WindowStat, changePoints []time.Time, seriesStart, seriesEnd time.Time) ([]domain.Segment, error) {
	if seriesEnd.Before(seriesStart) {
		return nil, domain.NewValidationError("series end %v precedes start %v", seriesEnd, seriesStart)
	}

	boundaries := buildBoundaries(changePoints, seriesStart, seriesEnd)

	segments := make([]domain.Segment, 0, len(boundaries)-1)
	for i := 0; i+1 < len(boundaries); i++ {
		seg := b.aggregate(stats, boundaries[i], boundaries[i+1])
		segments = append(segments, seg)
	}

	b.log.Debug().
		Int("segments", len(segments)).
		Int("change_points", len(changePoints)).
		Msg("Built segment partition")

	return segments, nil
}

// buildBoundaries assembles the strictly increasing boundary list
// [start, interior change points..., end].
func buildBoundaries(changePoints []time.Time, start, end time.Time) []time.Time {
	interior := make([]time.Time, 0, len(changePoints))
	for _, cp := range changePoints {
		if cp.After(start) && cp.Before(end) {
			interior = append(interior, cp)
		}
	}
	sort.Slice(interior, func(i, j int) bool { return interior[i].Before(interior[j]) })

	boundaries := make([]time.Time, 0, len(interior)+2)
	boundaries = append(boundaries, start)
	for _, cp := range interior {
		if cp.Equal(boundaries[len(boundaries)-1]) {
			continue
		}
		boundaries = append(boundaries, cp)
	}
	boundaries = append(boundaries, end)
	return boundaries
}

// aggregate averages the window statistics whose start falls inside
// [segStart, segEnd) and labels the segment. The half-open filter assigns
// a window starting exactly on a boundary to the following segment; no
// window is ever lost because every window starts before the series end.
func (b *Builder) aggregate(stats []domain.WindowStat, segStart, segEnd time.Time) domain.Segment {
	var meanSum, cvSum, inRangeSum, complexitySum float64
	count := 0

	for _, w := range stats {
		if w.WindowStart.Before(segStart) || !w.WindowStart.Before(segEnd) {
			continue
		}
		meanSum += w.Mean
		cvSum += w.CoefficientOfVariation
		inRangeSum += w.InRangeFraction
		complexitySum += w.ComplexityScore
		count++
	}

	seg := domain.Segment{
		Start:    segStart,
		End:      segEnd,
		Duration: segEnd.Sub(segStart),
		Label:    domain.SegmentStable,
	}
	if count > 0 {
		n := float64(count)
		seg.Mean = meanSum / n
		seg.CoefficientOfVariation = cvSum / n
		seg.InRangeFraction = inRangeSum / n
		seg.ComplexityScore = complexitySum / n
		seg.WindowCount = count
	}

	if seg.ComplexityScore >= unstableComplexityMin || seg.CoefficientOfVariation >= unstableCVMin {
		seg.Label = domain.SegmentUnstable
	}
	return seg
}
