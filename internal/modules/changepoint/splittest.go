package changepoint

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/chronax-dev/chronax/internal/domain"
)

// minimum windows on each side of a candidate split
const splitMinSide = 3

// SplitTestDetector locates regime shifts with Welch's two-sample t-test.
// It scans every candidate split index, takes the most significant split,
// and recurses into both halves (binary segmentation). A split is kept
// when its p-value is below the configured significance level and both
// sides hold at least three windows. Scanning all splits but keeping only
// the per-segment minimum keeps the candidate set sharp: around a real
// shift nearly every split of the containing segment is "significant",
// and flagging them all would drown fusion in duplicates.
type SplitTestDetector struct {
	significance float64
}

// NewSplitTestDetector creates a split-test detector with the given
// significance level.
func NewSplitTestDetector(significance float64) *SplitTestDetector {
	return &SplitTestDetector{significance: significance}
}

// Name identifies the detector in fusion output.
func (d *SplitTestDetector) Name() string {
	return "split_test"
}

// Detect returns the change points found by recursive binary segmentation
// of the per-window mean field.
func (d *SplitTestDetector) Detect(stats []domain.WindowStat) []domain.ChangePoint {
	field := meanField(stats)

	var points []domain.ChangePoint
	d.segment(stats, field, 0, len(field), &points)
	return points
}

// segment finds the best split of field[lo:hi] and recurses when it is
// significant.
func (d *SplitTestDetector) segment(stats []domain.WindowStat, field []float64, lo, hi int, out *[]domain.ChangePoint) {
	if hi-lo < 2*splitMinSide {
		return
	}

	bestIdx := -1
	bestP := math.Inf(1)
	for i := lo + splitMinSide; i <= hi-splitMinSide; i++ {
		p := welchPValue(field[lo:i], field[i:hi])
		if p < bestP {
			bestP = p
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestP >= d.significance {
		return
	}

	*out = append(*out, domain.ChangePoint{
		Timestamp:  stats[bestIdx].WindowStart,
		Source:     d.Name(),
		Confidence: 1 - bestP,
	})

	d.segment(stats, field, lo, bestIdx, out)
	d.segment(stats, field, bestIdx, hi, out)
}

// welchPValue returns the two-sided p-value of Welch's t-test between the
// two samples. Degenerate variance resolves without error: identical
// means give p=1, differing means with zero variance give p=0.
func welchPValue(left, right []float64) float64 {
	n1, n2 := float64(len(left)), float64(len(right))
	if n1 < 2 || n2 < 2 {
		return 1
	}

	m1, v1 := meanVariance(left)
	m2, v2 := meanVariance(right)

	se2 := v1/n1 + v2/n2
	if se2 == 0 {
		if m1 == m2 {
			return 1
		}
		return 0
	}

	t := (m1 - m2) / math.Sqrt(se2)

	// Welch-Satterthwaite degrees of freedom
	df := se2 * se2 / ((v1*v1)/(n1*n1*(n1-1)) + (v2*v2)/(n2*n2*(n2-1)))
	if math.IsNaN(df) || df <= 0 {
		return 1
	}

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

func meanVariance(data []float64) (float64, float64) {
	n := float64(len(data))
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= n

	variance := 0.0
	for _, v := range data {
		d := v - mean
		variance += d * d
	}
	if n > 1 {
		variance /= n - 1
	}
	return mean, variance
}
