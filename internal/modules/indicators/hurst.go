package indicators

import (
	"math"

	"github.com/chronax-dev/chronax/pkg/formulas"
)

const (
	hurstMinSamples    = 20
	hurstMinWindow     = 10
	hurstMaxWindow     = 200
	hurstScaleCount    = 12
	hurstSubsamples    = 10
	hurstMinValidRS    = 3
	hurstMinScalePairs = 3
	hurstNeutral       = 0.5
	hurstFloor         = 0.05
	hurstCeil          = 0.95
)

// Hurst estimates the Hurst exponent by multi-window rescaled-range
// analysis. The detrended series is examined at ~12 log-spaced window
// sizes between 10 and min(N/4, 200); each size contributes the average
// R/S over up to 10 sliding sub-windows (R is the range of the cumulative
// mean-centered sum, S the Bessel-corrected standard deviation). The
// exponent is the slope of log(R/S) against log(window size), clipped to
// (0.05, 0.95).
//
// Returns the neutral 0.5 when fewer than 20 samples are given or fewer
// than 3 window sizes yield valid R/S statistics.
func Hurst(values []float64) float64 {
	n := len(values)
	if n < hurstMinSamples {
		return hurstNeutral
	}

	detrended := formulas.Detrend(values)

	maxWindow := n / 4
	if maxWindow > hurstMaxWindow {
		maxWindow = hurstMaxWindow
	}
	if maxWindow <= hurstMinWindow {
		return hurstNeutral
	}

	var logSizes, logRS []float64
	for _, size := range logSpacedSizes(hurstMinWindow, maxWindow, hurstScaleCount) {
		rs, valid := averageRescaledRange(detrended, size)
		if valid < hurstMinValidRS || rs <= 0 {
			continue
		}
		logSizes = append(logSizes, math.Log(float64(size)))
		logRS = append(logRS, math.Log(rs))
	}

	if len(logSizes) < hurstMinScalePairs {
		return hurstNeutral
	}

	slope := formulas.LinearSlope(logSizes, logRS)
	return formulas.Clamp(slope, hurstFloor, hurstCeil)
}

// averageRescaledRange computes the mean R/S over up to hurstSubsamples
// sliding sub-windows of the given size, returning the mean and the
// number of sub-windows with non-degenerate variance.
func averageRescaledRange(values []float64, size int) (float64, int) {
	n := len(values)
	positions := n - size + 1
	if positions <= 0 {
		return 0, 0
	}

	count := hurstSubsamples
	if positions < count {
		count = positions
	}
	stride := 1.0
	if count > 1 {
		stride = float64(positions-1) / float64(count-1)
	}

	sum := 0.0
	valid := 0
	for k := 0; k < count; k++ {
		start := int(math.Round(float64(k) * stride))
		window := values[start : start+size]

		s := formulas.StdDev(window)
		if s == 0 {
			continue
		}
		profile := formulas.CumulativeDeviation(window)
		lo, hi := formulas.MinMax(profile)
		r := hi - lo
		if r <= 0 {
			continue
		}
		sum += r / s
		valid++
	}

	if valid == 0 {
		return 0, 0
	}
	return sum / float64(valid), valid
}

// logSpacedSizes returns up to count distinct integer window sizes spaced
// logarithmically in [min, max].
func logSpacedSizes(min, max, count int) []int {
	if max <= min {
		return []int{min}
	}
	logMin := math.Log(float64(min))
	logMax := math.Log(float64(max))

	sizes := make([]int, 0, count)
	seen := make(map[int]bool)
	for i := 0; i < count; i++ {
		frac := float64(i) / float64(count-1)
		size := int(math.Round(math.Exp(logMin + frac*(logMax-logMin))))
		if size < min {
			size = min
		}
		if size > max {
			size = max
		}
		if !seen[size] {
			seen[size] = true
			sizes = append(sizes, size)
		}
	}
	return sizes
}
