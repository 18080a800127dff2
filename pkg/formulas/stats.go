// Package formulas provides shared statistical primitives used across the
// analysis modules. All functions operate on plain float64 slices and return
// zero values for empty input rather than erroring.
package formulas

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (Bessel-corrected)
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// PopStdDev calculates the population standard deviation
func PopStdDev(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	mean := stat.Mean(data, nil)
	sum := 0.0
	for _, v := range data {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(data)))
}

// Variance calculates the sample variance of a slice of float64 values
func Variance(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.Variance(data, nil)
}

// CoefficientOfVariation returns the CV as a percentage (100 * std / mean).
// Returns 0 when the mean is 0 to avoid division blowup on degenerate input.
func CoefficientOfVariation(data []float64) float64 {
	mean := Mean(data)
	if mean == 0 {
		return 0
	}
	return 100 * PopStdDev(data) / math.Abs(mean)
}

// Percentile returns the p-th percentile (p in [0,100]) using linear
// interpolation between closest ranks. Input does not need to be sorted.
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Median returns the 50th percentile
func Median(data []float64) float64 {
	return Percentile(data, 50)
}

// MinMax returns the minimum and maximum of the slice
func MinMax(data []float64) (float64, float64) {
	if len(data) == 0 {
		return 0, 0
	}
	min, max := data[0], data[0]
	for _, v := range data[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Diff returns the first difference of the series (len(data)-1 elements)
func Diff(data []float64) []float64 {
	if len(data) < 2 {
		return []float64{}
	}
	out := make([]float64, len(data)-1)
	for i := 1; i < len(data); i++ {
		out[i-1] = data[i] - data[i-1]
	}
	return out
}

// CumulativeDeviation returns the cumulative sum of deviations from the mean.
// This is the Y-profile used by rescaled-range analysis.
func CumulativeDeviation(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}
	mean := stat.Mean(data, nil)
	out := make([]float64, len(data))
	running := 0.0
	for i, v := range data {
		running += v - mean
		out[i] = running
	}
	return out
}

// LinearSlope regresses y against x and returns the slope.
// Returns 0 when fewer than two points are given.
func LinearSlope(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	_, slope := stat.LinearRegression(x, y, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0
	}
	return slope
}

// Detrend removes the least-squares linear trend from the series
func Detrend(data []float64) []float64 {
	if len(data) < 3 {
		out := make([]float64, len(data))
		copy(out, data)
		return out
	}
	x := make([]float64, len(data))
	for i := range x {
		x[i] = float64(i)
	}
	alpha, beta := stat.LinearRegression(x, data, nil, false)
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = v - (alpha + beta*float64(i))
	}
	return out
}

// Clamp restricts v to the inclusive range [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
