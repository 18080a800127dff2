package indicators

import (
	"math"

	"github.com/chronax-dev/chronax/pkg/formulas"
)

const (
	fractalMinSamples = 4
	fractalNeutral    = 1.5
	fractalMaxK       = 8

	corrDimMinSamples = 10
	corrDimNeutral    = 2.0
	corrDimMaxPoints  = 200
)

// FractalDimension estimates the fractal dimension of the series using
// Higuchi's method: curve lengths L(k) are computed for time intervals
// k = 1..kmax and the dimension is the slope of log(L) against log(1/k).
// The result is clipped to [1, 2], the valid range for a curve.
//
// Returns the neutral 1.5 when fewer than 4 samples are given or the
// series is flat.
func FractalDimension(values []float64) float64 {
	n := len(values)
	if n < fractalMinSamples {
		return fractalNeutral
	}

	kmax := fractalMaxK
	if n/4 < kmax {
		kmax = n / 4
	}
	if kmax < 2 {
		kmax = 2
	}

	var logInvK, logL []float64
	for k := 1; k <= kmax; k++ {
		length := higuchiLength(values, k)
		if length <= 0 {
			continue
		}
		logInvK = append(logInvK, math.Log(1/float64(k)))
		logL = append(logL, math.Log(length))
	}
	if len(logInvK) < 2 {
		return fractalNeutral
	}

	slope := formulas.LinearSlope(logInvK, logL)
	if slope == 0 {
		return fractalNeutral
	}
	return formulas.Clamp(slope, 1, 2)
}

// higuchiLength computes the average normalized curve length for time
// interval k over all k starting offsets.
func higuchiLength(values []float64, k int) float64 {
	n := len(values)
	sum := 0.0
	counted := 0

	for m := 0; m < k; m++ {
		segments := (n - m - 1) / k
		if segments < 1 {
			continue
		}
		length := 0.0
		for i := 1; i <= segments; i++ {
			length += math.Abs(values[m+i*k] - values[m+(i-1)*k])
		}
		norm := float64(n-1) / (float64(segments) * float64(k))
		sum += length * norm / float64(k)
		counted++
	}

	if counted == 0 {
		return 0
	}
	return sum / float64(counted)
}

// CorrelationDimension estimates the correlation dimension with a
// simplified two-radius Grassberger-Procaccia procedure: correlation sums
// C(r) are computed at r and r/2 (r = half the standard deviation of the
// series) over 2-dimensional delay vectors, and the dimension is
// log(C(r)/C(r/2)) / log(2). The result is clipped to [0, 5].
//
// Returns the neutral 2.0 when fewer than 10 samples are given or either
// correlation sum is degenerate.
func CorrelationDimension(values []float64) float64 {
	n := len(values)
	if n < corrDimMinSamples {
		return corrDimNeutral
	}

	std := formulas.PopStdDev(values)
	if std == 0 {
		return corrDimNeutral
	}

	vectors := embed(values, 2, 1)
	if len(vectors) > corrDimMaxPoints {
		vectors = subsampleVectors(vectors, corrDimMaxPoints)
	}

	rOuter := 0.5 * std
	rInner := 0.25 * std
	cOuter := correlationSum(vectors, rOuter)
	cInner := correlationSum(vectors, rInner)
	if cOuter <= 0 || cInner <= 0 || cOuter <= cInner {
		return corrDimNeutral
	}

	dim := math.Log(cOuter/cInner) / math.Log(rOuter/rInner)
	return formulas.Clamp(dim, 0, 5)
}

// correlationSum is the fraction of vector pairs within distance r.
func correlationSum(vectors [][]float64, r float64) float64 {
	pairs := 0
	within := 0
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			pairs++
			if euclidean(vectors[i], vectors[j]) < r {
				within++
			}
		}
	}
	if pairs == 0 {
		return 0
	}
	return float64(within) / float64(pairs)
}
