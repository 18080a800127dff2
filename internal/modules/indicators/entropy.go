package indicators

import (
	"math"

	"github.com/chronax-dev/chronax/pkg/formulas"
)

const (
	apenTemplateLength  = 2   // m
	apenToleranceFactor = 0.2 // r = 0.2 * std
	apenNeutral         = 0.5

	shannonBins = 50
)

// ApproximateEntropy computes ApEn(m=2, r=0.2*std) with Chebyshev-distance
// template matching. The result is the regularity statistic phi(m) -
// phi(m+1), clipped to [0, 2].
//
// Returns the neutral 0.5 when the series is shorter than m+1 samples and
// 0 when the series has zero variance (a constant signal is perfectly
// regular).
func ApproximateEntropy(values []float64) float64 {
	n := len(values)
	if n < apenTemplateLength+1 {
		return apenNeutral
	}

	r := apenToleranceFactor * formulas.PopStdDev(values)
	if r == 0 {
		return 0
	}

	phiM := apenPhi(values, apenTemplateLength, r)
	phiM1 := apenPhi(values, apenTemplateLength+1, r)

	return formulas.Clamp(phiM-phiM1, 0, 2)
}

// apenPhi is the average of log(C_i^m(r)) over all templates of length m.
func apenPhi(values []float64, m int, r float64) float64 {
	n := len(values)
	count := n - m + 1
	if count <= 0 {
		return 0
	}

	sum := 0.0
	for i := 0; i < count; i++ {
		matches := 0
		for j := 0; j < count; j++ {
			if chebyshevWithin(values[i:i+m], values[j:j+m], r) {
				matches++
			}
		}
		// i==j always matches, so matches >= 1 and the log is finite
		sum += math.Log(float64(matches) / float64(count))
	}
	return sum / float64(count)
}

func chebyshevWithin(a, b []float64, r float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > r {
			return false
		}
	}
	return true
}

// ShannonEntropy computes the histogram entropy of the series in bits
// using 50 equal-width bins between the series minimum and maximum.
// Empty bins are ignored. Returns 0 for empty or single-valued input.
func ShannonEntropy(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	min, max := formulas.MinMax(values)
	if max == min {
		return 0
	}

	counts := make([]int, shannonBins)
	width := (max - min) / float64(shannonBins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= shannonBins {
			idx = shannonBins - 1
		}
		counts[idx]++
	}

	entropy := 0.0
	total := float64(len(values))
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}
	return entropy
}
