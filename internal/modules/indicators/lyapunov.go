package indicators

import (
	"math"

	"github.com/chronax-dev/chronax/pkg/formulas"
)

const (
	lyapunovMinSamples   = 50
	lyapunovEmbeddingDim = 3
	lyapunovDelay        = 1
	lyapunovMaxVectors   = 100
)

// Lyapunov estimates the largest Lyapunov exponent of the series via
// delay embedding. The series is reconstructed into a 3-dimensional
// phase space (delay 1), pairwise distances are computed over an evenly
// spaced subsample of at most 100 embedded vectors, and the divergence
// is estimated as log(p90 / p10) of the distance distribution, scaled by
// the series length. The result is clipped to [-1, 1].
//
// Returns the neutral 0 when fewer than 50 samples are given or when the
// distance distribution is degenerate (all distances zero).
func Lyapunov(values []float64) float64 {
	n := len(values)
	if n < lyapunovMinSamples {
		return 0
	}

	vectors := embed(values, lyapunovEmbeddingDim, lyapunovDelay)
	if len(vectors) > lyapunovMaxVectors {
		vectors = subsampleVectors(vectors, lyapunovMaxVectors)
	}

	distances := make([]float64, 0, len(vectors)*(len(vectors)-1)/2)
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			distances = append(distances, euclidean(vectors[i], vectors[j]))
		}
	}
	if len(distances) == 0 {
		return 0
	}

	p10 := formulas.Percentile(distances, 10)
	p90 := formulas.Percentile(distances, 90)
	if p90 <= 0 {
		// all embedded vectors coincide
		return 0
	}
	if p10 <= 0 {
		p10 = smallestPositive(distances)
		if p10 <= 0 {
			return 0
		}
	}

	divergence := math.Log(p90/p10) / float64(n)
	return formulas.Clamp(divergence, -1, 1)
}

// embed builds the delay-embedded phase-space trajectory.
func embed(values []float64, dim, delay int) [][]float64 {
	span := (dim - 1) * delay
	count := len(values) - span
	if count <= 0 {
		return nil
	}
	vectors := make([][]float64, count)
	for i := 0; i < count; i++ {
		v := make([]float64, dim)
		for d := 0; d < dim; d++ {
			v[d] = values[i+d*delay]
		}
		vectors[i] = v
	}
	return vectors
}

// subsampleVectors picks limit vectors evenly spaced over the trajectory.
func subsampleVectors(vectors [][]float64, limit int) [][]float64 {
	out := make([][]float64, limit)
	step := float64(len(vectors)-1) / float64(limit-1)
	for i := 0; i < limit; i++ {
		out[i] = vectors[int(math.Round(float64(i)*step))]
	}
	return out
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func smallestPositive(values []float64) float64 {
	best := math.Inf(1)
	for _, v := range values {
		if v > 0 && v < best {
			best = v
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}
