package changepoint

import (
	"math"
	"sort"

	"github.com/chronax-dev/chronax/internal/domain"
)

const (
	clusterMinWindows = 6
	clusterMaxK       = 4
	clusterMaxIters   = 25
	// A label change only counts when the two windows are genuinely far
	// apart in normalized feature space; this suppresses flips caused by
	// k-means splitting one tight blob into several clusters.
	clusterMinJump = 1.0
)

// ClusterDetector flags windows where the k-means cluster assignment of
// the normalized feature vector changes between consecutive windows.
// Initialization is deterministic, so repeated runs on identical input
// produce identical candidates.
type ClusterDetector struct{}

// NewClusterDetector creates a clustering-based detector.
func NewClusterDetector() *ClusterDetector {
	return &ClusterDetector{}
}

// Name identifies the detector in fusion output.
func (d *ClusterDetector) Name() string {
	return "clustering"
}

// Detect clusters the z-scored feature matrix (mean, CV, in-range
// fraction, complexity) with k = min(4, n/2) and reports consecutive
// label changes accompanied by a real feature jump. Fewer than six
// windows yield no candidates.
func (d *ClusterDetector) Detect(stats []domain.WindowStat) []domain.ChangePoint {
	n := len(stats)
	if n < clusterMinWindows {
		return nil
	}

	features := normalizedFeatures(stats)
	k := clusterMaxK
	if n/2 < k {
		k = n / 2
	}

	labels := kmeans(features, k)

	var points []domain.ChangePoint
	for i := 1; i < n; i++ {
		if labels[i] == labels[i-1] {
			continue
		}
		jump := euclideanDist(features[i], features[i-1])
		if jump < clusterMinJump {
			continue
		}
		points = append(points, domain.ChangePoint{
			Timestamp:  stats[i].WindowStart,
			Source:     d.Name(),
			Confidence: math.Min(1, jump/(2*clusterMinJump)),
		})
	}
	return points
}

// normalizedFeatures builds the z-scored feature matrix. Columns with
// zero variance normalize to zero.
func normalizedFeatures(stats []domain.WindowStat) [][]float64 {
	n := len(stats)
	raw := make([][]float64, n)
	for i, w := range stats {
		raw[i] = []float64{w.Mean, w.CoefficientOfVariation, w.InRangeFraction, w.ComplexityScore}
	}

	cols := len(raw[0])
	for c := 0; c < cols; c++ {
		mean := 0.0
		for i := 0; i < n; i++ {
			mean += raw[i][c]
		}
		mean /= float64(n)

		variance := 0.0
		for i := 0; i < n; i++ {
			d := raw[i][c] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(n))

		for i := 0; i < n; i++ {
			if std == 0 {
				raw[i][c] = 0
			} else {
				raw[i][c] = (raw[i][c] - mean) / std
			}
		}
	}
	return raw
}

// kmeans runs Lloyd's algorithm with deterministic initialization: rows
// are ranked by their projection onto the first feature axis combination
// and k evenly spaced rows seed the centroids.
func kmeans(features [][]float64, k int) []int {
	n := len(features)
	if k < 1 {
		k = 1
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rowSum(features[order[a]]) < rowSum(features[order[b]])
	})

	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		pos := 0
		if k > 1 {
			pos = c * (n - 1) / (k - 1)
		}
		centroids[c] = append([]float64(nil), features[order[pos]]...)
	}

	labels := make([]int, n)
	for iter := 0; iter < clusterMaxIters; iter++ {
		changed := false
		for i, row := range features {
			best := nearestCentroid(row, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		// recompute centroids; empty clusters keep their previous position
		counts := make([]int, k)
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, len(features[0]))
		}
		for i, row := range features {
			counts[labels[i]]++
			for c, v := range row {
				sums[labels[i]][c] += v
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for j := range sums[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}
	return labels
}

func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		d := euclideanDist(row, centroid)
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

func euclideanDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func rowSum(row []float64) float64 {
	sum := 0.0
	for _, v := range row {
		sum += v
	}
	return sum
}
