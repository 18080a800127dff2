package changepoint

import (
	"sort"
	"time"

	"github.com/chronax-dev/chronax/internal/domain"
)

// duration-based fallback split applied when the ensemble finds nothing:
// long monitoring periods are still broken into equal phases so segment
// consumers always see a partition
const (
	fallbackTwoSegmentsMin   = 8 * time.Hour
	fallbackThreeSegmentsMin = 24 * time.Hour
)

// Fuse merges candidate change points from all detectors into one sorted,
// deduplicated timestamp set. Chains of candidates whose neighbor gaps
// are within mergeThreshold collapse into their mean timestamp. Points
// outside (seriesStart, seriesEnd) are discarded. When no candidate
// survives, a duration-based equal split of the series is returned
// instead (3 parts beyond 24h, 2 parts beyond 8h, none otherwise).
func Fuse(candidates []domain.ChangePoint, seriesStart, seriesEnd time.Time, mergeThreshold time.Duration) []time.Time {
	interior := make([]time.Time, 0, len(candidates))
	for _, cp := range candidates {
		if cp.Timestamp.After(seriesStart) && cp.Timestamp.Before(seriesEnd) {
			interior = append(interior, cp.Timestamp)
		}
	}

	if len(interior) == 0 {
		return fallbackSplit(seriesStart, seriesEnd)
	}

	sort.Slice(interior, func(i, j int) bool { return interior[i].Before(interior[j]) })

	var fused []time.Time
	groupStart := 0
	for i := 1; i <= len(interior); i++ {
		if i < len(interior) && interior[i].Sub(interior[i-1]) <= mergeThreshold {
			continue
		}
		fused = append(fused, meanTime(interior[groupStart:i]))
		groupStart = i
	}

	return dedupTimes(fused)
}

func fallbackSplit(start, end time.Time) []time.Time {
	duration := end.Sub(start)
	switch {
	case duration >= fallbackThreeSegmentsMin:
		return []time.Time{
			start.Add(duration / 3),
			start.Add(2 * duration / 3),
		}
	case duration >= fallbackTwoSegmentsMin:
		return []time.Time{start.Add(duration / 2)}
	default:
		return nil
	}
}

func meanTime(times []time.Time) time.Time {
	base := times[0]
	var total time.Duration
	for _, t := range times[1:] {
		total += t.Sub(base)
	}
	return base.Add(total / time.Duration(len(times)))
}

func dedupTimes(times []time.Time) []time.Time {
	out := times[:0]
	for i, t := range times {
		if i > 0 && t.Equal(times[i-1]) {
			continue
		}
		out = append(out, t)
	}
	return out
}
