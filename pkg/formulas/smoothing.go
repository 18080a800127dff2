package formulas

import (
	"github.com/markcheno/go-talib"
)

// SMA calculates the Simple Moving Average over the given period.
// The first period-1 entries are backfilled with the raw values so the
// output keeps the input length and alignment.
func SMA(values []float64, period int) []float64 {
	if period < 2 || len(values) < period {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}

	sma := talib.Sma(values, period)

	// talib leaves the warm-up region zeroed; keep the raw samples there
	// so downstream window alignment is unaffected.
	out := make([]float64, len(values))
	copy(out, values)
	copy(out[period-1:], sma[period-1:])
	return out
}

// EMA calculates the Exponential Moving Average over the given period,
// with the same warm-up backfill behavior as SMA.
func EMA(values []float64, period int) []float64 {
	if period < 2 || len(values) < period {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}

	ema := talib.Ema(values, period)

	out := make([]float64, len(values))
	copy(out, values)
	copy(out[period-1:], ema[period-1:])
	return out
}
