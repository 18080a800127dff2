package formulas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA(t *testing.T) {
	out := SMA([]float64{1, 2, 3, 4, 5}, 3)

	require.Len(t, out, 5)
	// warm-up keeps raw values
	assert.Equal(t, 1.0, out[0])
	assert.Equal(t, 2.0, out[1])
	// rolling means from the first full window on
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 3.0, out[3], 1e-9)
	assert.InDelta(t, 4.0, out[4], 1e-9)
}

func TestSMA_ShortInputPassthrough(t *testing.T) {
	in := []float64{1, 2}
	out := SMA(in, 5)

	assert.Equal(t, in, out)
	// output is a copy, not the input slice
	out[0] = 99
	assert.Equal(t, 1.0, in[0])
}

func TestSMA_DegeneratePeriod(t *testing.T) {
	in := []float64{3, 1, 4}
	assert.Equal(t, in, SMA(in, 1))
	assert.Equal(t, in, SMA(in, 0))
}

func TestSMA_ConstantSeries(t *testing.T) {
	out := SMA([]float64{7, 7, 7, 7, 7, 7}, 4)
	for _, v := range out {
		assert.InDelta(t, 7.0, v, 1e-9)
	}
}

func TestEMA(t *testing.T) {
	out := EMA([]float64{1, 2, 3, 10, 5}, 3)

	require.Len(t, out, 5)
	assert.Equal(t, 1.0, out[0])
	assert.Equal(t, 2.0, out[1])
	// SMA seed at the first full window, then k=0.5 updates
	assert.InDelta(t, 2.0, out[2], 1e-9)
	assert.InDelta(t, 6.0, out[3], 1e-9)
	assert.InDelta(t, 5.5, out[4], 1e-9)
}

func TestEMA_ShortInputPassthrough(t *testing.T) {
	in := []float64{4, 2}
	assert.Equal(t, in, EMA(in, 3))
}
