package costfuncs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lab "latentlab"
)

// derivMatchesNumeric compares cf.Deriv against the symmetric numeric
// derivative of cf.Cost at each output.
func derivMatchesNumeric(t *testing.T, cf lab.CostFunction, outs, targets []float64) {
	t.Helper()

	derivs := make([]float64, len(outs))
	cf.Deriv(outs, targets, 0, len(outs), func(i int, d float64) {
		derivs[i] += d
	})

	const h = 1e-7
	for i := range outs {
		up := append([]float64{}, outs...)
		down := append([]float64{}, outs...)
		up[i] += h
		down[i] -= h

		numeric := (cf.Cost(up, targets) - cf.Cost(down, targets)) / (2 * h)
		assert.InDelta(t, numeric, derivs[i], 1e-4, "output %d", i)
	}
}

func TestMSE(t *testing.T) {
	m := MSE().NoPrint()

	outs := []float64{0.2, 0.9, -1.5}
	targets := []float64{0, 1, -1}

	// half the summed squared error
	want := 0.5 * (0.2*0.2 + 0.1*0.1 + 0.5*0.5)
	assert.InDelta(t, want, m.Cost(outs, targets), 1e-12)
	assert.Equal(t, 0.0, m.Cost(targets, targets))

	derivMatchesNumeric(t, m, outs, targets)
}

func TestCrossEntropy(t *testing.T) {
	c := CrossEntropy().NoPrint()

	outs := []float64{0.2, 0.9, 0.5}
	targets := []float64{0, 1, 1}

	cost := c.Cost(outs, targets)
	require.False(t, math.IsNaN(cost))
	assert.Greater(t, cost, 0.0)

	derivMatchesNumeric(t, c, outs, targets)
}

func TestCrossEntropyClamps(t *testing.T) {
	c := CrossEntropy().NoPrint()

	// exact 0 and 1 outputs must not produce NaN or Inf; the clamp keeps
	// the logs finite
	cost := c.Cost([]float64{0, 1}, []float64{1, 0})
	assert.False(t, math.IsNaN(cost))
	assert.False(t, math.IsInf(cost, 0))

	var derivs []float64
	c.Deriv([]float64{0, 1}, []float64{1, 0}, 0, 2, func(i int, d float64) {
		derivs = append(derivs, d)
	})

	for _, d := range derivs {
		assert.False(t, math.IsNaN(d))
		assert.False(t, math.IsInf(d, 0))
	}
}
