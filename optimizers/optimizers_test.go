package optimizers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSGD(t *testing.T) {
	opt := SGD()

	grads := []float64{1, -2, 0.5}
	changes := make([]float64, len(grads))

	err := opt.Run(nil, len(grads), func(i int) float64 { return grads[i] },
		func(i int, v float64) { changes[i] += v }, 0.1)
	require.NoError(t, err)

	for i := range grads {
		assert.InDelta(t, -0.1*grads[i], changes[i], 1e-12)
	}
}

func TestAdamFirstStep(t *testing.T) {
	opt := Adam()

	// with a constant gradient, the bias correction makes the first step
	// (almost exactly) the learning rate, in the opposite direction of the
	// gradient
	const lr = 0.01

	grads := []float64{3, -0.002}
	changes := make([]float64, len(grads))

	err := opt.Run(nil, len(grads), func(i int) float64 { return grads[i] },
		func(i int, v float64) { changes[i] += v }, lr)
	require.NoError(t, err)

	for i := range grads {
		want := -lr * math.Copysign(1, grads[i])
		assert.InDelta(t, want, changes[i], 1e-4)
	}
}

func TestAdamConvergesOnQuadratic(t *testing.T) {
	// minimize f(w) = (w - 5)²; Adam should walk w towards 5
	opt := Adam()

	w := 0.0
	for iter := 0; iter < 5000; iter++ {
		err := opt.Run(nil, 1, func(int) float64 { return 2 * (w - 5) },
			func(_ int, v float64) { w += v }, 0.05)
		require.NoError(t, err)
	}

	assert.InDelta(t, 5.0, w, 0.1)
}

func TestAdamFixedState(t *testing.T) {
	opt := Adam()

	run := func(size int) error {
		return opt.Run(nil, size, func(int) float64 { return 1 },
			func(int, float64) {}, 0.01)
	}

	require.NoError(t, run(3))

	// one Adam instance serves exactly one weight slice
	assert.Error(t, run(4))
}
