package operators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	lab "latentlab"
	"latentlab/costfuncs"

	// installs the default Optimizer that Finalize hands to Dense nodes
	// without an explicit Opt
	_ "latentlab/optimizers"
)

// fixed is a test Initializer that copies a literal weight slice.
type fixed []float64

func (f fixed) Set(n *lab.Node, ws []float64) {
	copy(ws, f)
}

func TestDenseForward(t *testing.T) {
	net := new(lab.Network)
	in := net.Add("in", nil, 2)

	// one unit: w = {2, 3}, bias = 0.5 (the trailing weight, times bias
	// value 1)
	out := net.Add("out", Dense(), 1, in).Init(fixed{2, 3, 0.5})

	require.NoError(t, net.Finalize(costfuncs.MSE().NoPrint(), out))

	outs, err := net.GetOutputs([]float64{1, -1})
	require.NoError(t, err)
	assert.InDelta(t, 2*1+3*(-1)+0.5, outs[0], 1e-12)
}

func TestDenseNoBias(t *testing.T) {
	net := new(lab.Network)
	in := net.Add("in", nil, 2)
	out := net.Add("out", Dense().NoBias(), 2, in).Init(fixed{1, 0, 0, 1})

	require.NoError(t, net.Finalize(costfuncs.MSE().NoPrint(), out))

	// identity weights, no bias: exact pass-through
	outs, err := net.GetOutputs([]float64{0.25, -4})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, -4}, outs)
}

func TestLogistic(t *testing.T) {
	net := new(lab.Network)
	in := net.Add("in", nil, 3)
	out := net.Add("out", Logistic(), 3, in)

	require.NoError(t, net.Finalize(costfuncs.MSE().NoPrint(), out))

	outs, err := net.GetOutputs([]float64{-40, 0, 40})
	require.NoError(t, err)

	for _, v := range outs {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}

	assert.InDelta(t, 0.5, outs[1], 1e-12)
	assert.InDelta(t, 1/(1+math.Exp(-40)), outs[2], 1e-12)
}

func TestReLU(t *testing.T) {
	net := new(lab.Network)
	in := net.Add("in", nil, 4)
	out := net.Add("out", ReLU(), 4, in)

	require.NoError(t, net.Finalize(costfuncs.MSE().NoPrint(), out))

	outs, err := net.GetOutputs([]float64{-2, -0.5, 0, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 3}, outs)
}

func TestSoftmaxSumsToOne(t *testing.T) {
	net := new(lab.Network)
	in := net.Add("in", nil, 4)
	out := net.Add("out", Softmax(), 4, in)

	require.NoError(t, net.Finalize(costfuncs.MSE().NoPrint(), out))

	// the shift by the max must keep large inputs finite
	outs, err := net.GetOutputs([]float64{1000, 999, -2, 0})
	require.NoError(t, err)

	sum := 0.0
	for _, v := range outs {
		require.False(t, math.IsNaN(v))
		sum += v
	}

	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.Greater(t, outs[0], outs[1])
}

// samplerNet builds mean/logvar input heads feeding a sampler of the given
// size.
func samplerNet(t *testing.T, size int, samp lab.Operator) (*lab.Network, *lab.Node) {
	t.Helper()

	net := new(lab.Network)
	mean := net.Add("mean", nil, size)
	logv := net.Add("log-variance", nil, size)
	z := net.Add("latent", samp, size, mean, logv)

	require.NoError(t, net.Finalize(costfuncs.MSE().NoPrint(), z))
	return net, z
}

func TestSamplerStochastic(t *testing.T) {
	net, _ := samplerNet(t, 4, Sampler())

	in := []float64{1, 2, 3, 4, 0, 0, 0, 0}

	a, err := net.GetOutputs(in)
	require.NoError(t, err)
	b, err := net.GetOutputs(in)
	require.NoError(t, err)

	// two draws with the same mean and log-variance must differ
	assert.NotEqual(t, a, b)
}

func TestSamplerSeeded(t *testing.T) {
	const seed = 17

	net, _ := samplerNet(t, 3, Sampler().Seed(seed))

	mean := []float64{1, -1, 0.5}
	logv := []float64{0, 2, -3}

	outs, err := net.GetOutputs(append(append([]float64{}, mean...), logv...))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(seed))
	for i := range outs {
		eps := rng.NormFloat64()
		assert.InDelta(t, mean[i]+math.Exp(0.5*logv[i])*eps, outs[i], 1e-12)
	}
}

func TestSamplerForce(t *testing.T) {
	samp := Sampler()
	net, _ := samplerNet(t, 2, samp)

	forced := []float64{0.25, -0.75}
	samp.Force(forced)

	outs, err := net.GetOutputs([]float64{5, 5, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, forced, outs)

	// forced outputs are deterministic
	again, err := net.GetOutputs([]float64{5, 5, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, outs, again)

	samp.Release()

	outs, err = net.GetOutputs([]float64{5, 5, 1, 1})
	require.NoError(t, err)
	assert.NotEqual(t, forced, outs)
}

func TestSamplerDivergence(t *testing.T) {
	net, _ := samplerNet(t, 3, Sampler())

	// KL is zero exactly at the unit Gaussian
	_, err := net.GetOutputs([]float64{0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, net.Divergence(), 1e-12)

	// and strictly positive anywhere else
	_, err = net.GetOutputs([]float64{0.1, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	assert.Greater(t, net.Divergence(), 0.0)

	_, err = net.GetOutputs([]float64{0, 0, 0, 0, -0.2, 0.3})
	require.NoError(t, err)
	assert.Greater(t, net.Divergence(), 0.0)
}

func TestDivergenceBeforeFinalize(t *testing.T) {
	net := new(lab.Network)
	mean := net.Add("mean", nil, 3)
	logv := net.Add("log-variance", nil, 3)
	net.Add("latent", Sampler(), 3, mean, logv)

	// the sampler's state only exists once the Network is finalized
	assert.NotPanics(t, func() {
		assert.Zero(t, net.Divergence())
	})
}

func TestSamplerWrongShape(t *testing.T) {
	{
		// one input head instead of two
		net := new(lab.Network)
		mean := net.Add("mean", nil, 3)
		z := net.Add("latent", Sampler(), 3, mean)
		assert.Error(t, net.Finalize(costfuncs.MSE().NoPrint(), z))
	}

	{
		// head sizes must match the node size
		net := new(lab.Network)
		mean := net.Add("mean", nil, 3)
		logv := net.Add("log-variance", nil, 2)
		z := net.Add("latent", Sampler(), 3, mean, logv)
		assert.Error(t, net.Finalize(costfuncs.MSE().NoPrint(), z))
	}
}

// TestSamplerGradients checks the backward pass against the numeric gradient
// of the total cost (reconstruction plus KL) w.r.t. the mean and log-variance
// heads, holding the drawn epsilon fixed.
func TestSamplerGradients(t *testing.T) {
	const size = 2

	mean := []float64{0.3, -0.6}
	logv := []float64{0.1, -0.4}
	targets := []float64{0.5, 0.25}

	// fix the sample so the numeric and analytic passes see the same draw
	eps := []float64{0.8, -1.3}

	cost := func(mean, logv []float64) float64 {
		c := 0.0
		for i := 0; i < size; i++ {
			z := mean[i] + math.Exp(0.5*logv[i])*eps[i]
			d := z - targets[i]
			c += 0.5 * d * d
			c += -0.5 * (1 + logv[i] - mean[i]*mean[i] - math.Exp(logv[i]))
		}
		return c
	}

	// analytic gradients, as the backward pass computes them
	for i := 0; i < size; i++ {
		z := mean[i] + math.Exp(0.5*logv[i])*eps[i]
		outDelta := z - targets[i]

		gradMean := outDelta + mean[i]
		gradLogv := outDelta*0.5*(z-mean[i]) + 0.5*(math.Exp(logv[i])-1)

		const h = 1e-6

		up := append([]float64{}, mean...)
		down := append([]float64{}, mean...)
		up[i] += h
		down[i] -= h
		numMean := (cost(up, logv) - cost(down, logv)) / (2 * h)

		up = append([]float64{}, logv...)
		down = append([]float64{}, logv...)
		up[i] += h
		down[i] -= h
		numLogv := (cost(mean, up) - cost(mean, down)) / (2 * h)

		assert.InDelta(t, numMean, gradMean, 1e-5)
		assert.InDelta(t, numLogv, gradLogv, 1e-5)
	}
}
