package ica

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	lab "latentlab"
	"latentlab/costfuncs"
)

func TestWhitenerIdentityCovariance(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	// two correlated channels
	const n = 4000
	a := make([]float64, n)
	b := make([]float64, n)
	for i := 0; i < n; i++ {
		x := rng.NormFloat64()
		y := rng.NormFloat64()
		a[i] = 2*x + 1
		b[i] = x + 0.5*y - 3
	}

	var wh Whitener
	require.NoError(t, wh.Fit([][]float64{a, b}))

	white, err := wh.Transform([][]float64{a, b})
	require.NoError(t, err)
	require.Len(t, white, 2)

	data := mat.NewDense(n, 2, nil)
	for i := 0; i < n; i++ {
		data.Set(i, 0, white[0][i])
		data.Set(i, 1, white[1][i])
	}

	cov := mat.NewSymDense(2, nil)
	stat.CovarianceMatrix(cov, data, nil)

	// whitened data has (near) identity covariance and zero mean
	assert.InDelta(t, 1, cov.At(0, 0), 0.05)
	assert.InDelta(t, 1, cov.At(1, 1), 0.05)
	assert.InDelta(t, 0, cov.At(0, 1), 0.05)

	assert.InDelta(t, 0, stat.Mean(white[0], nil), 1e-9)
	assert.InDelta(t, 0, stat.Mean(white[1], nil), 1e-9)
}

func TestWhitenerRejectsDependentChannels(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}

	var wh Whitener
	assert.Error(t, wh.Fit([][]float64{a, a}))
}

func TestWhitenerErrors(t *testing.T) {
	var wh Whitener

	// transforming before fitting
	_, err := wh.Transform([][]float64{{1, 2}})
	assert.Error(t, err)

	// mismatched channel lengths
	assert.Error(t, wh.Fit([][]float64{{1, 2, 3}, {1, 2}}))

	// no channels
	assert.Error(t, wh.Fit(nil))
}

func TestMix(t *testing.T) {
	s1 := []float64{1, 0, -1}
	s2 := []float64{0, 2, 0}

	// identity mixing returns the sources
	eye := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	mixed, err := Mix(eye, [][]float64{s1, s2})
	require.NoError(t, err)
	assert.Equal(t, s1, mixed[0])
	assert.Equal(t, s2, mixed[1])

	// a general matrix combines them row-wise
	m := mat.NewDense(2, 2, []float64{0.5, 0.5, 1, -1})
	mixed, err = Mix(m, [][]float64{s1, s2})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*1+0.5*0, mixed[0][0], 1e-12)
	assert.InDelta(t, 1*0-1*2, mixed[1][1], 1e-12)

	// column count must match the number of sources
	bad := mat.NewDense(2, 3, nil)
	_, err = Mix(bad, [][]float64{s1, s2})
	assert.Error(t, err)
}

func TestIndependenceOperator(t *testing.T) {
	ind := Independence(0.1)

	net := new(lab.Network)
	in := net.Add("in", nil, 3)
	z := net.Add("components", ind, 3, in)
	require.NoError(t, net.Finalize(costfuncs.MSE().NoPrint(), z))

	// pass-through
	outs, err := net.GetOutputs([]float64{1, -2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -2, 0.5}, outs)

	// log-cosh penalty, scaled by the weight
	want := 0.1 * (math.Log(math.Cosh(1)) + math.Log(math.Cosh(-2)) + math.Log(math.Cosh(0.5)))
	assert.InDelta(t, want, net.Divergence(), 1e-12)

	// zero at zero, and disabled entirely at weight zero
	_, err = net.GetOutputs([]float64{0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0, net.Divergence(), 1e-12)

	ind.SetWeight(0)
	_, err = net.GetOutputs([]float64{1, -2, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0, net.Divergence(), 1e-12)
}

func TestBuild(t *testing.T) {
	m, err := Build(Config{Channels: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, m.Net.InputSize())
	assert.Equal(t, 2, m.Net.OutputSize())
	assert.Equal(t, 0.0, m.IndependenceWeight())

	m.SetIndependenceWeight(0.25)
	assert.Equal(t, 0.25, m.IndependenceWeight())

	_, err = Build(Config{Channels: 0})
	assert.Error(t, err)
}

func TestComponentsShape(t *testing.T) {
	m, err := Build(Config{Channels: 2})
	require.NoError(t, err)

	channels := [][]float64{{0.1, 0.2, 0.3}, {-0.1, 0, 0.1}}

	comps, err := m.Components(channels)
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Len(t, comps[0], 3)

	// wrong channel count
	_, err = m.Components([][]float64{{1, 2}})
	assert.Error(t, err)
}

func TestDataset(t *testing.T) {
	channels := [][]float64{{1, 2}, {3, 4}}

	data, err := Dataset(channels, 1)
	require.NoError(t, err)

	d, err := data.Get(0)
	require.NoError(t, err)

	// each datum is one time step across channels, as both input and target
	assert.Equal(t, []float64{1, 3}, d.Inputs)
	assert.Equal(t, d.Inputs, d.Outputs)
}
