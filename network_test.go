package latentlab

import (
	"math"
	"testing"

	pkgerrs "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scale is a weightless test Operator: values[i] = W * inputs[i].
type scale struct {
	W float64
}

func (s scale) TypeString() string { return "test-scale" }

func (s scale) Init(n *Node) error {
	if n.NumInputs() != n.Size() {
		return SizeMismatchError{n.Size(), n.NumInputs(), "inputs"}
	}
	return nil
}

func (s scale) Save(n *Node, dirPath string) error { return nil }

func (s scale) Load(n *Node, dirPath string) error { return nil }

func (s scale) Evaluate(n *Node, values []float64) error {
	for i := range values {
		values[i] = s.W * n.InputValue(i)
	}
	return nil
}

func (s scale) InputDeltas(n *Node, add func(int, float64), start, end int) error {
	for i := start; i < end; i++ {
		add(i-start, s.W*n.Delta(i))
	}
	return nil
}

func (s scale) CanBeAdjusted(n *Node) bool { return false }

func (s scale) Adjust(n *Node, lr float64, save bool) error { return nil }

func (s scale) AddWeights(n *Node) error { return nil }

// sqCost is half the summed squared error, defined here so that root-package
// tests do not import subpackages.
type sqCost struct{}

func (c sqCost) TypeString() string { return "test-squared" }

func (c sqCost) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		d := outs[i] - targets[i]
		sum += 0.5 * d * d
	}
	return sum
}

func (c sqCost) Deriv(outs, targets []float64, start, end int, add func(int, float64)) {
	for i := start; i < end; i++ {
		add(i-start, outs[i]-targets[i])
	}
}

// nanCost reports a NaN cost on every sample.
type nanCost struct{ sqCost }

func (c nanCost) Cost(outs, targets []float64) float64 { return math.NaN() }

func TestAddValidation(t *testing.T) {
	{
		net := new(Network)
		net.Add("in", nil, 0)
		assert.Error(t, net.Error())
	}

	{
		net := new(Network)
		net.Add("", nil, 1)
		assert.Error(t, net.Error())
	}

	{
		net := new(Network)
		in := net.Add("in", nil, 2)
		net.Add("in", scale{1}, 2, in)
		assert.Error(t, net.Error())
	}

	{
		// a non-input Node must have an Operator
		net := new(Network)
		in := net.Add("in", nil, 2)
		net.Add("out", nil, 2, in)
		assert.Error(t, net.Error())
	}

	{
		// construction keeps the first error; chaining off a failed Add must
		// not panic
		net := new(Network)
		bad := net.Add("in", nil, -1)
		bad.AddHP("learning-rate", nil)
		first := net.Error()
		require.Error(t, first)
		assert.Equal(t, first, net.Error())
	}
}

func TestForwardEvaluation(t *testing.T) {
	net := new(Network)
	in := net.Add("in", nil, 3)
	mid := net.Add("double", scale{2}, 3, in)
	net.Add("negate", scale{-1}, 3, mid)

	require.NoError(t, net.Finalize(sqCost{}, net.NodeByName("negate")))

	outs, err := net.GetOutputs([]float64{1, -2, 0.5})
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, 4, -1}, outs)
}

func TestFinalizeValidation(t *testing.T) {
	{
		// all Nodes must affect the outputs
		net := new(Network)
		in := net.Add("in", nil, 2)
		out := net.Add("out", scale{1}, 2, in)
		net.Add("dangling", scale{1}, 2, in)
		assert.Error(t, net.Finalize(sqCost{}, out))
	}

	{
		// finalizing twice is an error
		net := new(Network)
		in := net.Add("in", nil, 2)
		out := net.Add("out", scale{1}, 2, in)
		require.NoError(t, net.Finalize(sqCost{}, out))
		assert.Error(t, net.Finalize(sqCost{}, out))
	}

	{
		// using the Network before finalizing is an error
		net := new(Network)
		net.Add("in", nil, 2)
		_, err := net.GetOutputs([]float64{1, 2})
		assert.Equal(t, ErrNetNotFinalized, pkgerrs.Cause(err))
	}
}

func TestDeltas(t *testing.T) {
	net := new(Network)
	in := net.Add("in", nil, 2)
	out := net.Add("out", scale{3}, 2, in)
	require.NoError(t, net.Finalize(sqCost{}, out))

	_, err := net.GetOutputs([]float64{1, 2})
	require.NoError(t, err)

	targets := []float64{2, 2}
	require.NoError(t, net.getDeltas(targets))

	// outputs are {3, 6}; output deltas are outs - targets
	assert.InDelta(t, 1.0, out.Delta(0), 1e-12)
	assert.InDelta(t, 4.0, out.Delta(1), 1e-12)

	// the scale Operator multiplies deltas on the way back
	assert.InDelta(t, 3.0, in.Delta(0), 1e-12)
	assert.InDelta(t, 12.0, in.Delta(1), 1e-12)
}

func TestTrainAbortsOnNonFiniteCost(t *testing.T) {
	net := new(Network)
	in := net.Add("in", nil, 1)
	out := net.Add("out", scale{1}, 1, in)
	require.NoError(t, net.Finalize(nanCost{}, out))

	data, err := Data([][][]float64{{{1}, {1}}}, 1)
	require.NoError(t, err)

	err = net.Train(TrainArgs{
		TrainData:    data,
		RunCondition: TrainUntil(10),
	})
	require.Error(t, err)
	assert.Equal(t, ErrNonFiniteCost, pkgerrs.Cause(err))
}

func TestDataSupplier(t *testing.T) {
	ds := [][][]float64{
		{{0}, {0}},
		{{1}, {1}},
		{{2}, {2}},
	}

	data, err := Data(ds, 2)
	require.NoError(t, err)

	// Get cycles through the dataset by iteration
	for iter := 0; iter < 7; iter++ {
		d, err := data.Get(iter)
		require.NoError(t, err)
		assert.Equal(t, float64(iter%3), d.Inputs[0])
	}

	// batches end every 2 iterations
	assert.False(t, data.BatchEnded(0))
	assert.True(t, data.BatchEnded(1))
	assert.False(t, data.BatchEnded(2))
	assert.True(t, data.BatchEnded(3))

	// testing runs each sample exactly once
	assert.False(t, data.DoneTesting(2))
	assert.True(t, data.DoneTesting(3))

	_, err = Data(nil, 1)
	assert.Error(t, err)
	_, err = Data(ds, 0)
	assert.Error(t, err)
}

func TestHPLookup(t *testing.T) {
	net := new(Network)
	in := net.Add("in", nil, 1)
	out := net.Add("out", scale{1}, 1, in)

	net.AddHP("learning-rate", constHP(0.1))
	out.AddHP("learning-rate", constHP(0.5))

	require.NoError(t, net.Finalize(sqCost{}, out))

	// Node-level HyperParameters shadow Network-level ones
	assert.Equal(t, 0.5, out.HP("learning-rate"))
	assert.Equal(t, 0.1, in.HP("learning-rate"))

	assert.Panics(t, func() { in.HP("no-such-hp") })
}

// constHP is a fixed-value test HyperParameter.
type constHP float64

func (c constHP) TypeString() string { return "test-const" }

func (c constHP) Value(iter int) float64 { return float64(c) }

func (c constHP) Save(n *Node, dirPath string) error { return nil }

func (c constHP) Load(dirPath string) error { return nil }
