package ica

import (
	"math"

	"github.com/pkg/errors"

	lab "latentlab"
)

// independence is an identity pass-through Operator that charges a log-cosh
// penalty on its values through the latentlab.Diverger interface. Placed on
// the encoded Node of the autoencoder, it rewards super-Gaussian (sparse)
// encodings, which is what pushes the encoder towards statistically
// independent components.
type independence struct {
	weight float64
}

// Independence returns the independence-promoting penalty Operator. Its host
// Node passes its inputs through unchanged, but the Node contributes
//
//	weight * Σ log(cosh(value_i))
//
// to the Network's total cost, and the matching gradient (weight * tanh) to
// backpropagation. A weight of zero disables the penalty without restructuring
// the network, which is how the experiment's first training phase runs.
func Independence(weight float64) *independence {
	return &independence{weight: weight}
}

// SetWeight changes the penalty weight. It may be called between training
// phases on a finalized Network.
func (ind *independence) SetWeight(weight float64) {
	ind.weight = weight
}

// Weight returns the current penalty weight.
func (ind *independence) Weight() float64 {
	return ind.weight
}

func (ind *independence) TypeString() string {
	return "independence"
}

func (ind *independence) Init(n *lab.Node) error {
	if n.NumInputs() != n.Size() {
		return errors.Errorf("Can't initialize independence Operator, total input size must equal node size (%d != %d)",
			n.NumInputs(), n.Size())
	}

	return nil
}

func (ind *independence) Save(n *lab.Node, dirPath string) error {
	return nil
}

func (ind *independence) Load(n *lab.Node, dirPath string) error {
	return nil
}

func (ind *independence) Evaluate(n *lab.Node, values []float64) error {
	inputs := n.AllInputs()
	copy(values, inputs)
	return nil
}

func (ind *independence) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	for i := start; i < end; i++ {
		add(i-start, n.Delta(i)+ind.weight*math.Tanh(n.Value(i)))
	}

	return nil
}

// Divergence returns the log-cosh penalty on the Node's current values,
// scaled by the penalty weight.
func (ind *independence) Divergence(n *lab.Node) float64 {
	var sum float64
	for i := 0; i < n.Size(); i++ {
		sum += math.Log(math.Cosh(n.Value(i)))
	}

	return ind.weight * sum
}

func (ind *independence) CanBeAdjusted(n *lab.Node) bool {
	return false
}

func (ind *independence) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	return nil
}

func (ind *independence) AddWeights(n *lab.Node) error {
	return nil
}

// The penalty weight is not part of a saved network; a loaded Model starts
// back at weight zero.
func init() {
	list := []interface{}{
		func() lab.Operator { return Independence(0) },
	}

	if err := lab.RegisterAll(list); err != nil {
		panic(err)
	}
}
