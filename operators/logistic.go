package operators

import (
	"math"

	"github.com/pkg/errors"

	lab "latentlab"
)

type logistic int8

// Logistic returns the standard logistic squashing function, bounding each
// value to (0, 1). It is the output activation of the variational
// autoencoder's decoder, and implements latentlab.Operator.
func Logistic() logistic {
	return logistic(0)
}

func (t logistic) TypeString() string {
	return "logistic"
}

func (t logistic) Init(n *lab.Node) error {
	if n.Size() != n.NumInputs() {
		return errors.Errorf("Can't initialize logistic Operator, does not have same number of values as inputs (%d != %d)", n.Size(), n.NumInputs())
	}

	return nil
}

func (t logistic) Save(n *lab.Node, dirPath string) error {
	return nil
}

func (t logistic) Load(n *lab.Node, dirPath string) error {
	return nil
}

func (t logistic) Evaluate(n *lab.Node, values []float64) error {
	inputs := n.AllInputs()

	for i := range values {
		values[i] = 0.5 + 0.5*math.Tanh(0.5*inputs[i])
	}

	return nil
}

func (t logistic) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	for i := start; i < end; i++ {
		add(i-start, n.Delta(i)*n.Value(i)*(1-n.Value(i)))
	}

	return nil
}

func (t logistic) CanBeAdjusted(n *lab.Node) bool {
	return false
}

func (t logistic) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	return nil
}

func (t logistic) AddWeights(n *lab.Node) error {
	return nil
}
