package operators

import (
	"math"

	lab "latentlab"
)

type tanh int8

// Tanh returns the hyperbolic tangent activation, which implements
// latentlab.Operator.
func Tanh() tanh {
	return tanh(0)
}

func (t tanh) TypeString() string {
	return "tanh"
}

func (t tanh) Init(n *lab.Node) error {
	return checkElementwise("tanh", n)
}

func (t tanh) Save(n *lab.Node, dirPath string) error {
	return nil
}

func (t tanh) Load(n *lab.Node, dirPath string) error {
	return nil
}

func (t tanh) Evaluate(n *lab.Node, values []float64) error {
	inputs := n.AllInputs()

	for i := range values {
		values[i] = math.Tanh(inputs[i])
	}

	return nil
}

func (t tanh) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	for i := start; i < end; i++ {
		add(i-start, n.Delta(i)*(1-n.Value(i)*n.Value(i)))
	}

	return nil
}

func (t tanh) CanBeAdjusted(n *lab.Node) bool {
	return false
}

func (t tanh) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	return nil
}

func (t tanh) AddWeights(n *lab.Node) error {
	return nil
}
