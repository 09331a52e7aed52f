// relus.go contains the activation functions derived from the rectified
// linear unit: ReLU and Leaky ReLU.
package operators

import (
	"math"

	"github.com/pkg/errors"

	lab "latentlab"
)

func checkElementwise(name string, n *lab.Node) error {
	if n.Size() != n.NumInputs() {
		return errors.Errorf("Can't initialize %s Operator, does not have same number of values as inputs (%d != %d)", name, n.Size(), n.NumInputs())
	}

	return nil
}

// ****************************************
// ReLU
// ****************************************

type relu int8

// ReLU returns the standard rectified linear unit, which implements
// latentlab.Operator.
func ReLU() relu {
	return relu(0)
}

func (t relu) TypeString() string {
	return "relu"
}

func (t relu) Init(n *lab.Node) error {
	return checkElementwise("relu", n)
}

func (t relu) Save(n *lab.Node, dirPath string) error {
	return nil
}

func (t relu) Load(n *lab.Node, dirPath string) error {
	return nil
}

func (t relu) Evaluate(n *lab.Node, values []float64) error {
	inputs := n.AllInputs()

	for i := range values {
		values[i] = math.Max(inputs[i], 0)
	}

	return nil
}

func (t relu) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	for i := start; i < end; i++ {
		if n.InputValue(i) > 0 {
			add(i-start, n.Delta(i))
		}
	}

	return nil
}

func (t relu) CanBeAdjusted(n *lab.Node) bool {
	return false
}

func (t relu) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	return nil
}

func (t relu) AddWeights(n *lab.Node) error {
	return nil
}

// ****************************************
// Leaky ReLU
// ****************************************

type lrelu struct {
	Alpha float64
}

// LeakyReLU returns a 'leaky' ReLU, where the slope for negative inputs is
// given by alpha.
func LeakyReLU(alpha float64) *lrelu {
	return &lrelu{Alpha: alpha}
}

func (t *lrelu) TypeString() string {
	return "leaky-relu"
}

func (t *lrelu) Init(n *lab.Node) error {
	return checkElementwise("leaky-relu", n)
}

func (t *lrelu) Save(n *lab.Node, dirPath string) error {
	return saveJSON(t, dirPath)
}

func (t *lrelu) Load(n *lab.Node, dirPath string) error {
	return loadJSON(t, dirPath)
}

func (t *lrelu) Evaluate(n *lab.Node, values []float64) error {
	inputs := n.AllInputs()

	for i := range values {
		if inputs[i] < 0 {
			values[i] = t.Alpha * inputs[i]
		} else {
			values[i] = inputs[i]
		}
	}

	return nil
}

func (t *lrelu) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	for i := start; i < end; i++ {
		if n.InputValue(i) < 0 {
			add(i-start, t.Alpha*n.Delta(i))
		} else {
			add(i-start, n.Delta(i))
		}
	}

	return nil
}

func (t *lrelu) CanBeAdjusted(n *lab.Node) bool {
	return false
}

func (t *lrelu) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	return nil
}

func (t *lrelu) AddWeights(n *lab.Node) error {
	return nil
}
