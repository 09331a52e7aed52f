package operators

import (
	"math"

	lab "latentlab"
)

type softmax int8

// Softmax returns the softmax function as a latentlab.Operator, for use as a
// classifier head over the prepared corpus.
func Softmax() softmax {
	return softmax(0)
}

func (t softmax) TypeString() string {
	return "softmax"
}

func (t softmax) Init(n *lab.Node) error {
	return checkElementwise("softmax", n)
}

func (t softmax) Save(n *lab.Node, dirPath string) error {
	return nil
}

func (t softmax) Load(n *lab.Node, dirPath string) error {
	return nil
}

func (t softmax) Evaluate(n *lab.Node, values []float64) error {
	inputs := n.AllInputs()

	// shift by the max input to keep the exponentials in range
	max := inputs[0]
	for _, in := range inputs {
		if in > max {
			max = in
		}
	}

	var sum float64
	for i := range values {
		values[i] = math.Exp(inputs[i] - max)
		sum += values[i]
	}

	for i := range values {
		values[i] /= sum
	}

	return nil
}

func (t softmax) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	// dC/dx_i = v_i * (δ_i - Σ_j δ_j v_j)
	var dot float64
	for j := 0; j < n.Size(); j++ {
		dot += n.Delta(j) * n.Value(j)
	}

	for i := start; i < end; i++ {
		add(i-start, n.Value(i)*(n.Delta(i)-dot))
	}

	return nil
}

func (t softmax) CanBeAdjusted(n *lab.Node) bool {
	return false
}

func (t softmax) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	return nil
}

func (t softmax) AddWeights(n *lab.Node) error {
	return nil
}
