package operators

import (
	lab "latentlab"
)

type identity int8

// Identity returns an Operator that passes its inputs through unchanged.
func Identity() identity {
	return identity(0)
}

func (t identity) TypeString() string {
	return "identity"
}

func (t identity) Init(n *lab.Node) error {
	return checkElementwise("identity", n)
}

func (t identity) Save(n *lab.Node, dirPath string) error {
	return nil
}

func (t identity) Load(n *lab.Node, dirPath string) error {
	return nil
}

func (t identity) Evaluate(n *lab.Node, values []float64) error {
	copy(values, n.AllInputs())
	return nil
}

func (t identity) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	for i := start; i < end; i++ {
		add(i-start, n.Delta(i))
	}

	return nil
}

func (t identity) CanBeAdjusted(n *lab.Node) bool {
	return false
}

func (t identity) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	return nil
}

func (t identity) AddWeights(n *lab.Node) error {
	return nil
}
