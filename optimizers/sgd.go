// Package optimizers provides the Optimizers usable with latentlab Networks.
package optimizers

import (
	lab "latentlab"
)

type sgd int8

// SGD returns plain stochastic gradient descent, which implements
// latentlab.Optimizer. SGD is the package default.
func SGD() sgd {
	return sgd(0)
}

func (g sgd) TypeString() string {
	return "sgd"
}

func (g sgd) Run(n *lab.Node, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {
	for i := 0; i < size; i++ {
		add(i, -1*learningRate*grad(i))
	}

	return nil
}

func (g sgd) Save(n *lab.Node, dirPath string) error {
	return nil
}

func (g sgd) Load(n *lab.Node, dirPath string) error {
	return nil
}
