// Package costfuncs provides the CostFunctions usable with latentlab
// Networks.
package costfuncs

import (
	"fmt"
)

type mse bool

// MSE returns the summed squared error cost function, which implements
// latentlab.CostFunction.
func MSE() *mse {
	m := mse(false)
	return &m
}

// L2 is a proxy for MSE
func L2() *mse {
	return MSE()
}

func (m *mse) TypeString() string {
	return "mse"
}

// PrintOuts makes the cost function print outputs and targets at each call to
// Cost, for debugging small experiments.
func (m *mse) PrintOuts() *mse {
	*m = mse(true)
	return m
}

func (m *mse) NoPrint() *mse {
	*m = mse(false)
	return m
}

func (m *mse) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		d := outs[i] - targets[i]
		sum += 0.5 * d * d
	}

	if bool(*m) {
		fmt.Println(targets, outs)
	}

	return sum
}

func (m *mse) Deriv(outs, targets []float64, start, end int, add func(int, float64)) {
	for i := start; i < end; i++ {
		add(i-start, outs[i]-targets[i])
	}
}
