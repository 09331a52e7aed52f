package costfuncs

import (
	"fmt"
	"math"
)

// logs are clamped away from 0 and 1 so the cost stays finite for saturated
// outputs
const clamp float64 = 1e-7

type crossEntropy bool

// CrossEntropy returns the summed binary cross-entropy cost function, which
// implements latentlab.CostFunction. It expects outputs in (0, 1), as
// produced by the Logistic operator; it is the reconstruction term of the
// variational autoencoder's objective.
func CrossEntropy() *crossEntropy {
	c := crossEntropy(false)
	return &c
}

// NegativeLog is a proxy for CrossEntropy
func NegativeLog() *crossEntropy {
	return CrossEntropy()
}

func (c *crossEntropy) TypeString() string {
	return "cross-entropy"
}

// PrintOuts makes the cost function print outputs and targets at each call to
// Cost, for debugging small experiments.
func (c *crossEntropy) PrintOuts() *crossEntropy {
	*c = crossEntropy(true)
	return c
}

func (c *crossEntropy) NoPrint() *crossEntropy {
	*c = crossEntropy(false)
	return c
}

func clamped(v float64) float64 {
	return math.Min(math.Max(v, clamp), 1-clamp)
}

func (c *crossEntropy) Cost(outs, targets []float64) float64 {
	var sum float64
	for i := range outs {
		y := clamped(outs[i])
		sum -= targets[i]*math.Log(y) + (1-targets[i])*math.Log(1-y)
	}

	if bool(*c) {
		fmt.Println(targets, outs)
	}

	return sum
}

func (c *crossEntropy) Deriv(outs, targets []float64, start, end int, add func(int, float64)) {
	for i := start; i < end; i++ {
		y := clamped(outs[i])
		add(i-start, (y-targets[i])/(y*(1-y)))
	}
}
