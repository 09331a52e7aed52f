package initializers

import (
	"math"
	"math/rand"

	lab "latentlab"
)

type xavier struct {
	factor float64
}

// Xavier returns the Glorot uniform Initializer: weights are drawn uniformly
// from ±sqrt(6 / (fanIn + fanOut)), where the fans are taken from the Node's
// number of inputs and size. An extra multiplicative factor can be set with
// Factor (default "varscl-factor").
func Xavier() *xavier {
	return &xavier{defaultValue["varscl-factor"]}
}

// Factor scales the sampling bound, returning the same Initializer.
func (x *xavier) Factor(factor float64) *xavier {
	x.factor = factor
	return x
}

func (x *xavier) Set(n *lab.Node, ws []float64) {
	bound := x.factor * math.Sqrt(6/float64(n.NumInputs()+n.Size()))

	for i := range ws {
		ws[i] = (2*rand.Float64() - 1) * bound
	}
}
