package initializers

import (
	lab "latentlab"
)

type random struct {
	rng RNG
}

// Random returns an Initializer that fills weights with samples from the
// given RNG, independent of the dimensions of the Node. Exact zeros are
// discarded and redrawn so that no weight starts dead.
//
// Random(Uniform()) is the package default Initializer.
func Random(rng RNG) *random {
	return &random{rng}
}

func (r *random) Set(n *lab.Node, ws []float64) {
	for i := 0; i < len(ws); i++ {
		w := r.rng.Gen()
		if w == 0 {
			// discard and try again
			i--
			continue
		}
		ws[i] = w
	}
}
