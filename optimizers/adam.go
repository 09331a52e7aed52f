package optimizers

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"

	lab "latentlab"
)

type adam struct {
	Beta1, Beta2 float64
	Epsilon      float64

	// first and second moment estimates, sized lazily on the first Run
	M, V []float64
	T    int
}

// Adam returns the Adam optimizer with the usual defaults (β1=0.9, β2=0.999,
// ε=1e-8), which implements latentlab.Optimizer. The decay rates can be
// changed with Betas.
func Adam() *adam {
	return &adam{Beta1: 0.9, Beta2: 0.999, Epsilon: 1e-8}
}

func (a *adam) TypeString() string {
	return "adam"
}

// Betas sets the exponential decay rates of the two moment estimates,
// returning the same Optimizer.
func (a *adam) Betas(beta1, beta2 float64) *adam {
	a.Beta1, a.Beta2 = beta1, beta2
	return a
}

func (a *adam) Run(n *lab.Node, size int, grad func(int) float64, add func(int, float64), learningRate float64) error {
	if a.M == nil {
		a.M = make([]float64, size)
		a.V = make([]float64, size)
	} else if len(a.M) != size {
		return errors.Errorf("Adam state does not match number of weights (%d != %d); one instance per Node", len(a.M), size)
	}

	a.T++
	c1 := 1 - math.Pow(a.Beta1, float64(a.T))
	c2 := 1 - math.Pow(a.Beta2, float64(a.T))

	for i := 0; i < size; i++ {
		g := grad(i)

		a.M[i] = a.Beta1*a.M[i] + (1-a.Beta1)*g
		a.V[i] = a.Beta2*a.V[i] + (1-a.Beta2)*g*g

		mHat := a.M[i] / c1
		vHat := a.V[i] / c2

		add(i, -learningRate*mHat/(math.Sqrt(vHat)+a.Epsilon))
	}

	return nil
}

func (a *adam) Save(n *lab.Node, dirPath string) error {
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Failed to create directory %q\n", dirPath)
	}

	f, err := os.Create(dirPath + "/adam.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q in %q\n", "adam.txt", dirPath)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	if err = enc.Encode(a); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file\n")
	}

	return nil
}

func (a *adam) Load(n *lab.Node, dirPath string) error {
	f, err := os.Open(dirPath + "/adam.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to open file %q in %q\n", "adam.txt", dirPath)
	}

	defer f.Close()

	dec := json.NewDecoder(f)
	if err = dec.Decode(a); err != nil {
		return errors.Wrapf(err, "Failed to decode JSON from file\n")
	}

	return nil
}
