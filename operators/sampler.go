package operators

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	lab "latentlab"
)

type sampler struct {
	rng *rand.Rand

	// the most recent draw, kept for routing gradients back through the
	// reparameterization
	eps []float64

	// forced sample for generation; nil during training
	override []float64

	mean, logv *lab.Node
}

// Sampler returns the Gaussian reparameterization Operator at the center of
// the variational autoencoder. Its host Node must be given exactly two input
// Nodes of the same size as itself: a mean head and a log-variance head.
//
// Each evaluation draws a fresh standard-normal epsilon (never cached
// between calls) and produces
//
//	sample = mean + exp(0.5*logvar)*epsilon
//
// so that gradients flow only through mean and logvar. The Operator also
// implements latentlab.Diverger with the closed-form KL divergence of the
// encoded distribution from a unit Gaussian,
//
//	-0.5 * Σ (1 + logvar - mean² - exp(logvar))
//
// and injects the KL gradients into the mean and log-variance heads during
// backpropagation.
func Sampler() *sampler {
	return &sampler{rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (s *sampler) TypeString() string {
	return "gaussian-sampler"
}

// Seed fixes the random source of the sampler, returning the same Operator.
// This exists so tests and experiments can be made reproducible.
func (s *sampler) Seed(seed int64) *sampler {
	s.rng = rand.New(rand.NewSource(seed))
	return s
}

// Force makes the sampler output the given values on every evaluation instead
// of drawing, until Release is called. It is used to feed chosen latent
// vectors through the decoder half of a trained network, and must never be
// left in place during training.
func (s *sampler) Force(sample []float64) *sampler {
	s.override = sample
	return s
}

// Release undoes Force, returning the sampler to drawing fresh epsilons.
func (s *sampler) Release() *sampler {
	s.override = nil
	return s
}

func (s *sampler) Init(n *lab.Node) error {
	if n.NumInputNodes() != 2 {
		return errors.Errorf("Can't initialize sampler Operator, requires exactly 2 input Nodes (mean, logvar), got %d", n.NumInputNodes())
	}

	s.mean, s.logv = n.Input(0), n.Input(1)

	if s.mean.Size() != n.Size() || s.logv.Size() != n.Size() {
		return errors.Errorf("Can't initialize sampler Operator, input sizes must equal node size (%d, %d != %d)",
			s.mean.Size(), s.logv.Size(), n.Size())
	}

	s.eps = make([]float64, n.Size())
	return nil
}

func (s *sampler) Save(n *lab.Node, dirPath string) error {
	return nil
}

func (s *sampler) Load(n *lab.Node, dirPath string) error {
	return nil
}

func (s *sampler) Evaluate(n *lab.Node, values []float64) error {
	if s.override != nil {
		if len(s.override) != len(values) {
			return errors.Errorf("Forced sample has wrong size (%d != %d)", len(s.override), len(values))
		}

		copy(values, s.override)
		return nil
	}

	for i := range values {
		s.eps[i] = s.rng.NormFloat64()
		values[i] = s.mean.Value(i) + math.Exp(0.5*s.logv.Value(i))*s.eps[i]
	}

	return nil
}

func (s *sampler) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	size := n.Size()

	for idx := start; idx < end; idx++ {
		if idx < size {
			// mean head: reconstruction path passes straight through;
			// dKL/dmean_i = mean_i
			i := idx
			add(idx-start, n.Delta(i)+s.mean.Value(i))
		} else {
			// logvar head: d(sample)/d(logvar_i) = 0.5*(sample_i - mean_i);
			// dKL/dlogvar_i = 0.5*(exp(logvar_i) - 1)
			i := idx - size
			recon := n.Delta(i) * 0.5 * (n.Value(i) - s.mean.Value(i))
			kl := 0.5 * (math.Exp(s.logv.Value(i)) - 1)
			add(idx-start, recon+kl)
		}
	}

	return nil
}

// Divergence returns the KL divergence of the encoded diagonal-Gaussian
// distribution from the unit Gaussian prior. It is zero exactly when the mean
// and log-variance are both zero everywhere.
func (s *sampler) Divergence(n *lab.Node) float64 {
	var sum float64
	for i := 0; i < n.Size(); i++ {
		m, lv := s.mean.Value(i), s.logv.Value(i)
		sum += 1 + lv - m*m - math.Exp(lv)
	}

	return -0.5 * sum
}

func (s *sampler) CanBeAdjusted(n *lab.Node) bool {
	return false
}

func (s *sampler) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	return nil
}

func (s *sampler) AddWeights(n *lab.Node) error {
	return nil
}
