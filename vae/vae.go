// Package vae assembles and operates variational autoencoders on top of the
// latentlab computation graph.
//
// The network built here is the classic single-hidden-layer VAE: an encoder
// producing a mean and log-variance head, the Gaussian reparameterization
// sampler between them, and a decoder whose final layer is squashed to (0,1)
// by a logistic activation. The cost is binary cross-entropy plus the
// sampler's KL divergence from the unit Gaussian prior, which the graph adds
// automatically.
package vae

import (
	"github.com/pkg/errors"

	lab "latentlab"
	"latentlab/costfuncs"
	"latentlab/initializers"
	"latentlab/operators"
	"latentlab/optimizers"
	"latentlab/penalties"
)

// Config describes the shape of a Model.
type Config struct {
	// InputSize is the number of values per example, e.g. the number of
	// pixels for image data. Inputs must lie in [0, 1].
	InputSize int

	// HiddenSize is the width of the encoder and decoder hidden layers
	HiddenSize int

	// LatentSize is the dimension of the latent space
	LatentSize int

	// Seed, if non-zero, fixes the sampler's random source so that runs are
	// reproducible.
	Seed int64

	// WeightDecay, if positive, puts an L2 penalty of that weight on every
	// Dense layer.
	WeightDecay float64
}

// Model is a constructed variational autoencoder.
//
// The underlying Network is exported so that callers can train, save, and
// inspect it directly; Model only adds the operations that need to know
// which Nodes play which role.
type Model struct {
	Net *lab.Network

	// Mean and LogVar are the two encoder heads
	Mean, LogVar *lab.Node

	// Latent is the sampler's Node
	Latent *lab.Node

	// Out is the reconstruction, element-wise in [0, 1]
	Out *lab.Node

	conf Config

	force   func([]float64)
	release func()
}

// Build constructs a Model from the given Config. The returned Model's
// Network is finalized; attach a "learning-rate" HyperParameter with AddHP
// before training.
func Build(conf Config) (*Model, error) {
	if conf.InputSize < 1 {
		return nil, errors.Errorf("Can't build model, InputSize must be >= 1 (got %d)\n", conf.InputSize)
	} else if conf.HiddenSize < 1 {
		return nil, errors.Errorf("Can't build model, HiddenSize must be >= 1 (got %d)\n", conf.HiddenSize)
	} else if conf.LatentSize < 1 {
		return nil, errors.Errorf("Can't build model, LatentSize must be >= 1 (got %d)\n", conf.LatentSize)
	}

	samp := operators.Sampler()
	if conf.Seed != 0 {
		samp.Seed(conf.Seed)
	}

	net := new(lab.Network)

	// every weighted layer uses Adam and Xavier initialization
	dense := func(name string, size int, from *lab.Node) *lab.Node {
		n := net.Add(name, operators.Dense(), size, from).
			Opt(optimizers.Adam()).
			Init(initializers.Xavier())
		if conf.WeightDecay > 0 {
			n.Pen(penalties.L2(conf.WeightDecay))
		}
		return n
	}

	in := net.Add("input", nil, conf.InputSize)

	enc := dense("encoder", conf.HiddenSize, in)
	enc = net.Add("encoder-relu", operators.ReLU(), conf.HiddenSize, enc)

	mean := dense("mean", conf.LatentSize, enc)
	logv := dense("log-variance", conf.LatentSize, enc)

	z := net.Add("latent", samp, conf.LatentSize, mean, logv)

	dec := dense("decoder", conf.HiddenSize, z)
	dec = net.Add("decoder-relu", operators.ReLU(), conf.HiddenSize, dec)

	out := dense("pre-reconstruction", conf.InputSize, dec)
	out = net.Add("reconstruction", operators.Logistic(), conf.InputSize, out)

	if err := net.Finalize(costfuncs.CrossEntropy().NoPrint(), out); err != nil {
		return nil, errors.Wrapf(err, "Failed to finalize network\n")
	}

	return &Model{
		Net:    net,
		Mean:   mean,
		LogVar: logv,
		Latent: z,
		Out:    out,
		conf:   conf,

		force:   func(sample []float64) { samp.Force(sample) },
		release: func() { samp.Release() },
	}, nil
}

// Conf returns the Config the Model was built with.
func (m *Model) Conf() Config {
	return m.conf
}

// Reconstruct runs the given input through the whole network, returning the
// reconstruction. The result is element-wise in [0, 1]. Because the sampler
// draws a fresh epsilon on every evaluation, repeated calls with the same
// input return (slightly) different reconstructions.
func (m *Model) Reconstruct(input []float64) ([]float64, error) {
	outs, err := m.Net.GetOutputs(input)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to evaluate network\n")
	}

	return outs, nil
}

// Generate decodes the given latent vector, returning the decoder's output.
// The encoder half of the network still runs (on a zero input), but its
// result is discarded; the sampler is forced to emit the given vector
// instead of drawing.
func (m *Model) Generate(latent []float64) ([]float64, error) {
	if len(latent) != m.conf.LatentSize {
		return nil, errors.Errorf("Latent vector has wrong size (%d != %d)\n", len(latent), m.conf.LatentSize)
	}

	m.force(latent)
	defer m.release()

	outs, err := m.Net.GetOutputs(make([]float64, m.conf.InputSize))
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to evaluate network\n")
	}

	return outs, nil
}

// Divergence returns the KL divergence of the most recently encoded
// distribution from the unit Gaussian prior.
func (m *Model) Divergence() float64 {
	return m.Net.Divergence()
}

// Train trains the underlying Network. It is shorthand for m.Net.Train.
func (m *Model) Train(args lab.TrainArgs) error {
	return m.Net.Train(args)
}
