package ica

import (
	"github.com/pkg/errors"

	lab "latentlab"
	"latentlab/costfuncs"
	"latentlab/initializers"
	"latentlab/operators"
	"latentlab/optimizers"
)

// Config describes the shape of a Model.
type Config struct {
	// Channels is the number of observed (and recovered) signals
	Channels int
}

// Model is a linear autoencoder for component separation. Its encoder and
// decoder are single bias-free Dense layers, so that -- on whitened data --
// the identity map is exactly representable and the independence penalty
// has a rotation's worth of freedom to exploit.
type Model struct {
	Net *lab.Network

	// Encoded is the Node holding the recovered components
	Encoded *lab.Node

	// Out is the reconstruction of the input
	Out *lab.Node

	conf Config

	setWeight func(float64)
	weight    func() float64
}

// Build constructs a Model from the given Config. The returned Model's
// Network is finalized; attach a "learning-rate" HyperParameter with AddHP
// before training. The independence penalty starts at weight zero, so
// initial training only pursues reconstruction.
func Build(conf Config) (*Model, error) {
	if conf.Channels < 1 {
		return nil, errors.Errorf("Can't build model, Channels must be >= 1 (got %d)\n", conf.Channels)
	}

	ind := Independence(0)

	net := new(lab.Network)

	in := net.Add("input", nil, conf.Channels)
	enc := net.Add("encoder", operators.Dense().NoBias(), conf.Channels, in).
		Opt(optimizers.SGD()).Init(initializers.Xavier())
	z := net.Add("components", ind, conf.Channels, enc)
	out := net.Add("decoder", operators.Dense().NoBias(), conf.Channels, z).
		Opt(optimizers.SGD()).Init(initializers.Xavier())

	if err := net.Finalize(costfuncs.MSE().NoPrint(), out); err != nil {
		return nil, errors.Wrapf(err, "Failed to finalize network\n")
	}

	return &Model{
		Net:     net,
		Encoded: z,
		Out:     out,
		conf:    conf,

		setWeight: ind.SetWeight,
		weight:    ind.Weight,
	}, nil
}

// Conf returns the Config the Model was built with.
func (m *Model) Conf() Config {
	return m.conf
}

// SetIndependenceWeight changes the weight of the independence penalty. The
// intended use is two training phases: a first with weight zero, training
// the autoencoder to the identity map, then a second with a small positive
// weight to rotate the encoding towards independent components.
func (m *Model) SetIndependenceWeight(weight float64) {
	m.setWeight(weight)
}

// IndependenceWeight returns the current weight of the independence penalty.
func (m *Model) IndependenceWeight() float64 {
	return m.weight()
}

// Train trains the underlying Network. It is shorthand for m.Net.Train.
func (m *Model) Train(args lab.TrainArgs) error {
	return m.Net.Train(args)
}

// Dataset packs per-channel sample slices into a DataSupplier that feeds
// each time step's cross-channel vector as both input and target, which is
// what autoencoder training wants.
func Dataset(channels [][]float64, batchSize int) (lab.DataSupplier, error) {
	data, err := channelMatrix(channels)
	if err != nil {
		return nil, err
	}

	numSamples, numChannels := data.Dims()

	ds := make([][][]float64, numSamples)
	for r := range ds {
		v := make([]float64, numChannels)
		for c := range v {
			v[c] = data.At(r, c)
		}
		ds[r] = [][]float64{v, v}
	}

	return lab.Data(ds, batchSize)
}

// Components runs the given observations through the encoder, returning the
// recovered component signals, one slice per channel.
func (m *Model) Components(channels [][]float64) ([][]float64, error) {
	data, err := channelMatrix(channels)
	if err != nil {
		return nil, err
	}

	numSamples, numChannels := data.Dims()
	if numChannels != m.conf.Channels {
		return nil, errors.Errorf("Wrong number of channels (%d != %d)\n", numChannels, m.conf.Channels)
	}

	comps := make([][]float64, numChannels)
	for c := range comps {
		comps[c] = make([]float64, numSamples)
	}

	in := make([]float64, numChannels)
	for r := 0; r < numSamples; r++ {
		for c := range in {
			in[c] = data.At(r, c)
		}

		if _, err := m.Net.GetOutputs(in); err != nil {
			return nil, errors.Wrapf(err, "Failed to evaluate network at sample %d\n", r)
		}

		for c, v := range m.Encoded.Values() {
			comps[c][r] = v
		}
	}

	return comps, nil
}
