// Package latentlab provides a small framework for building and training the
// feed-forward networks used by this repository's experiments: a variational
// autoencoder on images, an autoencoder-based independent component analysis
// on audio, and classifiers over a prepared text corpus.
//
// # Creating Networks
//
// The center of all training is the Network:
//
//	net := new(lab.Network)
//
// For brevity, latentlab is abbreviated 'lab'.
//
// Networks consist of graphs of Nodes, which are analogous to the typical
// layer or activation function. Each Node has an Operator, which determines
// its values and the backpropagation through it. Operators with weights (such
// as Dense) additionally require Optimizers and Initializers. All Operators
// can be found in the subpackage "operators", all Optimizers in "optimizers",
// and so forth, for other types.
//
// The standard procedure for adding Nodes to the Network is:
//
//	in := net.Add("inputs", nil, inputSize)
//	hl := net.Add("hidden", operators.Dense(), 100, in)
//	hl.Opt(optimizers.Adam())
//
//	if net.Error() != nil {
//		return net.Error()
//	}
//
// Nodes given no inputs are input Nodes, and must be given a nil Operator.
// Construction errors are stored on the Network and surfaced by
// *Network.Error(), so calls can be chained without checking each one.
//
// A Node may take several other Nodes as input; their values are concatenated
// in order. This is how the variational sampler receives its mean and
// log-variance heads:
//
//	mean := net.Add("mean", operators.Dense(), latentSize, hl)
//	logv := net.Add("logvar", operators.Dense(), latentSize, hl)
//	z := net.Add("sample", operators.Sampler(), latentSize, mean, logv)
//
// The network is finished by providing a cost function and its outputs:
//
//	err := net.Finalize(costfuncs.CrossEntropy(), out)
//
// # Training and Testing
//
// Training uses the type TrainArgs as a proxy for the optional arguments
// available in other languages. Data is provided through the DataSupplier
// interface, or from a slice via Data(). All training is done with:
//
//	func (net *Network) Train(args TrainArgs) error
//
// Train aborts immediately with ErrNonFiniteCost if the training cost becomes
// NaN or infinite; a diverged run is not retried.
//
// Testing can be done both during training (see TrainArgs) and through a
// separate function, Test.
//
// # Saving and Loading
//
// Networks are written to a directory of files:
//
//	func (net *Network) Save(dirPath string, overwrite bool) error
//	func Load(dirPath string) (*Network, error)
//
// Load reassembles Operators, Optimizers and HyperParameters by their
// registered type strings, so the subpackages that provide them must be
// imported (directly or otherwise) before loading.
package latentlab
