package latentlab

// Operator is the interface for defining layers and activation functions.
type Operator interface {
	// Init should check the Node's dimensions and initialize any weights.
	// Init is run once, during *Network.Finalize, after the Node's Optimizer,
	// Initializer and Penalty have been attached.
	Init(*Node) error

	// TypeString returns the string corresponding to the type of the
	// Operator. For example: the Operator "Dense" returns "dense". Saved
	// networks are reassembled by these strings.
	TypeString() string

	// given a path to a directory (without a '/' at the end), should store
	// enough information to recreate the Operator from file
	//
	// the directory will have been created by the library itself
	Save(*Node, string) error

	// the counterpart to Save. The provided Node will already have been
	// through Init.
	Load(*Node, string) error

	// Evaluate should update the values of the node to reflect its inputs and
	// weights (if any). Arguments: host node, destination slice for the
	// values of that node.
	Evaluate(*Node, []float64) error

	// InputDeltas should add to the deltas of the given range of inputs how
	// each of those values affects the total cost through the values of the
	// host node.
	//
	// Arguments: host node, a way to add to the deltas of the inputs,
	// starting index of those input values, ending index of those input
	// values. add() is given indexes relative to start.
	InputDeltas(*Node, func(int, float64), int, int) error

	// CanBeAdjusted returns whether or not Adjust changes the outputs of the
	// Node -- generally, whether or not it has weights. Run during setup; the
	// result should not change.
	CanBeAdjusted(*Node) bool

	// Adjust updates the weights of the given node, using its deltas.
	//
	// Arguments: node to adjust, the learning rate to provide the Optimizer,
	// whether the changes from Adjust should be stored until AddWeights
	// instead of applied immediately.
	Adjust(*Node, float64, bool) error

	// AddWeights applies any changes to weights that have been delayed. May
	// be called without any changes waiting to happen.
	AddWeights(*Node) error
}

// Diverger is an optional upgrade to Operator for types that contribute a
// closed-form divergence term to the training objective, in addition to the
// Network's CostFunction. The variational sampler implements Diverger with
// the KL divergence of its encoded distribution from a unit Gaussian.
//
// Divergence is only called after the host Node has been evaluated. Divergers
// are responsible for routing the gradient of their term through InputDeltas.
type Diverger interface {
	Divergence(*Node) float64
}

// Optimizer is the interface for types that translate gradients into weight
// updates.
type Optimizer interface {
	// Run is called to suggest changes to each weight, given: host node,
	// number of weights, gradient at weight, function to add to weights, and
	// a learning rate.
	Run(*Node, int, func(int) float64, func(int, float64), float64) error

	// TypeString returns the string corresponding to the type of the
	// Optimizer. For example: the Optimizer "Adam" returns "adam".
	TypeString() string

	Save(*Node, string) error
	Load(*Node, string) error
}

// CostFunction is the interface for the Network's training objective over its
// outputs. For all methods, lengths can be assumed equal, with no NaNs or
// Infs, and all indexes in range.
type CostFunction interface {
	TypeString() string

	// Cost returns the total cost of the given outputs. Arguments: actual
	// values, target values.
	Cost([]float64, []float64) float64

	// Deriv should provide the derivatives of the total cost w.r.t. the
	// outputs on the range [start, end). add() is given indexes relative to
	// start. Deriv will only be run after Cost.
	Deriv(outs, targets []float64, start, end int, add func(int, float64))
}

// Initializer dictates how the weights in an Operator will be set, given a
// blank slice to hold them.
type Initializer interface {
	Set(*Node, []float64)
}

// Penalty is an optional per-Node regularization term. Penalize returns the
// gradient contribution of the penalty for a single weight, given its current
// value; weighted Operators add it to their cost gradient during Adjust.
type Penalty interface {
	TypeString() string
	Penalize(weight float64) float64
}

// HyperParameter is a named scalar that may change over the lifetime of the
// Network, looked up by Operators and Optimizers through *Node.HP.
type HyperParameter interface {
	TypeString() string

	// Value returns the value of the HyperParameter at the given iteration.
	Value(iter int) float64

	Save(*Node, string) error
	Load(string) error
}
