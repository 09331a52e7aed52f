package latentlab

// Network is the main structure used to learn input to output mappings. A
// Network is more of a containing structure than it is actual storage.
type Network struct {
	inputs, outputs *nodeGroup

	// a list of all of the Nodes, stored such that their id is their index in
	// this slice. Because Add only accepts Nodes that already exist as inputs,
	// id order is also a topological order of the graph.
	nodesByID   []*Node
	nodesByName map[string]*Node

	// whether or not the network should panic when it encounters an error
	panicErrors bool

	err error

	cf CostFunction

	hyperParams map[string]HyperParameter

	// used to keep track of the current iteration during training
	iter int

	// longIter corresponds to the iteration of the network as a whole, not
	// just within the current training run. HyperParameter schedules see this.
	longIter int

	// Whether or not there are changes to weights that have not been applied
	hasSavedChanges bool

	stat status
}

// nodeGroups collect what would otherwise be individual functions for
// handling ordered sets of Nodes whose values are treated as one flat slice.
type nodeGroup struct {
	nodes []*Node

	// The sum of the sizes of each Node, up to and including the node at the
	// specified index: index 0 equals the size of the 0th Node; the last index
	// equals the size of the entire group.
	sumVals []int
}

// Nodes are the fundamental building blocks of the Network -- the nodes of
// the computation graph. Each Node has an Operator that determines how it
// computes its values from those it receives as input. Input Nodes have no
// Operator.
type Node struct {
	// The name used to print this node. Required, unique within the Network.
	name string

	// used for order identification of which nodes were added first
	id int

	// used for validation during setup
	host *Network

	// The sets that this Node inputs and outputs from/to. inputs is nil for
	// input Nodes.
	inputs, outputs *nodeGroup

	op Operator

	// type casting of op; nil if the Operator does not contribute a
	// divergence term to the training objective
	div Diverger

	opt  Optimizer
	pen  Penalty
	init Initializer

	// these are exclusively for the Optimizer and schedules
	hyperParams map[string]HyperParameter

	// the values (essentially outputs) of the Node
	values []float64

	// the derivative of each value w.r.t. the total cost of the current
	// training sample. Stored in the same ordering as values.
	deltas []float64

	// outputIndex indicates the index in the Network outputs that this Node's
	// values start at. Non-output Nodes are given values of -1.
	outputIndex int
}
