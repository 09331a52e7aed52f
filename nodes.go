package latentlab

import (
	"fmt"
)

// String offers a universal method of gaining information about a Node
// without printing all of its fields. String returns the Node's name in
// quotes, or, for a Node that never joined its Network:
//
//	<inert>
//
// Finally, if given a Node that is nil, String returns:
//
//	<nil>
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}

	if n.name == "" {
		return "<inert>"
	}

	return "\"" + n.name + "\""
}

// Name returns the name the Node was created with.
func (n *Node) Name() string {
	return n.name
}

// ID returns the non-negative integer given to the Node as a member of its
// Network. IDs are unique within Networks and follow order of addition.
func (n *Node) ID() int {
	return n.id
}

// IsInput returns whether or not the Node is an input Node. Input Nodes have
// no Operators.
func (n *Node) IsInput() bool {
	// only input Nodes have nil inputs
	return n.inputs == nil
}

// IsOutput returns whether or not the Node is an output Node.
func (n *Node) IsOutput() bool {
	return n.outputIndex >= 0
}

// Size returns the number of values the Node produces.
func (n *Node) Size() int {
	return len(n.values)
}

// Value returns the value of the Node at the specified index. Value allows
// panicking with index-out-of-bounds.
func (n *Node) Value(index int) float64 {
	return n.values[index]
}

// Values returns a copy of all of the Node's current values.
func (n *Node) Values() []float64 {
	vs := make([]float64, len(n.values))
	copy(vs, n.values)
	return vs
}

// Delta returns the derivative of the value at the given index w.r.t. the
// total cost of the Network's outputs for the current training sample.
func (n *Node) Delta(index int) float64 {
	return n.deltas[index]
}

// InputValue returns the value of the index'th input to the Node, across all
// of its input Nodes in order.
//
// NB: for Nodes with many input Nodes this binary searches them. If
// InputValue is called on an input Node (which has no input values), it
// panics with ErrNoInputs.
func (n *Node) InputValue(index int) float64 {
	if n.IsInput() {
		panic(ErrNoInputs)
	}

	return n.inputs.value(index)
}

// Input returns the index'th input Node to the given Node. If the Node has no
// inputs, it panics with ErrNoInputs.
func (n *Node) Input(index int) *Node {
	if n.IsInput() {
		panic(ErrNoInputs)
	}

	return n.inputs.nodes[index]
}

// InputNodes returns a copy of the set of inputs to the Node. It returns an
// empty slice if the Node is an input Node.
func (n *Node) InputNodes() []*Node {
	if n.IsInput() {
		return nil
	}

	ns := make([]*Node, num(n.inputs))
	copy(ns, n.inputs.nodes)
	return ns
}

// NumInputNodes returns the number of Nodes from which the Node receives
// input.
func (n *Node) NumInputNodes() int {
	if n.IsInput() {
		return 0
	}

	return num(n.inputs)
}

// NumInputs returns the total number of input values to the Node.
func (n *Node) NumInputs() int {
	if n.IsInput() {
		return 0
	}

	return n.inputs.size()
}

// AllInputs returns a single slice containing a copy of all of the input
// values to the Node, in order.
func (n *Node) AllInputs() []float64 {
	if n.IsInput() {
		return nil
	}

	return n.inputs.getValues(true)
}

// hp returns the named HyperParameter, checking the Node's own table before
// falling back to the Network's, or nil if neither has it.
func (n *Node) hp(name string) HyperParameter {
	if hp := n.hyperParams[name]; hp != nil {
		return hp
	}

	return n.host.hyperParams[name]
}

// HP returns the value of the given HyperParameter at the current iteration,
// checking the Node's own HyperParameters before falling back to the
// Network's. If the HyperParameter is unknown, HP panics with ErrNoHP.
func (n *Node) HP(name string) float64 {
	hp := n.hp(name)
	if hp == nil {
		panic(ErrNoHP)
	}

	return hp.Value(n.host.longIter)
}

// Optimizer returns the Optimizer attached to the Node, or nil if there is
// none.
func (n *Node) Optimizer() Optimizer {
	return n.opt
}

// Penalty returns the weight Penalty attached to the Node, or nil if there is
// none.
func (n *Node) Penalty() Penalty {
	return n.pen
}

// InitWeights fills the given blank weight slice using the Node's
// Initializer. It is intended to be called by Operators during Init.
func (n *Node) InitWeights(ws []float64) {
	if n.init == nil {
		panic(NilArgError{fmt.Sprintf("Initializer of Node %v", n)})
	}

	n.init.Set(n, ws)
}
