package latentlab

import (
	"strings"

	"github.com/pkg/errors"
)

func (net *Network) init() {
	if net.nodesByName != nil {
		return
	}

	net.nodesByName = make(map[string]*Node)
	net.hyperParams = make(map[string]HyperParameter)
	net.inputs = new(nodeGroup)
}

// setError records e as the Network's construction error, keeping the first
// one encountered. If PanicErrors has been called, setError panics instead.
func (net *Network) setError(e error) {
	if net.panicErrors {
		panic(e)
	}

	if net.err == nil {
		net.err = e
	}
}

// inert returns a detached Node so that chained construction calls after a
// failed Add do not panic. Inert Nodes never join the Network.
func (net *Network) inert() *Node {
	return &Node{host: net, outputIndex: -1, outputs: new(nodeGroup)}
}

// Add creates a new Node in the Network with the given name, Operator, size,
// and inputs. If no inputs are given, the Node is an input Node and op must
// be nil; otherwise op must not be nil.
//
// The name of each Node must be unique, cannot be "", and cannot contain a
// double-quote.
//
// Construction errors are stored on the Network (see *Network.Error) and an
// inert Node is returned, so calls can be chained without checking each one.
func (net *Network) Add(name string, op Operator, size int, inputs ...*Node) *Node {
	net.init()

	if net.stat >= finalized {
		net.setError(ErrNetFinalized)
		return net.inert()
	} else if size < 1 {
		net.setError(errors.Errorf("Node %q must have size >= 1 (%d)", name, size))
		return net.inert()
	} else if name == "" {
		net.setError(errors.Errorf(`Node name cannot be ""`))
		return net.inert()
	} else if strings.Contains(name, `"`) {
		net.setError(errors.Errorf("Node name %q contains illegal character: \"", name))
		return net.inert()
	} else if net.nodesByName[name] != nil {
		net.setError(errors.Errorf("Node name %q is already taken", name))
		return net.inert()
	}

	if len(inputs) == 0 && op != nil {
		net.setError(errors.Errorf("Node %q has no inputs but a non-nil Operator", name))
		return net.inert()
	} else if len(inputs) != 0 && op == nil {
		net.setError(errors.Errorf("Node %q has inputs but no Operator", name))
		return net.inert()
	}

	for i, in := range inputs {
		if in == nil {
			net.setError(errors.Errorf("Input %d to Node %q is nil", i, name))
			return net.inert()
		} else if in.host != net {
			net.setError(errors.Errorf("Input %d (%v) to Node %q does not belong to the same Network", i, in, name))
			return net.inert()
		} else if in.id >= len(net.nodesByID) || net.nodesByID[in.id] != in {
			net.setError(errors.Errorf("Input %d (%v) to Node %q is inert", i, in, name))
			return net.inert()
		}
	}

	n := new(Node)
	n.name = name
	n.host = net
	n.id = len(net.nodesByID)
	n.op = op
	n.div, _ = op.(Diverger)
	n.outputs = new(nodeGroup)
	n.outputIndex = -1

	n.values = make([]float64, size)
	n.deltas = make([]float64, size)

	if len(inputs) == 0 {
		net.inputs.add(n)
	} else {
		n.inputs = new(nodeGroup)
		n.inputs.add(inputs...)

		for _, in := range inputs {
			in.outputs.add(n)
		}
	}

	net.nodesByName[name] = n
	net.nodesByID = append(net.nodesByID, n)

	return n
}

// Opt sets the Optimizer for the Node, returning the Node for chaining. Nodes
// whose Operators have weights and are not given an Optimizer receive the
// package default at finalization (see SetDefaultOptimizer).
func (n *Node) Opt(opt Optimizer) *Node {
	if opt == nil {
		n.host.setError(NilArgError{"Optimizer"})
		return n
	}

	n.opt = opt
	return n
}

// Init sets the Initializer used for the Node's weights, returning the Node
// for chaining.
func (n *Node) Init(init Initializer) *Node {
	if init == nil {
		n.host.setError(NilArgError{"Initializer"})
		return n
	}

	n.init = init
	return n
}

// Pen sets a weight Penalty on the Node, returning the Node for chaining.
func (n *Node) Pen(pen Penalty) *Node {
	n.pen = pen
	return n
}

// AddHP attaches a HyperParameter to the Node under the given name, shadowing
// any Network-level HyperParameter of the same name.
func (n *Node) AddHP(name string, hp HyperParameter) *Node {
	if hp == nil {
		n.host.setError(NilArgError{"HyperParameter"})
		return n
	}

	if n.hyperParams == nil {
		n.hyperParams = make(map[string]HyperParameter)
	}

	n.hyperParams[name] = hp
	return n
}

// AddHP attaches a HyperParameter to the Network under the given name, as a
// default for all Nodes.
func (net *Network) AddHP(name string, hp HyperParameter) *Network {
	net.init()

	if hp == nil {
		net.setError(NilArgError{"HyperParameter"})
		return net
	}

	net.hyperParams[name] = hp
	return net
}

// Finalize freezes the structure of the Network, sets its CostFunction, and
// initializes the weights of every Operator.
//
// No outputs can be inputs, and all Nodes must affect the outputs. If
// Finalize returns an error, the Network is left unusable.
func (net *Network) Finalize(cf CostFunction, outputs ...*Node) error {
	if net.err != nil {
		return net.err
	} else if net.stat >= finalized {
		return ErrNetFinalized
	} else if cf == nil {
		return NilArgError{"CostFunction"}
	} else if len(net.nodesByID) == 0 {
		return errors.Errorf("Can't finalize network, network has no nodes")
	} else if len(outputs) == 0 {
		return errors.Errorf("Can't finalize network, no outputs given")
	}

	for i, out := range outputs {
		if out == nil {
			return errors.Errorf("Can't finalize network, output node #%d is nil", i)
		} else if out.host != net {
			return errors.Errorf("Can't finalize network, output node #%d (%v) does not belong to this network", i, out)
		} else if out.IsInput() {
			return errors.Errorf("Can't finalize network, output node #%d (%v) is both an input and an output", i, out)
		}

		// check that there are no duplicates
		for o := i + 1; o < len(outputs); o++ {
			if out == outputs[o] {
				return errors.Errorf("Can't finalize network, output #%d (%v) is also #%d", i, out, o)
			}
		}
	}

	net.outputs = new(nodeGroup)
	net.outputs.add(outputs...)

	if err := net.checkOutputs(); err != nil {
		net.outputs = nil
		return err
	}

	numOutValues := 0
	for _, out := range outputs {
		out.outputIndex = numOutValues
		numOutValues += out.Size()
	}

	// attach defaults and initialize weights, in id (topological) order
	for _, n := range net.nodesByID {
		if n.IsInput() {
			continue
		}

		if n.op.CanBeAdjusted(n) {
			if n.opt == nil {
				if defaultOptimizer == nil {
					return errors.Errorf("Node %v has no Optimizer and no default has been set", n)
				}
				n.opt = defaultOptimizer()
			}

			if n.init == nil {
				if defaultInitializer == nil {
					return errors.Errorf("Node %v has no Initializer and no default has been set", n)
				}
				n.init = defaultInitializer
			}
		}

		if err := n.op.Init(n); err != nil {
			return errors.Wrapf(err, "Initializing Operator of Node %v failed\n", n)
		}
	}

	// remove unused capacity at the ends of slices
	for _, n := range net.nodesByID {
		n.outputs.trim()
	}
	net.inputs.trim()

	net.cf = cf
	net.stat = finalized

	return nil
}

// Checks that all Nodes affect the outputs of the network
func (net *Network) checkOutputs() error {
	marked := make([]bool, len(net.nodesByID))

	var mark func(*Node)
	mark = func(n *Node) {
		if marked[n.id] {
			return
		}

		marked[n.id] = true

		if n.inputs != nil {
			for _, in := range n.inputs.nodes {
				mark(in)
			}
		}
	}

	for _, out := range net.outputs.nodes {
		mark(out)
	}

	for _, n := range net.nodesByID {
		if !marked[n.id] {
			return errors.Errorf("Node %v does not affect Network outputs", n)
		}
	}

	return nil
}
