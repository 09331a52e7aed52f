package latentlab

import (
	"github.com/pkg/errors"
)

type status int8

const (
	initialized status = iota // 0
	finalized                 // 1
	evaluated                 // 2
	deltas                    // 3
	adjusted                  // 4
)

// Changes the values of the Nodes so that they accurately reflect the inputs.
// Because ids are a topological order, a single forward sweep suffices.
func (net *Network) evaluate() error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	} else if net.stat >= evaluated {
		return nil
	}

	for _, n := range net.nodesByID {
		if n.IsInput() {
			continue
		}

		if err := n.op.Evaluate(n, n.values); err != nil {
			return errors.Wrapf(err, "Evaluating Node %v failed\n", n)
		}
	}

	net.stat = evaluated
	return nil
}

// Calculates the deltas of every Node in the Network w.r.t. the total cost of
// the current sample. Deltas flow from the cost function derivatives at the
// output Nodes backwards through each Operator's InputDeltas, sweeping the
// Nodes in reverse topological order so that a Node's own deltas are complete
// before they are pushed to its inputs.
func (net *Network) getDeltas(targets []float64) error {
	if net.stat < evaluated {
		return errors.Errorf("Network must be evaluated before getting deltas")
	} else if net.stat >= deltas {
		return nil
	}

	if len(targets) != net.outputs.size() {
		return SizeMismatchError{net.outputs.size(), len(targets), "targets"}
	}

	for _, n := range net.nodesByID {
		for i := range n.deltas {
			n.deltas[i] = 0
		}
	}

	outs := net.outputs.getValues(false)

	for _, out := range net.outputs.nodes {
		o := out
		add := func(i int, d float64) {
			o.deltas[i] += d
		}

		net.cf.Deriv(outs, targets, o.outputIndex, o.outputIndex+o.Size(), add)
	}

	for id := len(net.nodesByID) - 1; id >= 0; id-- {
		n := net.nodesByID[id]
		if n.IsInput() {
			continue
		}

		in := n.inputs
		add := func(i int, d float64) {
			in.addDelta(i, d)
		}

		if err := n.op.InputDeltas(n, add, 0, n.NumInputs()); err != nil {
			return errors.Wrapf(err, "Getting input deltas of Node %v failed\n", n)
		}
	}

	net.stat = deltas
	return nil
}

// Adjusts the weights of every Node, using the deltas of the current sample.
// If saveChanges, the adjustments are accumulated instead of applied, until
// AddWeights is called (used for mini-batching).
func (net *Network) adjust(saveChanges bool) error {
	if net.stat < deltas {
		return errors.Errorf("Network must have deltas calculated before adjusting weights")
	}

	for _, n := range net.nodesByID {
		if n.IsInput() || !n.op.CanBeAdjusted(n) {
			continue
		}

		hp := n.hp("learning-rate")
		if hp == nil {
			return errors.Errorf("Node %v has no \"learning-rate\" HyperParameter (add one with AddHP before training)\n", n)
		}

		if err := n.op.Adjust(n, hp.Value(net.longIter), saveChanges); err != nil {
			return errors.Wrapf(err, "Failed to adjust Node %v\n", n)
		}
	}

	if saveChanges {
		net.hasSavedChanges = true
	}

	net.stat = adjusted
	return nil
}

// AddWeights updates the weights in the Network with any previously saved
// changes. It only runs if there are changes that have not been applied.
func (net *Network) AddWeights() error {
	if !net.hasSavedChanges {
		return nil
	}

	for _, n := range net.nodesByID {
		if n.IsInput() {
			continue
		}

		if err := n.op.AddWeights(n); err != nil {
			return errors.Wrapf(err, "Failed to add weights of Node %v\n", n)
		}
	}

	net.hasSavedChanges = false
	net.stat = finalized
	return nil
}
