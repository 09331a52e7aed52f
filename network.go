package latentlab

// PanicErrors makes the Network panic construction errors as they occur,
// instead of storing them for *Network.Error. This is mostly useful for
// debugging experiment setup.
func (net *Network) PanicErrors() *Network {
	net.panicErrors = true
	return net
}

// Error returns any error encountered while constructing the Network,
// particularly while creating the architecture. Error always returns nil
// after the Network has been successfully finalized.
func (net *Network) Error() error {
	return net.err
}

// Nodes returns the list of all Nodes in the Network, sorted by ID such that
// Nodes()[n] has id=n. The slice that Nodes returns is a copy; it can be
// modified freely but will not update if more Nodes are added.
func (net *Network) Nodes() []*Node {
	ns := make([]*Node, len(net.nodesByID))
	copy(ns, net.nodesByID)
	return ns
}

// NodeByName returns the Node with the given name, or nil if there is none.
func (net *Network) NodeByName(name string) *Node {
	return net.nodesByName[name]
}

// ResetIter resets the Network's tracked number of iterations to the provided
// value. This could be done to bring HyperParameters that depend on
// iterations back to an earlier state. ResetIter returns ErrNegativeIter if
// the given iteration is less than zero.
func (net *Network) ResetIter(iter int) error {
	if iter < 0 {
		return ErrNegativeIter
	}

	net.longIter = iter
	return nil
}

// Iter returns the iteration of the Network as a whole, across training runs.
func (net *Network) Iter() int {
	return net.longIter
}

// InputSize returns the total number of expected input values to the Network.
// If the Network has not been finalized yet, InputSize returns -1.
func (net *Network) InputSize() int {
	if net.stat < finalized {
		return -1
	}

	return net.inputs.size()
}

// OutputSize returns the total number of expected output values to the
// Network. If the Network has not been finalized yet, OutputSize returns -1.
func (net *Network) OutputSize() int {
	if net.stat < finalized {
		return -1
	}

	return net.outputs.size()
}

// CurrentInputs returns a copy of the current input values to the Network, or
// nil if the Network has not been finalized yet.
func (net *Network) CurrentInputs() []float64 {
	if net.stat < finalized {
		return nil
	}

	return net.inputs.getValues(true)
}

// SetInputs sets the inputs of the Network to the provided values. If the
// Network has not been finalized, ErrNetNotFinalized is returned. If the
// number of inputs does not equal InputSize, type SizeMismatchError is
// returned.
func (net *Network) SetInputs(inputs []float64) error {
	if net.stat < finalized {
		return ErrNetNotFinalized
	}

	if err := net.inputs.setValues(inputs); err != nil {
		return SizeMismatchError{net.inputs.size(), len(inputs), "inputs"}
	}

	net.stat = finalized
	return nil
}

// GetOutputs returns a copy of the Network's output values for the given
// inputs. SetInputs is called regardless of whether or not the given inputs
// are actually the current inputs.
func (net *Network) GetOutputs(inputs []float64) ([]float64, error) {
	if err := net.SetInputs(inputs); err != nil {
		return nil, err
	}

	if err := net.evaluate(); err != nil {
		return nil, err
	}

	return net.outputs.getValues(true), nil
}

// ChangeCost changes the CostFunction of the Network after it has been
// finalized. This allows different CostFunctions for training and final model
// evaluation. If cf is nil, ChangeCost panics with type NilArgError.
func (net *Network) ChangeCost(cf CostFunction) *Network {
	if cf == nil {
		panic(NilArgError{"CostFunction"})
	}

	net.cf = cf
	return net
}

// Divergence returns the sum of the divergence terms of all Operators in the
// Network that implement Diverger, for the current evaluation. It returns 0
// before the first evaluation, including before the Network is finalized.
func (net *Network) Divergence() float64 {
	if net.stat < finalized {
		return 0
	}

	var sum float64
	for _, n := range net.nodesByID {
		if n.div != nil {
			sum += n.div.Divergence(n)
		}
	}

	return sum
}

// totalCost is the training objective: the CostFunction over the outputs plus
// any divergence terms contributed by Operators.
func (net *Network) totalCost(outs, targets []float64) float64 {
	return net.cf.Cost(outs, targets) + net.Divergence()
}
