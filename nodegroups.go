package latentlab

import (
	"sort"

	"github.com/pkg/errors"
)

// Returns the number of values in the group
func (ng *nodeGroup) size() int {
	if len(ng.sumVals) == 0 {
		return 0
	}

	return ng.sumVals[len(ng.sumVals)-1]
}

// Returns the number of nodes in the group
func num(ng *nodeGroup) int {
	return len(ng.nodes)
}

func (ng *nodeGroup) add(nodes ...*Node) {
	ng.nodes = append(ng.nodes, nodes...)

	for i := range nodes {
		ng.sumVals = append(ng.sumVals, ng.size()+nodes[i].Size())
	}
}

// Duplicates the internal slices to reduce unused capacity
func (ng *nodeGroup) trim() {
	nodes := make([]*Node, len(ng.nodes))
	copy(nodes, ng.nodes)
	ng.nodes = nodes

	sumVals := make([]int, len(ng.sumVals))
	copy(sumVals, ng.sumVals)
	ng.sumVals = sumVals
}

// Sets the values of each Node in the group, in order
func (ng *nodeGroup) setValues(values []float64) error {
	if ng.size() != len(values) {
		return errors.Errorf("Number of given values and group values don't match (%d != %d)", len(values), ng.size())
	}

	for i, n := range ng.nodes {
		copy(n.values, values[ng.sumVals[i]-n.Size():ng.sumVals[i]])
	}

	return nil
}

// Returns the values of the group as a single slice, copying if dupe
func (ng *nodeGroup) getValues(dupe bool) []float64 {
	if !dupe && num(ng) == 1 {
		return ng.nodes[0].values
	}

	values := make([]float64, ng.size())
	for i, n := range ng.nodes {
		copy(values[ng.sumVals[i]-n.Size():], n.values)
	}
	return values
}

// Binary searches for the node containing the given flat index
// Allows out-of-bounds panics instead of returning an error
func (ng *nodeGroup) locate(index int) (*Node, int) {
	greaterThan := func(i int) bool {
		return index < ng.sumVals[i]
	}

	i := sort.Search(len(ng.nodes), greaterThan)

	if i > 0 {
		index -= ng.sumVals[i-1]
	}

	return ng.nodes[i], index
}

// Returns the value at the given flat index across the group
func (ng *nodeGroup) value(index int) float64 {
	n, i := ng.locate(index)
	return n.values[i]
}

// Adds to the delta at the given flat index across the group
func (ng *nodeGroup) addDelta(index int, addend float64) {
	n, i := ng.locate(index)
	n.deltas[i] += addend
}
