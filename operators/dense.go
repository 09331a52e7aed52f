package operators

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	lab "latentlab"
	"latentlab/utils"
)

type dense struct {
	// Ws is laid out per unit: the weights for unit v occupy
	// [v*stride, (v+1)*stride), with the bias weight last if UseBias.
	Ws      []float64
	Changes []float64
	UseBias bool

	ins, outs int
}

// Dense returns a fully-connected layer of units, each computing a weighted
// sum over all inputs plus a bias. The result implements latentlab.Operator.
// The bias can be removed with NoBias, for strictly linear maps.
func Dense() *dense {
	return &dense{UseBias: true}
}

func (d *dense) TypeString() string {
	return "dense"
}

// NoBias removes the bias weight from each unit, returning the same Operator.
func (d *dense) NoBias() *dense {
	d.UseBias = false
	return d
}

func (d *dense) stride() int {
	if d.UseBias {
		return d.ins + 1
	}
	return d.ins
}

func (d *dense) Init(n *lab.Node) error {
	d.ins = n.NumInputs()
	d.outs = n.Size()
	if d.ins == 0 {
		return errors.Errorf("Can't initialize dense Operator with no inputs")
	}

	d.Ws = make([]float64, d.outs*d.stride())
	d.Changes = make([]float64, len(d.Ws))
	n.InitWeights(d.Ws)

	return nil
}

func (d *dense) Save(n *lab.Node, dirPath string) error {
	f, err := os.Create(dirPath + "/weights.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q in %q\n", "weights.txt", dirPath)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	if err = enc.Encode(d); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file\n")
	}

	return nil
}

func (d *dense) Load(n *lab.Node, dirPath string) error {
	f, err := os.Open(dirPath + "/weights.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to open file %q in %q\n", "weights.txt", dirPath)
	}

	defer f.Close()

	dec := json.NewDecoder(f)
	if err = dec.Decode(d); err != nil {
		return errors.Wrapf(err, "Failed to decode JSON from file\n")
	}

	d.ins = n.NumInputs()
	d.outs = n.Size()
	if len(d.Ws) != d.outs*d.stride() {
		return errors.Errorf("Loaded weights don't match node dimensions (%d != %d*%d)", len(d.Ws), d.outs, d.stride())
	}
	if len(d.Changes) != len(d.Ws) {
		d.Changes = make([]float64, len(d.Ws))
	}

	return nil
}

func (d *dense) Evaluate(n *lab.Node, values []float64) error {
	inputs := n.AllInputs()
	stride := d.stride()

	calculateValue := func(v int) {
		ws := d.Ws[v*stride : (v+1)*stride]

		var sum float64
		for in := range inputs {
			sum += ws[in] * inputs[in]
		}
		if d.UseBias {
			sum += ws[d.ins] * biasValue
		}

		values[v] = sum
	}

	opsPerThread, threadsPerCPU := 1+len(values)/8, 1
	utils.MultiThread(0, len(values), calculateValue, opsPerThread, threadsPerCPU)

	return nil
}

func (d *dense) InputDeltas(n *lab.Node, add func(int, float64), start, end int) error {
	stride := d.stride()

	sendDelta := func(i int) {
		var sum float64
		for v := 0; v < d.outs; v++ {
			sum += n.Delta(v) * d.Ws[v*stride+i]
		}

		add(i-start, sum)
	}

	opsPerThread, threadsPerCPU := 1+(end-start)/8, 1
	utils.MultiThread(start, end, sendDelta, opsPerThread, threadsPerCPU)

	return nil
}

func (d *dense) CanBeAdjusted(n *lab.Node) bool {
	return true
}

func (d *dense) Adjust(n *lab.Node, learningRate float64, saveChanges bool) error {
	inputs := n.AllInputs()
	stride := d.stride()
	pen := n.Penalty()

	target := d.Ws
	if saveChanges {
		target = d.Changes
	}

	grad := func(index int) float64 {
		in := index % stride
		v := index / stride

		var g float64
		if in == d.ins { // only reachable with UseBias
			g = biasValue * n.Delta(v)
		} else {
			g = inputs[in] * n.Delta(v)
		}

		if pen != nil {
			g += pen.Penalize(d.Ws[index])
		}

		return g
	}

	add := func(index int, addend float64) {
		target[index] += addend
	}

	if err := n.Optimizer().Run(n, len(d.Ws), grad, add, learningRate); err != nil {
		return errors.Wrapf(err, "Running Optimizer on weights failed\n")
	}

	return nil
}

func (d *dense) AddWeights(n *lab.Node) error {
	for i := range d.Ws {
		d.Ws[i] += d.Changes[i]
		d.Changes[i] = 0
	}

	return nil
}

// Weights exposes the current weights of the layer. The returned slice is not
// a copy.
func (d *dense) Weights() []float64 {
	return d.Ws
}
