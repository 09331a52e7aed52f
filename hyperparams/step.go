package hyperparams

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"

	lab "latentlab"
)

type step struct {
	// Initial is the value before any boundary has been crossed
	Initial float64

	// Iters and Values hold the schedule boundaries, sorted by iteration.
	// Iters[i] is the first iteration on which Values[i] applies.
	Iters  []int
	Values []float64
}

// Step returns a HyperParameter whose value changes at set iterations.
// Boundaries are added with Then; before the first boundary, the initial
// value is used.
//
// For example:
//
//	hyperparams.Step(0.1).Then(1000, 0.01).Then(5000, 0.001)
//
// has value 0.1 for iterations 0-999, 0.01 for 1000-4999, and 0.001 from
// then on.
func Step(initial float64) *step {
	return &step{Initial: initial}
}

// Then adds a boundary to the schedule: from the given iteration onwards,
// the hyperparameter has the given value (until a later boundary). Then
// returns the receiver so that calls can be chained.
func (s *step) Then(iter int, value float64) *step {
	i := sort.SearchInts(s.Iters, iter)
	if i < len(s.Iters) && s.Iters[i] == iter {
		s.Values[i] = value
		return s
	}

	s.Iters = append(s.Iters, 0)
	s.Values = append(s.Values, 0)
	copy(s.Iters[i+1:], s.Iters[i:])
	copy(s.Values[i+1:], s.Values[i:])
	s.Iters[i] = iter
	s.Values[i] = value

	return s
}

func (s *step) TypeString() string {
	return "step"
}

func (s *step) Value(iter int) float64 {
	// index of the first boundary past iter
	i := sort.SearchInts(s.Iters, iter+1)
	if i == 0 {
		return s.Initial
	}

	return s.Values[i-1]
}

func (s *step) Save(n *lab.Node, dirPath string) error {
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Failed to create directory %q\n", dirPath)
	}

	f, err := os.Create(dirPath + "/step.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q in %q\n", "step.txt", dirPath)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	if err = enc.Encode(s); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file %q in %q\n", "step.txt", dirPath)
	}

	return nil
}

func (s *step) Load(dirPath string) error {
	f, err := os.Open(dirPath + "/step.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to open file %q in %q\n", "step.txt", dirPath)
	}

	defer f.Close()

	dec := json.NewDecoder(f)
	if err = dec.Decode(s); err != nil {
		return errors.Wrapf(err, "Failed to decode JSON from file %q in %q\n", "step.txt", dirPath)
	}

	if len(s.Iters) != len(s.Values) {
		return errors.Errorf("Loaded schedule is malformed: %d boundaries but %d values\n", len(s.Iters), len(s.Values))
	}

	return nil
}
