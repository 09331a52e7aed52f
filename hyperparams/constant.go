// Package hyperparams provides the HyperParameter schedules usable with
// latentlab Networks.
package hyperparams

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	lab "latentlab"
)

type constant float64

// Constant returns a HyperParameter that always has the given value.
func Constant(value float64) *constant {
	c := constant(value)
	return &c
}

func (c *constant) TypeString() string {
	return "constant"
}

func (c *constant) Value(iter int) float64 {
	return float64(*c)
}

func (c *constant) Save(n *lab.Node, dirPath string) error {
	if err := os.MkdirAll(dirPath, 0700); err != nil {
		return errors.Wrapf(err, "Failed to create directory %q\n", dirPath)
	}

	f, err := os.Create(dirPath + "/constant.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q in %q\n", "constant.txt", dirPath)
	}

	defer f.Close()

	v := float64(*c)

	enc := json.NewEncoder(f)
	if err = enc.Encode(v); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file %q in %q\n", "constant.txt", dirPath)
	}

	return nil
}

func (c *constant) Load(dirPath string) error {
	f, err := os.Open(dirPath + "/constant.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to open file %q in %q\n", "constant.txt", dirPath)
	}

	defer f.Close()

	var v float64

	dec := json.NewDecoder(f)
	if err = dec.Decode(&v); err != nil {
		return errors.Wrapf(err, "Failed to decode JSON from file %q in %q\n", "constant.txt", dirPath)
	}

	*c = constant(v)

	return nil
}
