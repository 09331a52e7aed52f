package operators

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	lab "latentlab"
)

const biasValue float64 = 1

func init() {
	list := []interface{}{
		func() lab.Operator { return Dense() },
		func() lab.Operator { return Identity() },
		func() lab.Operator { return Logistic() },
		func() lab.Operator { return ReLU() },
		func() lab.Operator { return LeakyReLU(0) },
		func() lab.Operator { return Tanh() },
		func() lab.Operator { return Softmax() },
		func() lab.Operator { return Sampler() },
	}

	if err := lab.RegisterAll(list); err != nil {
		panic(err)
	}
}

// saveJSON and loadJSON cover the Operators whose state is a handful of
// exported fields.
func saveJSON(v interface{}, dirPath string) error {
	f, err := os.Create(dirPath + "/op.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q in %q\n", "op.txt", dirPath)
	}

	defer f.Close()

	enc := json.NewEncoder(f)
	if err = enc.Encode(v); err != nil {
		return errors.Wrapf(err, "Failed to encode JSON to file\n")
	}

	return nil
}

func loadJSON(v interface{}, dirPath string) error {
	f, err := os.Open(dirPath + "/op.txt")
	if err != nil {
		return errors.Wrapf(err, "Failed to open file %q in %q\n", "op.txt", dirPath)
	}

	defer f.Close()

	dec := json.NewDecoder(f)
	if err = dec.Decode(v); err != nil {
		return errors.Wrapf(err, "Failed to decode JSON from file\n")
	}

	return nil
}
