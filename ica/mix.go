package ica

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Mix produces observed mixtures from source signals: each output channel
// is a linear combination of the sources, with the coefficients given by
// the corresponding row of the mixing matrix. The matrix must have as many
// columns as there are sources; the number of rows is the number of
// mixtures produced.
//
// This is how the experiment's inputs are made: known sources are mixed so
// that the recovered components can be compared against them.
func Mix(mixing *mat.Dense, sources [][]float64) ([][]float64, error) {
	if mixing == nil {
		return nil, errors.Errorf("Can't mix, mixing matrix is nil\n")
	}

	src, err := channelMatrix(sources)
	if err != nil {
		return nil, err
	}

	rows, cols := mixing.Dims()
	if cols != len(sources) {
		return nil, errors.Errorf("Mixing matrix has wrong number of columns (%d != %d sources)\n", cols, len(sources))
	}

	var out mat.Dense
	out.Mul(src, mixing.T())

	mixed := make([][]float64, rows)
	for c := range mixed {
		mixed[c] = mat.Col(nil, c, &out)
	}

	return mixed, nil
}
