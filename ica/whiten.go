// Package ica implements independent component analysis of mixed signals by
// way of a linear autoencoder: observations are first whitened with a
// PCA-style decomposition, then an encoder/decoder pair is trained to
// reproduce them, with an independence-promoting penalty on the encoded
// values pushing the encoder towards the unmixing transform.
package ica

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Whitener centers and decorrelates multi-channel observations so that the
// transformed data has (approximately) identity covariance. It must be Fit
// before it can Transform.
type Whitener struct {
	mean []float64

	// w is the whitening matrix, D^(-1/2) * Uᵀ from the eigendecomposition
	// of the covariance
	w *mat.Dense
}

// Fit computes the whitening transform from the given observations. Each
// element of channels is one observed signal; all must have the same,
// nonzero length. Fit returns error if the covariance of the observations
// is (numerically) singular, which happens when two channels are identical
// or a channel is constant.
func (wh *Whitener) Fit(channels [][]float64) error {
	data, err := channelMatrix(channels)
	if err != nil {
		return err
	}

	numSamples, numChannels := data.Dims()
	if numSamples < 2 {
		return errors.Errorf("Can't fit whitener, need at least 2 samples (got %d)\n", numSamples)
	}

	wh.mean = make([]float64, numChannels)
	for c := 0; c < numChannels; c++ {
		wh.mean[c] = stat.Mean(mat.Col(nil, c, data), nil)
	}

	cov := mat.NewSymDense(numChannels, nil)
	stat.CovarianceMatrix(cov, data, nil)

	var eig mat.EigenSym
	if !eig.Factorize(cov, true) {
		return errors.Errorf("Failed to factorize covariance matrix\n")
	}

	vals := eig.Values(nil)

	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	const eps = 1e-12
	for _, v := range vals {
		if v <= eps {
			return errors.Errorf("Covariance matrix is singular (eigenvalue %g); channels are linearly dependent\n", v)
		}
	}

	// w = D^(-1/2) * Uᵀ: row i of w is the i'th eigenvector scaled by the
	// inverse square root of its eigenvalue
	wh.w = mat.NewDense(numChannels, numChannels, nil)
	for i := 0; i < numChannels; i++ {
		s := 1 / math.Sqrt(vals[i])
		for j := 0; j < numChannels; j++ {
			wh.w.Set(i, j, s*vecs.At(j, i))
		}
	}

	return nil
}

// Transform whitens the given observations with the transform computed by
// Fit: each sample is centered by the fitted means and multiplied by the
// whitening matrix. The channel count must match the fitted data; the
// number of samples need not.
func (wh *Whitener) Transform(channels [][]float64) ([][]float64, error) {
	if wh.w == nil {
		return nil, errors.Errorf("Can't transform, whitener has not been fit\n")
	}

	data, err := channelMatrix(channels)
	if err != nil {
		return nil, err
	}

	numSamples, numChannels := data.Dims()
	if numChannels != len(wh.mean) {
		return nil, errors.Errorf("Wrong number of channels (%d != %d)\n", numChannels, len(wh.mean))
	}

	for r := 0; r < numSamples; r++ {
		for c := 0; c < numChannels; c++ {
			data.Set(r, c, data.At(r, c)-wh.mean[c])
		}
	}

	var out mat.Dense
	out.Mul(data, wh.w.T())

	whitened := make([][]float64, numChannels)
	for c := range whitened {
		whitened[c] = mat.Col(nil, c, &out)
	}

	return whitened, nil
}

// channelMatrix packs per-channel sample slices into a samples × channels
// matrix, checking that the channels agree on length.
func channelMatrix(channels [][]float64) (*mat.Dense, error) {
	if len(channels) == 0 {
		return nil, errors.Errorf("Need at least one channel\n")
	}

	numSamples := len(channels[0])
	if numSamples == 0 {
		return nil, errors.Errorf("Channels are empty\n")
	}

	for i, ch := range channels {
		if len(ch) != numSamples {
			return nil, errors.Errorf("Channels disagree on length (channel %d has %d samples, channel 0 has %d)\n",
				i, len(ch), numSamples)
		}
	}

	data := mat.NewDense(numSamples, len(channels), nil)
	for c, ch := range channels {
		for r, v := range ch {
			data.Set(r, c, v)
		}
	}

	return data, nil
}
