package main

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// loadImages reads an image dataset in the usual CSV form: one row per
// image, the first field a class label (ignored here), and the remaining
// fields pixel intensities in 0-255. Pixels are scaled to [0, 1], which is
// what the reconstruction loss expects.
func loadImages(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open file %q\n", path)
	}

	defer f.Close()

	r := csv.NewReader(f)

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to parse CSV from %q\n", path)
	}

	if len(records) == 0 {
		return nil, errors.Errorf("File %q contains no images\n", path)
	}

	imgs := make([][]float64, len(records))
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, errors.Errorf("Row %d of %q has no pixels\n", i, path)
		}

		img := make([]float64, len(rec)-1)
		for j, field := range rec[1:] {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "Row %d of %q has a malformed pixel (field %d)\n", i, path, j+1)
			}

			if v < 0 {
				v = 0
			} else if v > 255 {
				v = 255
			}

			img[j] = float64(v) / 255
		}

		imgs[i] = img
	}

	size := len(imgs[0])
	for i, img := range imgs {
		if len(img) != size {
			return nil, errors.Errorf("Row %d of %q has %d pixels, row 0 has %d\n", i, path, len(img), size)
		}
	}

	return imgs, nil
}

// autoencoderData pairs each example with itself as the training target.
func autoencoderData(examples [][]float64) [][][]float64 {
	ds := make([][][]float64, len(examples))
	for i, x := range examples {
		ds[i] = [][]float64{x, x}
	}

	return ds
}
