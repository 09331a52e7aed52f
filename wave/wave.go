// Package wave reads and writes WAV audio files as float64 sample slices.
//
// Clips are mono with samples in [-1, 1]; multi-channel files are mixed
// down on read. This is the format the ica package works in.
package wave

import (
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Clip is a mono audio signal.
type Clip struct {
	// Rate is the sample rate, in Hz
	Rate int

	// Samples holds the signal, one value per sample, in [-1, 1]
	Samples []float64
}

// Duration returns the length of the Clip, in seconds.
func (c *Clip) Duration() float64 {
	if c.Rate == 0 {
		return 0
	}

	return float64(len(c.Samples)) / float64(c.Rate)
}

// Read decodes the WAV file at the given path into a Clip. Multi-channel
// files are mixed down to mono by averaging the channels. Samples are
// scaled to [-1, 1] according to the file's bit depth.
func Read(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open file %q\n", path)
	}

	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, errors.Errorf("File %q is not a valid WAV file\n", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to decode file %q\n", path)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, errors.Errorf("File %q reports %d channels\n", path, channels)
	}

	depth := int(dec.BitDepth)
	if depth < 1 || depth > 32 {
		return nil, errors.Errorf("File %q has unsupported bit depth %d\n", path, depth)
	}

	scale := float64(int64(1) << (depth - 1))

	numFrames := len(buf.Data) / channels

	samples := make([]float64, numFrames)
	for i := range samples {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return &Clip{
		Rate:    buf.Format.SampleRate,
		Samples: samples,
	}, nil
}

// Write encodes the Clip to a 16-bit mono WAV file at the given path.
// Samples outside [-1, 1] are clipped.
func Write(path string, c *Clip) error {
	if c == nil {
		return errors.Errorf("Can't write clip, clip is nil\n")
	} else if c.Rate < 1 {
		return errors.Errorf("Can't write clip, sample rate must be ≥ 1 (got %d)\n", c.Rate)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q\n", path)
	}

	defer f.Close()

	const depth = 16
	scale := float64(int64(1) << (depth - 1))

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: c.Rate},
		SourceBitDepth: depth,
		Data:           make([]int, len(c.Samples)),
	}

	for i, s := range c.Samples {
		v := math.Round(s * scale)
		if v > scale-1 {
			v = scale - 1
		} else if v < -scale {
			v = -scale
		}
		buf.Data[i] = int(v)
	}

	enc := wav.NewEncoder(f, c.Rate, depth, 1, 1)
	if err := enc.Write(buf); err != nil {
		return errors.Wrapf(err, "Failed to encode samples to %q\n", path)
	}

	if err := enc.Close(); err != nil {
		return errors.Wrapf(err, "Failed to finalize WAV file %q\n", path)
	}

	return nil
}
