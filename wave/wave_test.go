package wave

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	const rate = 8000

	samples := make([]float64, 200)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*440*float64(i)/rate)
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	require.NoError(t, Write(path, &Clip{Rate: rate, Samples: samples}))

	c, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, rate, c.Rate)
	require.Len(t, c.Samples, len(samples))

	// 16-bit quantization error
	for i := range samples {
		assert.InDelta(t, samples[i], c.Samples[i], 1.0/32768+1e-9)
	}
}

func TestWriteClips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clipped.wav")
	require.NoError(t, Write(path, &Clip{Rate: 8000, Samples: []float64{2, -2, 0}}))

	c, err := Read(path)
	require.NoError(t, err)

	// out-of-range samples are clipped, not wrapped
	assert.InDelta(t, 1, c.Samples[0], 1.0/16384)
	assert.InDelta(t, -1, c.Samples[1], 1.0/16384)
	assert.InDelta(t, 0, c.Samples[2], 1e-9)
}

func TestWriteValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")

	assert.Error(t, Write(path, nil))
	assert.Error(t, Write(path, &Clip{Rate: 0, Samples: []float64{0}}))
}

func TestDuration(t *testing.T) {
	c := &Clip{Rate: 100, Samples: make([]float64, 250)}
	assert.InDelta(t, 2.5, c.Duration(), 1e-12)

	var zero Clip
	assert.Equal(t, 0.0, zero.Duration())
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
