package hyperparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstant(t *testing.T) {
	c := Constant(0.05)

	assert.Equal(t, 0.05, c.Value(0))
	assert.Equal(t, 0.05, c.Value(1000000))
}

func TestConstantSaveLoad(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Constant(0.125).Save(nil, dir))

	c := Constant(0)
	require.NoError(t, c.Load(dir))
	assert.Equal(t, 0.125, c.Value(0))
}

func TestStep(t *testing.T) {
	s := Step(0.1).Then(1000, 0.01).Then(5000, 0.001)

	assert.Equal(t, 0.1, s.Value(0))
	assert.Equal(t, 0.1, s.Value(999))
	assert.Equal(t, 0.01, s.Value(1000))
	assert.Equal(t, 0.01, s.Value(4999))
	assert.Equal(t, 0.001, s.Value(5000))
	assert.Equal(t, 0.001, s.Value(100000))
}

func TestStepOutOfOrder(t *testing.T) {
	// boundaries added out of order still apply in iteration order, and a
	// repeated boundary overwrites the earlier value
	s := Step(1).Then(500, 3).Then(100, 2).Then(500, 4)

	assert.Equal(t, 1.0, s.Value(50))
	assert.Equal(t, 2.0, s.Value(100))
	assert.Equal(t, 4.0, s.Value(500))
}

func TestStepSaveLoad(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Step(0.1).Then(10, 0.5).Save(nil, dir))

	s := Step(0)
	require.NoError(t, s.Load(dir))
	assert.Equal(t, 0.1, s.Value(9))
	assert.Equal(t, 0.5, s.Value(10))
}
