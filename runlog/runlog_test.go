package runlog

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBeginFinishList(t *testing.T) {
	s := openTestStore(t)

	id, err := s.Begin("vae", "hidden=8")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	require.NoError(t, s.Finish(id, 0.125))

	runs, err := s.List("")
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, id, r.ID)
	assert.Equal(t, "vae", r.Experiment)
	assert.Equal(t, "hidden=8", r.Notes)
	assert.Equal(t, 0.125, r.FinalCost)
	assert.False(t, r.StartedAt.IsZero())
	assert.False(t, r.FinishedAt.IsZero())
}

func TestUnfinishedRun(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Begin("ica", "")
	require.NoError(t, err)

	runs, err := s.List("")
	require.NoError(t, err)
	require.Len(t, runs, 1)

	assert.True(t, math.IsNaN(runs[0].FinalCost))
	assert.True(t, runs[0].FinishedAt.IsZero())
}

func TestListFilter(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Begin("vae", "")
	require.NoError(t, err)
	_, err = s.Begin("ica", "")
	require.NoError(t, err)

	runs, err := s.List("ica")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "ica", runs[0].Experiment)

	runs, err = s.List("")
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestFinishUnknownRun(t *testing.T) {
	s := openTestStore(t)

	assert.Error(t, s.Finish(uuid.New(), 1.0))
}
