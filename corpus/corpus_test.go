package corpus

import (
	"encoding/csv"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestCorpus lays out a class-per-subdirectory corpus on disk.
func writeTestCorpus(t *testing.T, classes map[string][]string) string {
	t.Helper()

	dir := t.TempDir()
	for class, docs := range classes {
		require.NoError(t, os.Mkdir(filepath.Join(dir, class), 0755))
		for i, text := range docs {
			path := filepath.Join(dir, class, "doc"+string(rune('a'+i))+".txt")
			require.NoError(t, os.WriteFile(path, []byte(text), 0644))
		}
	}

	return dir
}

func TestLoad(t *testing.T) {
	dir := writeTestCorpus(t, map[string][]string{
		"neg": {"terrible movie", "awful\nacting"},
		"pos": {"great film"},
	})

	c, err := Load(dir)
	require.NoError(t, err)

	// classes are sorted, so indices are stable across runs
	assert.Equal(t, []string{"neg", "pos"}, c.Classes)
	assert.Equal(t, 3, c.Len())

	for _, d := range c.Docs {
		assert.NotContains(t, d.Text, "\n")
		require.True(t, d.Class == 0 || d.Class == 1)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	// no class subdirectories
	_, err = Load(t.TempDir())
	assert.Error(t, err)
}

func TestSplitPartition(t *testing.T) {
	docs := make([]Document, 10)
	for i := range docs {
		docs[i] = Document{Class: 0, Text: string(rune('a' + i))}
	}

	c := &Corpus{Classes: []string{"only"}, Docs: docs}

	train, valid, err := c.Split(0.7)
	require.NoError(t, err)

	// every document lands in exactly one side, exactly once
	assert.Equal(t, 7, train.Len())
	assert.Equal(t, 3, valid.Len())

	seen := make(map[string]int)
	for _, d := range train.Docs {
		seen[d.Text]++
	}
	for _, d := range valid.Docs {
		seen[d.Text]++
	}

	require.Len(t, seen, 10)
	for _, count := range seen {
		assert.Equal(t, 1, count)
	}

	_, _, err = c.Split(-0.1)
	assert.Error(t, err)
	_, _, err = c.Split(1.5)
	assert.Error(t, err)
}

func TestShuffleDeterministic(t *testing.T) {
	mk := func() *Corpus {
		docs := make([]Document, 20)
		for i := range docs {
			docs[i] = Document{Text: string(rune('a' + i))}
		}
		return &Corpus{Classes: []string{"only"}, Docs: docs}
	}

	a, b := mk(), mk()
	a.Shuffle(rand.New(rand.NewSource(4)))
	b.Shuffle(rand.New(rand.NewSource(4)))

	assert.Equal(t, a.Docs, b.Docs)
}

func TestWriteCSV(t *testing.T) {
	c := &Corpus{
		Classes: []string{"neg", "pos"},
		Docs: []Document{
			{Class: 1, Text: "great, truly great"},
			{Class: 0, Text: `said "awful"`},
		},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, c.WriteCSV(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "great, truly great"}, records[0])
	assert.Equal(t, []string{"0", `said "awful"`}, records[1])
}

func TestWriteLMZeroesLabels(t *testing.T) {
	c := &Corpus{
		Classes: []string{"neg", "pos"},
		Docs: []Document{
			{Class: 1, Text: "one"},
			{Class: 0, Text: "two"},
		},
	}

	path := filepath.Join(t.TempDir(), "lm.csv")
	require.NoError(t, c.WriteLM(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	for _, rec := range records {
		assert.Equal(t, "0", rec[0])
	}
}

func TestWriteClasses(t *testing.T) {
	c := &Corpus{Classes: []string{"neg", "pos"}}

	path := filepath.Join(t.TempDir(), "classes.txt")
	require.NoError(t, c.WriteClasses(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "neg\npos\n", string(b))
}

func TestVocabStats(t *testing.T) {
	c := &Corpus{
		Classes: []string{"only"},
		Docs: []Document{
			{Text: "the cat sat"},
			{Text: "the cat ran"},
		},
	}

	stats, err := c.VocabStats(2)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Terms)
	assert.Equal(t, 6, stats.Tokens)

	require.Len(t, stats.Top, 2)
	assert.Equal(t, 2, stats.Top[0].Count)
	assert.Equal(t, 2, stats.Top[1].Count)
}
