// Package corpus handles loading labeled text datasets from disk and
// preparing them for downstream training: shuffling, train/validation
// splitting, and writing the CSV files that classifier and language-model
// training consume.
//
// The expected on-disk layout is one subdirectory per class, each
// containing any number of plain-text files:
//
//	reviews/
//	    neg/
//	        0_3.txt
//	        1_1.txt
//	    pos/
//	        0_9.txt
//
// corpus.Load returns a Corpus with one Document per file. Class indices
// are assigned by the sorted order of the subdirectory names, so they are
// stable across runs.
package corpus

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Document is a single labeled text.
type Document struct {
	// Class is the index into Corpus.Classes of the document's label
	Class int

	// Text is the document's content, with newlines replaced by spaces
	Text string
}

// Corpus is an ordered set of labeled documents.
type Corpus struct {
	// Classes holds the class names, sorted. Document.Class indexes into
	// this slice.
	Classes []string

	Docs []Document
}

// Load reads a Corpus from the given directory. Each subdirectory of
// dirPath is taken as a class, and each regular file within it as a
// document of that class. Files and directories starting with '.' are
// ignored.
func Load(dirPath string) (*Corpus, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read directory %q\n", dirPath)
	}

	c := new(Corpus)
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		c.Classes = append(c.Classes, e.Name())
	}

	if len(c.Classes) == 0 {
		return nil, errors.Errorf("Directory %q contains no class subdirectories\n", dirPath)
	}

	sort.Strings(c.Classes)

	for class, name := range c.Classes {
		classDir := filepath.Join(dirPath, name)

		files, err := os.ReadDir(classDir)
		if err != nil {
			return nil, errors.Wrapf(err, "Failed to read class directory %q\n", classDir)
		}

		for _, f := range files {
			if f.IsDir() || strings.HasPrefix(f.Name(), ".") {
				continue
			}

			path := filepath.Join(classDir, f.Name())

			b, err := os.ReadFile(path)
			if err != nil {
				return nil, errors.Wrapf(err, "Failed to read document %q\n", path)
			}

			c.Docs = append(c.Docs, Document{
				Class: class,
				Text:  flatten(string(b)),
			})
		}
	}

	if len(c.Docs) == 0 {
		return nil, errors.Errorf("Directory %q contains no documents\n", dirPath)
	}

	return c, nil
}

// flatten replaces newlines by spaces and trims the result, so that each
// document occupies a single CSV field cleanly.
func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// Len returns the number of documents in the Corpus.
func (c *Corpus) Len() int {
	return len(c.Docs)
}

// Shuffle randomly reorders the documents of the Corpus, using the given
// source of randomness. If rng is nil, Shuffle uses the global source.
func (c *Corpus) Shuffle(rng *rand.Rand) {
	swap := func(i, j int) {
		c.Docs[i], c.Docs[j] = c.Docs[j], c.Docs[i]
	}

	if rng != nil {
		rng.Shuffle(len(c.Docs), swap)
	} else {
		rand.Shuffle(len(c.Docs), swap)
	}
}

// Split partitions the Corpus into a training set and a validation set.
// trainFrac is the fraction of documents (rounded down) that go to the
// training set; the rest go to the validation set. Every document ends up
// in exactly one of the two. The returned corpora share the underlying
// document storage with c.
//
// Split returns error if trainFrac is outside [0, 1].
func (c *Corpus) Split(trainFrac float64) (train, valid *Corpus, _ error) {
	if trainFrac < 0 || trainFrac > 1 {
		return nil, nil, errors.Errorf("Can't split corpus, trainFrac must be in [0, 1] (got %g)\n", trainFrac)
	}

	n := int(trainFrac * float64(len(c.Docs)))

	train = &Corpus{Classes: c.Classes, Docs: c.Docs[:n:n]}
	valid = &Corpus{Classes: c.Classes, Docs: c.Docs[n:]}
	return train, valid, nil
}
