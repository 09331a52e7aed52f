package corpus

import (
	"sort"

	"github.com/james-bowman/nlp"
	"github.com/pkg/errors"
)

// TermCount is a vocabulary term and the number of times it occurs across
// the whole Corpus.
type TermCount struct {
	Term  string
	Count int
}

// VocabStats summarizes the vocabulary of a Corpus.
type VocabStats struct {
	// Terms is the number of distinct terms across all documents
	Terms int

	// Tokens is the total number of term occurrences
	Tokens int

	// Top holds the most frequent terms, in decreasing order of count.
	// Ties are broken alphabetically.
	Top []TermCount
}

// VocabStats tokenizes every document in the Corpus and returns summary
// statistics about its vocabulary. topN is the number of most frequent
// terms to report; it is clipped to the number of distinct terms.
// stopWords, if any, are excluded from the count.
//
// These statistics are what informs the vocabulary-size choice for
// downstream language-model training; they have no effect on the written
// CSV files.
func (c *Corpus) VocabStats(topN int, stopWords ...string) (*VocabStats, error) {
	texts := make([]string, len(c.Docs))
	for i, d := range c.Docs {
		texts[i] = d.Text
	}

	vectoriser := nlp.NewCountVectoriser(stopWords...)

	m, err := vectoriser.FitTransform(texts...)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to vectorise corpus\n")
	}

	// rows are terms, columns are documents
	rows, cols := m.Dims()

	counts := make([]int, rows)
	total := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			counts[i] += int(m.At(i, j))
		}
		total += counts[i]
	}

	terms := make([]string, rows)
	for term, i := range vectoriser.Vocabulary {
		terms[i] = term
	}

	top := make([]TermCount, rows)
	for i := range top {
		top[i] = TermCount{Term: terms[i], Count: counts[i]}
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Term < top[j].Term
	})

	if topN > len(top) {
		topN = len(top)
	} else if topN < 0 {
		topN = 0
	}

	return &VocabStats{
		Terms:  rows,
		Tokens: total,
		Top:    top[:topN],
	}, nil
}
