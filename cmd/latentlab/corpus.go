package main

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"latentlab/corpus"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus <dir>",
	Short: "Prepare a labeled text corpus for downstream training",
	Long: `corpus reads a directory with one subdirectory per class, shuffles the
documents, splits them into a training and a validation set, and writes:

  train.csv    labeled rows for classifier training
  valid.csv    labeled rows for classifier validation
  lm.csv       every document, label zeroed, for language-model training
  classes.txt  class names, one per line, in label-index order`,
	Args: cobra.ExactArgs(1),
	RunE: runCorpus,
}

func init() {
	corpusCmd.Flags().Float64("train-frac", 0.9, "fraction of documents used for training")
	corpusCmd.Flags().Int64("seed", 0, "shuffle seed; 0 uses a random one")
	corpusCmd.Flags().String("out", ".", "directory to write output files to")
	corpusCmd.Flags().Int("top-terms", 0, "if > 0, print the N most frequent vocabulary terms")

	viper.BindPFlag("corpus.train-frac", corpusCmd.Flags().Lookup("train-frac"))
	viper.BindPFlag("corpus.seed", corpusCmd.Flags().Lookup("seed"))
	viper.BindPFlag("corpus.out", corpusCmd.Flags().Lookup("out"))
	viper.BindPFlag("corpus.top-terms", corpusCmd.Flags().Lookup("top-terms"))

	rootCmd.AddCommand(corpusCmd)
}

func runCorpus(cmd *cobra.Command, args []string) error {
	c, err := corpus.Load(args[0])
	if err != nil {
		return errors.Wrapf(err, "Failed to load corpus from %q\n", args[0])
	}

	fmt.Printf("Loaded %d documents in %d classes\n", c.Len(), len(c.Classes))

	var rng *rand.Rand
	if seed := viper.GetInt64("corpus.seed"); seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}

	c.Shuffle(rng)

	train, valid, err := c.Split(viper.GetFloat64("corpus.train-frac"))
	if err != nil {
		return err
	}

	out := viper.GetString("corpus.out")

	if err := train.WriteCSV(filepath.Join(out, "train.csv")); err != nil {
		return err
	}
	if err := valid.WriteCSV(filepath.Join(out, "valid.csv")); err != nil {
		return err
	}
	if err := c.WriteLM(filepath.Join(out, "lm.csv")); err != nil {
		return err
	}
	if err := c.WriteClasses(filepath.Join(out, "classes.txt")); err != nil {
		return err
	}

	fmt.Printf("Wrote %d training and %d validation documents to %q\n", train.Len(), valid.Len(), out)

	if topN := viper.GetInt("corpus.top-terms"); topN > 0 {
		stats, err := c.VocabStats(topN)
		if err != nil {
			return err
		}

		fmt.Printf("Vocabulary: %d distinct terms, %d tokens\n", stats.Terms, stats.Tokens)
		for _, tc := range stats.Top {
			fmt.Printf("  %6d  %s\n", tc.Count, tc.Term)
		}
	}

	return nil
}
