package corpus

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// WriteCSV writes the Corpus to a CSV file for classifier training. Each
// row has two fields: the document's class index and its text. There is no
// header row.
func (c *Corpus) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q\n", path)
	}

	defer f.Close()

	w := csv.NewWriter(f)
	for i, d := range c.Docs {
		if err := w.Write([]string{strconv.Itoa(d.Class), d.Text}); err != nil {
			return errors.Wrapf(err, "Failed to write document %d to %q\n", i, path)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "Failed to flush CSV to %q\n", path)
	}

	return nil
}

// WriteLM writes the Corpus to a CSV file for language-model training.
// The format matches WriteCSV, but the label field is always zero; the
// labels are meaningless to a language model and are only present to keep
// the two file formats interchangeable.
func (c *Corpus) WriteLM(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q\n", path)
	}

	defer f.Close()

	w := csv.NewWriter(f)
	for i, d := range c.Docs {
		if err := w.Write([]string{"0", d.Text}); err != nil {
			return errors.Wrapf(err, "Failed to write document %d to %q\n", i, path)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "Failed to flush CSV to %q\n", path)
	}

	return nil
}

// WriteClasses writes the class names of the Corpus to a plain-text file,
// one per line, in the order that Document.Class indexes them.
func (c *Corpus) WriteClasses(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "Failed to create file %q\n", path)
	}

	defer f.Close()

	for _, name := range c.Classes {
		if _, err := f.WriteString(name + "\n"); err != nil {
			return errors.Wrapf(err, "Failed to write class %q to %q\n", name, path)
		}
	}

	return nil
}
