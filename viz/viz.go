// Package viz renders the plots that used to live inline in the original
// experiment notebooks: training loss curves and audio waveforms.
package viz

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"latentlab/wave"
)

// LossCurve plots per-iteration costs against iteration number and saves
// the plot as a PNG at the given path.
func LossCurve(path, title string, costs []float64) error {
	if len(costs) == 0 {
		return errors.Errorf("No costs to plot\n")
	}

	points := make(plotter.XYs, len(costs))
	for i, c := range costs {
		points[i] = plotter.XY{X: float64(i), Y: c}
	}

	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = "iterations"
	p.Y.Label.Text = "cost"

	line, err := plotter.NewLine(points)
	if err != nil {
		return errors.Wrapf(err, "Failed to construct line plot\n")
	}

	p.Add(line)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "Failed to save plot to %q\n", path)
	}

	return nil
}

// Waveform plots a Clip's amplitude against time (in seconds) and saves the
// plot as a PNG at the given path.
func Waveform(path, title string, c *wave.Clip) error {
	if c == nil {
		return errors.Errorf("Can't plot waveform, clip is nil\n")
	} else if len(c.Samples) == 0 {
		return errors.Errorf("Can't plot waveform, clip is empty\n")
	} else if c.Rate < 1 {
		return errors.Errorf("Can't plot waveform, sample rate must be ≥ 1 (got %d)\n", c.Rate)
	}

	points := make(plotter.XYs, len(c.Samples))
	for i, s := range c.Samples {
		points[i] = plotter.XY{X: float64(i) / float64(c.Rate), Y: s}
	}

	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = "time (seconds)"
	p.Y.Label.Text = "amplitude"

	line, err := plotter.NewLine(points)
	if err != nil {
		return errors.Wrapf(err, "Failed to construct line plot\n")
	}

	p.Add(line)

	if err := p.Save(8*vg.Inch, 3*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "Failed to save plot to %q\n", path)
	}

	return nil
}
