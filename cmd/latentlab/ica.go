package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	lab "latentlab"
	"latentlab/hyperparams"
	"latentlab/ica"
	"latentlab/runlog"
	"latentlab/viz"
	"latentlab/wave"
)

var icaCmd = &cobra.Command{
	Use:   "ica <mixed.wav> <mixed.wav> [more.wav...]",
	Short: "Recover independent components from mixed audio",
	Long: `ica reads two or more mixed WAV recordings, whitens them, and trains a
linear autoencoder on the whitened samples in two phases: first to the
identity map (reconstruction only), then with an independence-promoting
penalty on the encoded values. The encoder's outputs are written out as
recovered-N.wav files.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runICA,
}

func init() {
	icaCmd.Flags().Int("epochs", 10, "reconstruction-only passes over the samples")
	icaCmd.Flags().Int("refine-epochs", 5, "passes with the independence penalty active")
	icaCmd.Flags().Float64("weight", 0.01, "weight of the independence penalty")
	icaCmd.Flags().Float64("lr", 0.01, "learning rate")
	icaCmd.Flags().Int("batch", 16, "mini-batch size")
	icaCmd.Flags().String("out", ".", "directory to write recovered WAV files to")
	icaCmd.Flags().Bool("plots", false, "also write waveform PNGs of the recovered components")

	viper.BindPFlag("ica.epochs", icaCmd.Flags().Lookup("epochs"))
	viper.BindPFlag("ica.refine-epochs", icaCmd.Flags().Lookup("refine-epochs"))
	viper.BindPFlag("ica.weight", icaCmd.Flags().Lookup("weight"))
	viper.BindPFlag("ica.lr", icaCmd.Flags().Lookup("lr"))
	viper.BindPFlag("ica.batch", icaCmd.Flags().Lookup("batch"))

	rootCmd.AddCommand(icaCmd)
}

func runICA(cmd *cobra.Command, args []string) error {
	channels := make([][]float64, len(args))
	rate := 0

	for i, path := range args {
		clip, err := wave.Read(path)
		if err != nil {
			return err
		}

		if rate == 0 {
			rate = clip.Rate
		} else if clip.Rate != rate {
			return errors.Errorf("Sample rates disagree (%q has %d, %q has %d)\n", args[i], clip.Rate, args[0], rate)
		}

		channels[i] = clip.Samples
	}

	// clips may differ in length by a few samples; truncate to the shortest
	minLen := len(channels[0])
	for _, ch := range channels[1:] {
		if len(ch) < minLen {
			minLen = len(ch)
		}
	}
	for i := range channels {
		channels[i] = channels[i][:minLen]
	}

	fmt.Printf("Loaded %d channels of %d samples at %d Hz\n", len(channels), minLen, rate)

	var wh ica.Whitener
	if err := wh.Fit(channels); err != nil {
		return err
	}

	white, err := wh.Transform(channels)
	if err != nil {
		return err
	}

	m, err := ica.Build(ica.Config{Channels: len(channels)})
	if err != nil {
		return err
	}

	m.Net.AddHP("learning-rate", hyperparams.Constant(viper.GetFloat64("ica.lr")))

	data, err := ica.Dataset(white, viper.GetInt("ica.batch"))
	if err != nil {
		return err
	}

	store, err := runlog.Open(viper.GetString("runlog"))
	if err != nil {
		return err
	}
	defer store.Close()

	weight := viper.GetFloat64("ica.weight")

	runID, err := store.Begin("ica", fmt.Sprintf("channels=%d weight=%g lr=%g",
		len(channels), weight, viper.GetFloat64("ica.lr")))
	if err != nil {
		return err
	}

	epochs := viper.GetInt("ica.epochs")
	refine := viper.GetInt("ica.refine-epochs")

	show, done := lab.PrintResult()

	statusFreq := minLen / 4
	if statusFreq < 1 {
		statusFreq = 1
	}

	fmt.Printf("Phase 1: %d reconstruction epochs...\n", epochs)
	err = m.Train(lab.TrainArgs{
		TrainData:    data,
		SendStatus:   lab.EndEvery(statusFreq),
		RunCondition: lab.TrainUntil(epochs * minLen),
		Update:       show,
	})
	if err != nil {
		done()
		return errors.Wrapf(err, "Reconstruction training failed\n")
	}

	fmt.Printf("Phase 2: %d epochs with independence weight %g...\n", refine, weight)
	m.SetIndependenceWeight(weight)

	err = m.Train(lab.TrainArgs{
		TrainData:    data,
		SendStatus:   lab.EndEvery(statusFreq),
		RunCondition: lab.TrainUntil(refine * minLen),
		Update:       show,
	})
	done()
	if err != nil {
		return errors.Wrapf(err, "Independence training failed\n")
	}

	finalCost, _, err := m.Net.Test(data, nil)
	if err != nil {
		return errors.Wrapf(err, "Final evaluation failed\n")
	}

	fmt.Printf("Final cost: %g\n", finalCost)

	if err := store.Finish(runID, finalCost); err != nil {
		return err
	}

	comps, err := m.Components(white)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if err := os.MkdirAll(out, 0755); err != nil {
		return errors.Wrapf(err, "Failed to create directory %q\n", out)
	}

	plots, _ := cmd.Flags().GetBool("plots")

	for i, comp := range comps {
		clip := &wave.Clip{Rate: rate, Samples: normalize(comp)}

		path := filepath.Join(out, fmt.Sprintf("recovered-%d.wav", i))
		if err := wave.Write(path, clip); err != nil {
			return err
		}

		fmt.Printf("Wrote %q\n", path)

		if plots {
			png := filepath.Join(out, fmt.Sprintf("recovered-%d.png", i))
			if err := viz.Waveform(png, fmt.Sprintf("recovered component %d", i), clip); err != nil {
				return err
			}
		}
	}

	return nil
}

// normalize scales a signal so its largest magnitude is 1, making it safe to
// encode as audio. A zero signal is returned unchanged.
func normalize(samples []float64) []float64 {
	max := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > max {
			max = a
		}
	}

	if max == 0 {
		return samples
	}

	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s / max
	}

	return out
}
