package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	lab "latentlab"
	"latentlab/hyperparams"
	"latentlab/runlog"
	"latentlab/vae"
	"latentlab/viz"
)

var vaeCmd = &cobra.Command{
	Use:   "vae <train.csv> [test.csv]",
	Short: "Train a variational autoencoder on an image dataset",
	Long: `vae trains a variational autoencoder on a CSV image dataset (one row per
image: label, then pixel intensities in 0-255). The label column is ignored;
the model learns to reconstruct the pixels. If a test file is given, the
model is evaluated on it at the end of every epoch.

The run is recorded in the run database, and the trained network can be
saved for later inspection with --save.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runVAE,
}

func init() {
	vaeCmd.Flags().Int("hidden", 256, "width of the encoder and decoder hidden layers")
	vaeCmd.Flags().Int("latent", 32, "dimension of the latent space")
	vaeCmd.Flags().Int("epochs", 10, "number of passes over the training data")
	vaeCmd.Flags().Int("batch", 32, "mini-batch size")
	vaeCmd.Flags().Float64("lr", 0.001, "learning rate")
	vaeCmd.Flags().Int64("seed", 0, "sampler seed; 0 uses a random one")
	vaeCmd.Flags().Float64("weight-decay", 0, "L2 penalty on the dense layers; 0 disables")
	vaeCmd.Flags().String("save", "", "if set, directory to save the trained network to")
	vaeCmd.Flags().String("loss-plot", "", "if set, path to write a PNG of the loss curve to")

	viper.BindPFlag("vae.hidden", vaeCmd.Flags().Lookup("hidden"))
	viper.BindPFlag("vae.latent", vaeCmd.Flags().Lookup("latent"))
	viper.BindPFlag("vae.epochs", vaeCmd.Flags().Lookup("epochs"))
	viper.BindPFlag("vae.batch", vaeCmd.Flags().Lookup("batch"))
	viper.BindPFlag("vae.lr", vaeCmd.Flags().Lookup("lr"))
	viper.BindPFlag("vae.seed", vaeCmd.Flags().Lookup("seed"))
	viper.BindPFlag("vae.weight-decay", vaeCmd.Flags().Lookup("weight-decay"))

	rootCmd.AddCommand(vaeCmd)
}

func runVAE(cmd *cobra.Command, args []string) error {
	trainImgs, err := loadImages(args[0])
	if err != nil {
		return err
	}

	var testImgs [][]float64
	if len(args) == 2 {
		if testImgs, err = loadImages(args[1]); err != nil {
			return err
		}
	}

	conf := vae.Config{
		InputSize:   len(trainImgs[0]),
		HiddenSize:  viper.GetInt("vae.hidden"),
		LatentSize:  viper.GetInt("vae.latent"),
		Seed:        viper.GetInt64("vae.seed"),
		WeightDecay: viper.GetFloat64("vae.weight-decay"),
	}

	m, err := vae.Build(conf)
	if err != nil {
		return err
	}

	m.Net.AddHP("learning-rate", hyperparams.Constant(viper.GetFloat64("vae.lr")))

	batch := viper.GetInt("vae.batch")

	trainData, err := lab.Data(autoencoderData(trainImgs), batch)
	if err != nil {
		return err
	}

	var testData lab.DataSupplier
	if testImgs != nil {
		if testData, err = lab.Data(autoencoderData(testImgs), batch); err != nil {
			return err
		}
	}

	store, err := runlog.Open(viper.GetString("runlog"))
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.Begin("vae", fmt.Sprintf("input=%d hidden=%d latent=%d lr=%g",
		conf.InputSize, conf.HiddenSize, conf.LatentSize, viper.GetFloat64("vae.lr")))
	if err != nil {
		return err
	}

	epochs := viper.GetInt("vae.epochs")
	epochLen := len(trainImgs)

	fmt.Printf("Training for %d epochs of %d images...\n", epochs, epochLen)

	var costs []float64

	show, done := lab.PrintResult()
	update := func(r lab.Result) {
		if !r.IsTest {
			costs = append(costs, r.Cost)
		}
		show(r)
	}

	var shouldTest func(int) bool
	if testData != nil {
		shouldTest = lab.EndEvery(epochLen)
	}

	statusFreq := epochLen / 10
	if statusFreq < 1 {
		statusFreq = 1
	}

	err = m.Train(lab.TrainArgs{
		TrainData:    trainData,
		TestData:     testData,
		ShouldTest:   shouldTest,
		SendStatus:   lab.EndEvery(statusFreq),
		RunCondition: lab.TrainUntil(epochs * epochLen),
		Update:       update,
	})
	done()
	if err != nil {
		return errors.Wrapf(err, "Training failed\n")
	}

	finalCost, _, err := m.Net.Test(trainData, nil)
	if err != nil {
		return errors.Wrapf(err, "Final evaluation failed\n")
	}

	fmt.Printf("Final training cost: %g (KL of last batch: %g)\n", finalCost, m.Divergence())

	if err := store.Finish(runID, finalCost); err != nil {
		return err
	}

	if path := cmd.Flags().Lookup("loss-plot").Value.String(); path != "" {
		if err := viz.LossCurve(path, "vae training cost", costs); err != nil {
			return err
		}
	}

	if dir := cmd.Flags().Lookup("save").Value.String(); dir != "" {
		if err := m.Net.Save(dir, true); err != nil {
			return errors.Wrapf(err, "Failed to save network\n")
		}

		fmt.Printf("Saved network to %q\n", dir)
	}

	return nil
}
